package auth

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/car-inventory-bot/internal/line"
)

// rawBodyCtxKey is the Gin context key holding the verified request body.
const rawBodyCtxKey = "raw_body"

// MaxBodyBytes caps the webhook body read before the signature is checked.
const MaxBodyBytes = 1 << 20

// SignatureMiddleware authenticates LINE webhook calls by checking
// X-Line-Signature against the raw body. Verified bodies are made available
// through RawBody; anything else is rejected before handlers run.
func SignatureMiddleware(channelSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "body too large"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		if !line.VerifySignature(channelSecret, body, c.GetHeader(line.SignatureHeader)) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		c.Set(rawBodyCtxKey, body)
		c.Next()
	}
}

// RawBody returns the body verified by SignatureMiddleware.
func RawBody(c *gin.Context) []byte {
	v, _ := c.Get(rawBodyCtxKey)
	b, _ := v.([]byte)
	return b
}
