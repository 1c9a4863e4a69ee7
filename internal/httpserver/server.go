package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/car-inventory-bot/internal/handlers"
	"github.com/PratikDhanave/car-inventory-bot/internal/logging"
)

// Pinger reports whether the inventory store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are everything the router serves.
type Deps struct {
	Store   Pinger
	Webhook handlers.WebhookDeps
	Logger  *zap.Logger
}

// NewRouter wires public endpoints and the signed webhook.
// Public: /health, /ready, /metrics
// Signed: POST /webhook, POST /api/webhook
func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Webhook.Logger == nil {
		deps.Webhook.Logger = log
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), logging.RequestLogger(log))

	// Anything but POST on the webhook is answered before any downstream call.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the inventory store is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := deps.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterMetricRoutes(r)
	handlers.RegisterWebhookRoutes(r, deps.Webhook)

	return r
}
