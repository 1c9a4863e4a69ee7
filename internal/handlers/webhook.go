package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/PratikDhanave/car-inventory-bot/internal/assistant"
	"github.com/PratikDhanave/car-inventory-bot/internal/auth"
	"github.com/PratikDhanave/car-inventory-bot/internal/logging"
	"github.com/PratikDhanave/car-inventory-bot/internal/metrics"
	"github.com/PratikDhanave/car-inventory-bot/internal/models"
)

// Responder turns a customer message into reply text.
type Responder interface {
	Respond(ctx context.Context, text string) (assistant.Reply, error)
}

// Replier delivers reply text to the messaging platform.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// WebhookDeps are the collaborators of the webhook endpoint.
type WebhookDeps struct {
	ChannelSecret string
	Responder     Responder
	Replier       Replier
	Logger        *zap.Logger
	// ReplyTimeout bounds the reply call. Zero means no bound beyond the
	// request context.
	ReplyTimeout time.Duration
}

// RegisterWebhookRoutes registers the messaging webhook.
//
// POST /webhook, POST /api/webhook
// - Requires a valid X-Line-Signature
// - Only events[0] is handled; a missing text or reply token is a 200
//   "No message" no-op
// - Answers 200 "OK" only after the reply was sent
func RegisterWebhookRoutes(r gin.IRoutes, deps WebhookDeps) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &webhookHandler{deps: deps, log: log}

	chain := []gin.HandlerFunc{countRejected(), auth.SignatureMiddleware(deps.ChannelSecret), h.handle}
	r.POST("/webhook", chain...)
	r.POST("/api/webhook", chain...)
}

// countRejected records requests the signature check aborted.
func countRejected() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.IsAborted() && c.Writer.Status() == http.StatusBadRequest {
			metrics.WebhookRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		}
	}
}

type webhookHandler struct {
	deps WebhookDeps
	log  *zap.Logger
}

func (h *webhookHandler) handle(c *gin.Context) {
	log := logging.FromContext(c, h.log)

	var payload models.WebhookPayload
	if err := binding.JSON.BindBody(auth.RawBody(c), &payload); err != nil {
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	if n := len(payload.Events); n > 1 {
		log.Debug("dropping events after the first", zap.Int("dropped", n-1))
	}

	text, replyToken, ok := payload.FirstTextMessage()
	if !ok {
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeIgnored).Inc()
		c.String(http.StatusOK, "No message")
		return
	}

	ctx := c.Request.Context()
	reply, err := h.deps.Responder.Respond(ctx, text)
	if err != nil {
		h.fail(c, log, err)
		return
	}

	if err := h.sendReply(ctx, replyToken, reply.Text); err != nil {
		h.fail(c, log, err)
		return
	}

	log.Info("replied",
		zap.String("source", string(reply.Source)),
		zap.Stringer("intent_status", reply.Intent.Status))
	metrics.WebhookRequests.WithLabelValues(string(reply.Source)).Inc()
	c.String(http.StatusOK, "OK")
}

func (h *webhookHandler) sendReply(ctx context.Context, replyToken, text string) (err error) {
	if h.deps.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.deps.ReplyTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.CallReply, start, err) }()

	return h.deps.Replier.Reply(ctx, replyToken, text)
}

func (h *webhookHandler) fail(c *gin.Context, log *zap.Logger, err error) {
	_ = c.Error(err)
	log.Error("webhook failed", zap.Error(err))
	metrics.WebhookRequests.WithLabelValues(metrics.OutcomeError).Inc()
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
