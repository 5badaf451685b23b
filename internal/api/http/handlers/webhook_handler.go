package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-report-service/internal/api/dto"
	"github.com/spec-kit/incident-report-service/internal/conversation"
	"github.com/spec-kit/incident-report-service/internal/observability"
	apperrors "github.com/spec-kit/incident-report-service/pkg/util"
)

// WebhookHandler terminates the Messenger webhook.
type WebhookHandler struct {
	verifyToken string
	engine      *conversation.Engine
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewWebhookHandler constructs the handler.
func NewWebhookHandler(verifyToken string, engine *conversation.Engine, metrics *observability.Metrics, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		engine:      engine,
		metrics:     metrics,
		logger:      logger,
	}
}

// Verify GET /webhook answers the platform's subscription handshake.
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token == h.verifyToken {
		return c.Status(fiber.StatusOK).SendString(challenge)
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// Receive POST /webhook processes a delivery batch. Events are handled
// sequentially; payload-carrying events are dispatched ahead of free text.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var body dto.WebhookBody
	if err := c.BodyParser(&body); err != nil {
		h.logger.Error("webhook body parse failed", zap.Error(err))
		return apperrors.NewInternalError(err)
	}

	if body.Object != "page" {
		return c.SendStatus(fiber.StatusNotFound)
	}

	ctx := c.UserContext()
	for _, entry := range body.Entry {
		for _, event := range entry.Messaging {
			sender := event.Sender.ID
			if sender == "" {
				continue
			}

			switch {
			case event.Postback != nil && event.Postback.Payload != "":
				h.metrics.RecordWebhookEvent("postback")
				h.engine.HandlePayload(ctx, sender, event.Postback.Payload)
			case event.Message != nil && event.Message.QuickReply != nil && event.Message.QuickReply.Payload != "":
				h.metrics.RecordWebhookEvent("quick_reply")
				h.engine.HandlePayload(ctx, sender, event.Message.QuickReply.Payload)
			case event.Message != nil && event.Message.Text != "":
				h.metrics.RecordWebhookEvent("text")
				h.engine.HandleText(ctx, sender, event.Message.Text)
			}
		}
	}

	return c.SendStatus(fiber.StatusOK)
}
