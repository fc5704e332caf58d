package controller

import (
	"context"
	"time"

	"eviden-bot/internal/constant"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/pkg/serverutils"
	"eviden-bot/internal/pkg/telegram"
	"eviden-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Receive(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type webhookController struct {
	conversation service.IConversationService
	guard        service.IUpdateGuard
	logger       logger.ILogger
	path         string
	secret       string
	timeout      time.Duration
}

func NewWebhookController(
	conversation service.IConversationService,
	guard service.IUpdateGuard,
	logger logger.ILogger,
	path string,
	secret string,
	timeout time.Duration,
) IWebhookController {
	return &webhookController{
		conversation: conversation,
		guard:        guard,
		logger:       logger,
		path:         path,
		secret:       secret,
		timeout:      timeout,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Post(c.path, serverutils.WebhookSecretMiddleware(c.secret), c.Receive)
	r.All(c.path, c.Status)
}

// Receive always answers 200 "OK" once the secret matched. Telegram retries anything else, and a
// retried update must not replay a half finished step.
func (c *webhookController) Receive(ctx *fiber.Ctx) error {
	var update tgbotapi.Update
	if err := ctx.BodyParser(&update); err != nil {
		c.logger.Warn("WEBHOOK", "Failed to parse update", map[string]interface{}{"error": err.Error()})
		return ctx.SendString("OK")
	}

	evt, ok := telegram.ToInboundEvent(update, time.Now())
	if !ok {
		c.logger.Debug("WEBHOOK", "Ignoring update without a user", map[string]interface{}{"update_id": update.UpdateID})
		return ctx.SendString("OK")
	}

	reqCtx, cancel := context.WithTimeout(ctx.UserContext(), c.timeout)
	defer cancel()

	claimed, err := c.guard.Claim(reqCtx, update.UpdateID)
	if err != nil {
		// Fail open: a duplicate is still caught by the session version check.
		c.logger.Warn("WEBHOOK", "Update guard unavailable", map[string]interface{}{"update_id": update.UpdateID, "error": err.Error()})
		claimed = true
	}
	if !claimed {
		c.logger.Info("WEBHOOK", "Skipping redelivered update", map[string]interface{}{"update_id": update.UpdateID})
		return ctx.SendString("OK")
	}

	if err := c.conversation.Handle(reqCtx, evt); err != nil {
		c.logger.Error("WEBHOOK", "Failed to handle update", map[string]interface{}{
			"update_id": update.UpdateID,
			"user_id":   evt.UserId,
			"kind":      string(evt.Kind),
			"error":     err.Error(),
		})
	}
	return ctx.SendString("OK")
}

func (c *webhookController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": constant.WebhookStatus})
}
