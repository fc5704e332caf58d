package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// TelegramSecretHeader carries the secret_token registered with setWebhook.
const TelegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookSecretMiddleware rejects requests whose secret header does not match. An empty secret disables the check.
func WebhookSecretMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if secret == "" {
			return ctx.Next()
		}
		got := ctx.Get(TelegramSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid secret token"})
		}
		return ctx.Next()
	}
}
