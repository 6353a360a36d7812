package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagecove/pagecove/app/controllers"
)

type WebhookRouter struct {
}

// InstallRouter mounts payment provider callbacks. These stay outside the
// rate-limited API group: the provider retries aggressively and throttling
// its deliveries would only delay provisioning.
func (h WebhookRouter) InstallRouter(app *fiber.App) {
	webhook := app.Group("/webhook")
	webhook.Post("/payments", controllers.HandlePaymentWebhook)
}

func NewWebhookRouter() *WebhookRouter {
	return &WebhookRouter{}
}
