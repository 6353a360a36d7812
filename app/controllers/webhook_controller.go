package controllers

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/env"
	"github.com/pagecove/pagecove/internal/pkg/mail"
	"github.com/pagecove/pagecove/internal/pkg/payments"
)

var (
	processorOnce sync.Once
	processor     *payments.Processor
)

func getPaymentProcessor() *payments.Processor {
	if processor != nil {
		return processor
	}
	processorOnce.Do(func() {
		repos := repository.GetGlobalRepositories()
		processor = payments.NewProcessor(
			repos.Account,
			repos.ProductMapping,
			repos.WebhookEvent,
			mail.NewInviteMailer(repos.Account),
			env.GetEnv("PAYMENT_WEBHOOK_SECRET", ""),
		)
	})
	return processor
}

// HandlePaymentWebhook receives payment provider notifications. The provider
// passes the HMAC token as a query parameter alongside the JSON body.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	rawBody := c.Body()
	signature := c.Query("signature")

	outcome, err := getPaymentProcessor().HandleEvent(c.Context(), rawBody, signature)
	if err != nil {
		return webhookError(c, err)
	}

	return c.JSON(outcome)
}

func webhookError(c *fiber.Ctx, err error) error {
	var unknown *payments.UnknownProductError
	switch {
	case errors.Is(err, payments.ErrSignatureMissing), errors.Is(err, payments.ErrSignatureMismatch):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature", "message": "Webhook signature verification failed"})
	case errors.Is(err, payments.ErrMalformedPayload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Webhook payload could not be parsed"})
	case errors.As(err, &unknown):
		log.Printf("payment webhook: %v", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unknown_product", "message": unknown.Error()})
	default:
		log.Printf("payment webhook processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Webhook processing failed"})
	}
}
