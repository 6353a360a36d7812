package controllers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecove/pagecove/internal/pkg/domains"
	"github.com/pagecove/pagecove/internal/pkg/hosting"
	"github.com/pagecove/pagecove/internal/pkg/payments"
)

func statusFor(t *testing.T, handler func(*fiber.Ctx) error) int {
	t.Helper()
	app := fiber.New()
	app.Get("/t", handler)
	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRegistrationErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plan not entitled", err: domains.ErrPlanNotEntitled, want: fiber.StatusForbidden},
		{name: "invalid format", err: domains.ErrInvalidDomainFormat, want: fiber.StatusBadRequest},
		{name: "provider rejects name", err: hosting.ErrInvalidDomain, want: fiber.StatusBadRequest},
		{name: "duplicate in store", err: domains.ErrDuplicateDomain, want: fiber.StatusConflict},
		{name: "taken at provider", err: hosting.ErrDomainTaken, want: fiber.StatusConflict},
		{name: "linked elsewhere", err: hosting.ErrLinkedElsewhere, want: fiber.StatusConflict},
		{name: "quota exceeded", err: &domains.QuotaExceededError{Current: 3, Max: 3}, want: fiber.StatusConflict},
		{name: "provider forbidden", err: hosting.ErrForbidden, want: fiber.StatusForbidden},
		{name: "store write failed", err: domains.ErrStoreWrite, want: fiber.StatusInternalServerError},
		{name: "provider unreachable", err: errors.New("connection refused"), want: fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusFor(t, func(c *fiber.Ctx) error {
				return registrationError(c, tt.err)
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWebhookErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing signature", err: payments.ErrSignatureMissing, want: fiber.StatusUnauthorized},
		{name: "bad signature", err: payments.ErrSignatureMismatch, want: fiber.StatusUnauthorized},
		{name: "malformed payload", err: payments.ErrMalformedPayload, want: fiber.StatusBadRequest},
		{name: "unknown product", err: &payments.UnknownProductError{Ref: "chk_x"}, want: fiber.StatusUnprocessableEntity},
		{name: "store failure", err: errors.New("db down"), want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusFor(t, func(c *fiber.Ctx) error {
				return webhookError(c, tt.err)
			})
			assert.Equal(t, tt.want, got)
		})
	}
}
