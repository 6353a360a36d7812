package controllers

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/domains"
	"github.com/pagecove/pagecove/internal/pkg/hosting"
	"github.com/pagecove/pagecove/internal/pkg/usercontext"
)

var (
	registrarOnce sync.Once
	registrar     *domains.Registrar
)

func getRegistrar() *domains.Registrar {
	registrarOnce.Do(func() {
		repos := repository.GetGlobalRepositories()
		registrar = domains.NewRegistrar(repos.Account, repos.Domain, hosting.NewClientFromEnv())
	})
	return registrar
}

type registerDomainRequest struct {
	Domain string `json:"domain" form:"domain"`
}

// HandleRegisterDomain attaches a custom domain to the authenticated account.
func HandleRegisterDomain(c *fiber.Ctx) error {
	accountCtx := usercontext.GetAccountContext(c)
	if !accountCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req registerDomainRequest
	if err := c.BodyParser(&req); err != nil || req.Domain == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Field 'domain' is required"})
	}

	reg, err := getRegistrar().Register(c.Context(), accountCtx.AccountID, req.Domain)
	if err != nil {
		return registrationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"domain":     reg.Domain.Hostname,
		"is_primary": reg.Domain.IsPrimary,
		"dns_instructions": fiber.Map{
			"type":  reg.DNSInstructions.Type,
			"name":  reg.DNSInstructions.Name,
			"value": reg.DNSInstructions.Value,
		},
		"current_count": reg.CurrentCount,
		"max_domains":   reg.MaxDomains,
	})
}

// HandleListDomains returns the custom domains of the authenticated account.
func HandleListDomains(c *fiber.Ctx) error {
	accountCtx := usercontext.GetAccountContext(c)
	if !accountCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	list, err := repository.GetGlobalFactory().GetDomainRepository().ListByAccount(accountCtx.AccountID)
	if err != nil {
		log.Printf("list domains for account %d failed: %v", accountCtx.AccountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load domains"})
	}

	out := make([]fiber.Map, 0, len(list))
	for _, d := range list {
		out = append(out, fiber.Map{
			"domain":     d.Hostname,
			"verified":   d.Verified,
			"is_primary": d.IsPrimary,
			"created_at": d.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"domains": out})
}

func registrationError(c *fiber.Ctx, err error) error {
	var quotaErr *domains.QuotaExceededError
	switch {
	case errors.Is(err, domains.ErrPlanNotEntitled):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "plan_not_entitled", "message": "Your plan does not include custom domains"})
	case errors.Is(err, domains.ErrInvalidDomainFormat), errors.Is(err, hosting.ErrInvalidDomain):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_domain", "message": "Domain name is not valid"})
	case errors.Is(err, domains.ErrDuplicateDomain), errors.Is(err, hosting.ErrDomainTaken), errors.Is(err, hosting.ErrLinkedElsewhere):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "domain_taken", "message": "Domain is already in use"})
	case errors.As(err, &quotaErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":        "quota_exceeded",
			"message":      "Domain limit for your plan reached",
			"domains_used": quotaErr.Current,
			"domains_max":  quotaErr.Max,
		})
	case errors.Is(err, hosting.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Hosting provider rejected the request"})
	case errors.Is(err, domains.ErrStoreWrite):
		log.Printf("domain registration store failure: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save domain"})
	default:
		log.Printf("domain registration failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "hosting_provider_error", "message": "Domain registration failed, please retry"})
	}
}
