package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/usercontext"
)

const pageListLimit = 100

// HandleListPages returns the published pages of the authenticated account.
func HandleListPages(c *fiber.Ctx) error {
	accountCtx := usercontext.GetAccountContext(c)
	if !accountCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repos := repository.GetGlobalRepositories()
	pages, err := repos.Page.ListPublished(accountCtx.AccountID, pageListLimit)
	if err != nil {
		log.Printf("list pages for account %d failed: %v", accountCtx.AccountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load pages"})
	}
	total, err := repos.Page.CountByAccount(accountCtx.AccountID)
	if err != nil {
		log.Printf("count pages for account %d failed: %v", accountCtx.AccountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load pages"})
	}

	out := make([]fiber.Map, 0, len(pages))
	for _, p := range pages {
		out = append(out, fiber.Map{
			"id":       p.ID,
			"slug":     p.Slug,
			"title":    p.Title,
			"template": p.Template,
		})
	}
	return c.JSON(fiber.Map{"pages": out, "total": total})
}

// HandleGetAccount returns the authenticated account's profile and plan.
func HandleGetAccount(c *fiber.Ctx) error {
	accountCtx := usercontext.GetAccountContext(c)
	if !accountCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	account, err := repository.GetGlobalFactory().GetAccountRepository().GetByID(accountCtx.AccountID)
	if err != nil {
		log.Printf("load account %d failed: %v", accountCtx.AccountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load account"})
	}

	return c.JSON(fiber.Map{
		"id":                  account.ID,
		"name":                account.Name,
		"email":               account.Email,
		"plan":                account.PlanType,
		"subscription_status": account.SubscriptionStatus,
	})
}
