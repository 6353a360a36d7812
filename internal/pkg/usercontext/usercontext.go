package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagecove/pagecove/app/models"
)

// AccountContext represents the authenticated account for a request
type AccountContext struct {
	AccountID       uint   `json:"account_id"`
	Email           string `json:"email"`
	Plan            string `json:"plan"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// SetAccountContext stores the authenticated account on the fiber context
func SetAccountContext(c *fiber.Ctx, account *models.Account) {
	c.Locals(ContextKey, AccountContext{
		AccountID:       account.ID,
		Email:           account.Email,
		Plan:            account.PlanType,
		IsAuthenticated: true,
	})
}

// GetAccountContext retrieves the account context from fiber context
// Returns an unauthenticated context if none is set
func GetAccountContext(c *fiber.Ctx) AccountContext {
	if ctx := c.Locals(ContextKey); ctx != nil {
		return ctx.(AccountContext)
	}
	return AccountContext{IsAuthenticated: false}
}

// IsAuthenticated checks whether the request carries a valid API key
func IsAuthenticated(c *fiber.Ctx) bool {
	return GetAccountContext(c).IsAuthenticated
}

// GetAccountID returns the authenticated account's ID, or 0
func GetAccountID(c *fiber.Ctx) uint {
	return GetAccountContext(c).AccountID
}
