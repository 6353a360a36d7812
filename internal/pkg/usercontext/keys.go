package usercontext

// Shared Locals keys used across controllers and middlewares
const (
	ContextKey = "ACCOUNT_CONTEXT"
)
