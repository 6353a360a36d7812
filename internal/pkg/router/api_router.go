package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/pagecove/pagecove/app/controllers"
	"github.com/pagecove/pagecove/internal/pkg/env"
	"github.com/pagecove/pagecove/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        apiRateLimit(),
		Expiration: time.Minute,
		Storage:    newLimiterStorage(),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/resolve", controllers.HandleResolve)

	authed := v1.Group("", middleware.APIKeyAuthMiddleware())
	authed.Get("/account", controllers.HandleGetAccount)
	authed.Get("/pages", controllers.HandleListPages)
	authed.Get("/domains", controllers.HandleListDomains)
	authed.Post("/domains", controllers.HandleRegisterDomain)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func apiRateLimit() int {
	if v, err := strconv.Atoi(env.GetEnv("API_RATE_LIMIT", "120")); err == nil && v > 0 {
		return v
	}
	return 120
}

// newLimiterStorage backs the rate limiter with Redis so limits hold across
// instances. Database 1 keeps limiter keys out of the cache keyspace.
func newLimiterStorage() *redis.Storage {
	port := 6379
	if v, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379")); err == nil {
		port = v
	}
	return redis.New(redis.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: 1,
	})
}
