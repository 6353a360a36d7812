package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/cache"
	"github.com/pagecove/pagecove/internal/pkg/database"
	"github.com/pagecove/pagecove/internal/pkg/env"
	"github.com/pagecove/pagecove/internal/pkg/metrics/counter"
	"github.com/pagecove/pagecove/internal/pkg/payments"
	"github.com/pagecove/pagecove/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "8080")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	if err := repository.GetGlobalRepositories().ProductMapping.SeedDefaults(payments.DefaultProductMappings); err != nil {
		log.Printf("seeding product mappings failed: %v", err)
	}

	go flushViewCounters()

	app := fiber.New(fiber.Config{
		AppName:   "pagecove",
		BodyLimit: 1 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ROUTER
	router.InstallRouter(app)

	return app
}

// flushViewCounters drains the pending page view counters to the database
// once a minute.
func flushViewCounters() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if err := counter.FlushAll(); err != nil {
			log.Printf("flushing view counters failed: %v", err)
		}
	}
}
