package controllers

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/metrics/counter"
	"github.com/pagecove/pagecove/internal/pkg/resolver"
)

var (
	resolverOnce sync.Once
	hostResolver *resolver.Resolver
)

func getResolver() *resolver.Resolver {
	if hostResolver != nil {
		return hostResolver
	}
	resolverOnce.Do(func() {
		repos := repository.GetGlobalRepositories()
		hostResolver = resolver.NewResolver(repos.Account, repos.Domain, repos.Page).WithRedisCache()
	})
	return hostResolver
}

// resolveResponse flattens the resolution into the top-level body so `type`
// and its siblings sit next to `found`.
type resolveResponse struct {
	Found bool `json:"found"`
	*resolver.Resolution
}

// HandleResolve maps a hostname plus path to the page the edge should render.
// Called by the rendering frontend, not by end users.
func HandleResolve(c *fiber.Ctx) error {
	hostname := c.Query("hostname")
	if hostname == "" {
		hostname = c.Hostname()
	}
	path := c.Query("path", "/")

	res, err := getResolver().Resolve(c.Context(), hostname, path)
	if err != nil {
		if errors.Is(err, resolver.ErrSuspended) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"found": false, "error": "account_suspended", "message": "This site is currently unavailable"})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"found": false, "error": "not_found", "message": "No site is configured for this domain"})
	}

	if res.Type == resolver.TypePage {
		if err := counter.AddPageView(res.PageID); err != nil {
			log.Printf("page view counter for %d failed: %v", res.PageID, err)
		}
	}

	return c.JSON(resolveResponse{Found: true, Resolution: res})
}
