package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagecove/pagecove/app/controllers"
)

type PublicRouter struct {
}

func (h PublicRouter) InstallRouter(app *fiber.App) {
	// Hostname resolution for the rendering edge. Unauthenticated and hot,
	// so it stays outside the rate-limited API group.
	app.Get("/resolve", controllers.HandleResolve)
}

func NewPublicRouter() *PublicRouter {
	return &PublicRouter{}
}
