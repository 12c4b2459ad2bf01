package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albumdesk/albumdesk/app/controllers"
	"github.com/albumdesk/albumdesk/internal/pkg/constants"
	"github.com/albumdesk/albumdesk/internal/pkg/middleware"
	"github.com/albumdesk/albumdesk/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply TenantContext middleware globally as first middleware
	app.Use(middleware.TenantContextMiddleware)

	// Initialize controllers with repositories
	controllers.InitializeMediaController()
	controllers.InitializeBillingController()

	h.registerPublicRoutes(app)
}

// The product frontend is a separate SPA; these routes only exist so the
// subscription gate has concrete remediation targets to redirect to.
func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "albumdesk", "status": "ok"})
	})
	app.Get(constants.RouteLogin, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "login"})
	})
	app.Get(constants.RouteVerifyRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "verify-required"})
	})
	app.Get(constants.RouteCheckout, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "checkout", "package": c.Query("package")})
	})
	app.Get(constants.RoutePackages, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "packages", "expired": c.Query("expired") == "true"})
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
