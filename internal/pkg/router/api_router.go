package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/albumdesk/albumdesk/app/controllers"
	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/internal/pkg/cache"
	"github.com/albumdesk/albumdesk/internal/pkg/env"
	"github.com/albumdesk/albumdesk/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Public auth endpoints
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Get("/verify", controllers.HandleVerifyEmail)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)

	// Gateway callback carries its own order reference, no session
	v1.Post("/billing/callback", controllers.HandleBillingCallback)

	// External scheduler trigger. GET kept alongside POST because hosted
	// cron services often only speak GET.
	v1.Get("/retention/run", middleware.CronKeyMiddleware(), controllers.HandleRetentionRun)
	v1.Post("/retention/run", middleware.CronKeyMiddleware(), controllers.HandleRetentionRun)

	// Tenant-scoped endpoints: session required, subscription gate applied
	protected := v1.Group("", middleware.RequireAPISessionAuth, middleware.SubscriptionGate)

	protected.Get("/tenant", controllers.HandleTenantProfile)
	protected.Patch("/tenant", controllers.HandleTenantSettingsUpdate)
	protected.Get("/quota", controllers.HandleQuotaSnapshot)

	protected.Post("/billing/checkout", controllers.HandleCheckout)

	protected.Post("/customers", controllers.HandleCustomerCreate)
	protected.Get("/customers", controllers.HandleCustomerList)
	protected.Get("/customers/:id", controllers.HandleCustomerGet)
	protected.Patch("/customers/:id", controllers.HandleCustomerStatusUpdate)
	protected.Post("/customers/:id/deliver", controllers.HandleCustomerDeliver)
	protected.Put("/customers/:id/selection", controllers.HandleCustomerSelection)

	protected.Get("/customers/:id/media", controllers.HandleMediaList)
	protected.Post("/customers/:id/media", uploadLimiter(), controllers.HandleMediaUpload)
	protected.Delete("/customers/:id/media", controllers.HandleMediaBatchDelete)
	protected.Post("/customers/:id/media/sync", controllers.HandleMediaSync)

	// Superadmin maintenance
	admin := v1.Group("/admin", middleware.RequireAPISessionAuth, middleware.RequireAPISuperadmin)
	admin.Post("/quota/resync", controllers.HandleQuotaResync)
}

// uploadLimiter throttles photo uploads per client IP using the configured
// per-minute budget. Counters live in Redis so all app instances share one
// budget.
func uploadLimiter() fiber.Handler {
	max := models.GetAppSettings().GetUploadRateLimitPerMinute()
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		Storage:    newLimiterStorage(),
	})
}

// newLimiterStorage builds a Redis-backed fiber storage on database 2
// (cache uses 0, sessions 1), reusing the cache client's connection config.
func newLimiterStorage() *redisstorage.Storage {
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient := cache.GetClient(); cacheClient != nil {
		if h, p, err := net.SplitHostPort(cacheClient.Options().Addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	return redisstorage.New(redisstorage.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 2,
		Reset:    false,
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
