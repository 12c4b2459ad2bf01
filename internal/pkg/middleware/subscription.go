package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/albumdesk/albumdesk/internal/pkg/constants"
	"github.com/albumdesk/albumdesk/internal/pkg/subscription"
)

// SubscriptionGate enforces access rules for tenant-scoped routes. The
// tenant record is loaded fresh on every request because subscription state
// changes asynchronously (payment callbacks, admin actions, expiry).
func SubscriptionGate(c *fiber.Ctx) error {
	tenant, err := LoadTenant(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, fiber.ErrUnauthorized) {
			return c.Redirect(constants.RouteLogin, fiber.StatusSeeOther)
		}
		log.Error("[SubscriptionGate] Failed to load tenant: ", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "subscription check failed",
		})
	}

	decision := subscription.Evaluate(subscription.Input{
		Role:          tenant.Role,
		EmailVerified: tenant.IsEmailVerified,
		Active:        tenant.IsActive,
		PackageType:   tenant.PackageType,
		ExpiresAt:     tenant.SubscriptionExpiry,
		Now:           time.Now(),
		Path:          c.Path(),
	})
	if decision.Allowed() {
		return c.Next()
	}

	// API callers get a machine-readable verdict instead of a redirect.
	if strings.HasPrefix(c.Path(), constants.APIPrefix) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":    "subscription_required",
			"state":    decision.State,
			"redirect": decision.RedirectTo,
		})
	}

	return c.Redirect(decision.RedirectTo, fiber.StatusSeeOther)
}
