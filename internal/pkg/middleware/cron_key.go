package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/albumdesk/albumdesk/internal/pkg/env"
)

// CronKeyMiddleware authenticates requests carrying the shared cron secret.
// The retention trigger endpoint is meant for external schedulers, not
// browser sessions.
func CronKeyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := env.GetEnv("CRON_API_KEY", "")
		if secret == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "unavailable",
				"message": "cron endpoint disabled: CRON_API_KEY not configured",
			})
		}

		key := extractCronKeyFromHeader(c)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "invalid cron key",
			})
		}

		return c.Next()
	}
}

func extractCronKeyFromHeader(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.Get("X-Cron-Key"))
	if key != "" {
		return key
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
