package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albumdesk/albumdesk/internal/pkg/tenantcontext"
)

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !tenantcontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}

// RequireAPISuperadmin ensures a logged-in superadmin for API routes and returns JSON 403.
func RequireAPISuperadmin(c *fiber.Ctx) error {
	if !tenantcontext.IsSuperadmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "superadmin required",
		})
	}
	return c.Next()
}
