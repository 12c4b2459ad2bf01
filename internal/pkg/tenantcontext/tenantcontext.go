package tenantcontext

import "github.com/gofiber/fiber/v2"

// TenantContext represents the complete tenant context for a request
type TenantContext struct {
	TenantID     uint   `json:"tenant_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PackageType  string `json:"package_type"`
	IsLoggedIn   bool   `json:"is_logged_in"`
	IsSuperadmin bool   `json:"is_superadmin"`
}

// GetTenantContext retrieves the tenant context from fiber context.
// Returns a default anonymous context if none is set.
func GetTenantContext(c *fiber.Ctx) TenantContext {
	if ctx := c.Locals("TENANT_CONTEXT"); ctx != nil {
		return ctx.(TenantContext)
	}
	return TenantContext{IsLoggedIn: false, IsSuperadmin: false}
}

// IsLoggedIn checks if the current tenant is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetTenantContext(c).IsLoggedIn
}

// IsSuperadmin checks if the current tenant is a superadmin
func IsSuperadmin(c *fiber.Ctx) bool {
	return GetTenantContext(c).IsSuperadmin
}

// GetTenantID returns the current tenant's ID, or 0 if not logged in
func GetTenantID(c *fiber.Ctx) uint {
	return GetTenantContext(c).TenantID
}
