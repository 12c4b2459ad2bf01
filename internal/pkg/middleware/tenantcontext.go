package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/session"
	"github.com/albumdesk/albumdesk/internal/pkg/tenantcontext"
)

// TenantContextMiddleware sets up the complete tenant context for every request.
// This centralizes session handling and eliminates code duplication.
func TenantContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	rawID := sess.Get(tenantcontext.KeyTenantID)
	if rawID == nil {
		return anonymous(c)
	}

	tenantID, ok := toTenantID(rawID)
	if !ok {
		return anonymous(c)
	}

	name := session.GetSessionValue(c, tenantcontext.KeyTenantName)
	role := session.GetSessionValue(c, "tenant_role")
	packageType := session.GetSessionValue(c, "tenant_package")

	tenantCtx := tenantcontext.TenantContext{
		TenantID:     tenantID,
		Name:         name,
		Role:         role,
		PackageType:  packageType,
		IsLoggedIn:   true,
		IsSuperadmin: role == models.ROLE_SUPERADMIN,
	}
	c.Locals("TENANT_CONTEXT", tenantCtx)

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	c.Locals("TENANT_CONTEXT", tenantcontext.TenantContext{
		IsLoggedIn:   false,
		IsSuperadmin: false,
	})
	return c.Next()
}

// Session values round-trip through Redis as strings, so the ID can come
// back as either uint or string depending on the store.
func toTenantID(v interface{}) (uint, bool) {
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case string:
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

// LoadTenant fetches the logged-in tenant fresh from the database. The
// subscription gate must not trust cached session state.
func LoadTenant(c *fiber.Ctx) (*models.Tenant, error) {
	tenantID := tenantcontext.GetTenantID(c)
	if tenantID == 0 {
		return nil, fiber.ErrUnauthorized
	}
	return repository.GetGlobalFactory().GetTenantRepository().GetByID(tenantID)
}
