package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/tenantcontext"
)

// Session keys written at login and read by the tenant context middleware
const (
	SESSION_TENANT_ID      = "tenant_id"
	SESSION_TENANT_NAME    = "tenant_name"
	SESSION_TENANT_ROLE    = "tenant_role"
	SESSION_TENANT_PACKAGE = "tenant_package"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(n), nil
}

// requireOwnCustomer loads the customer from the :id param and verifies it
// belongs to the logged-in tenant. Superadmins may access any customer.
// Cross-tenant access is answered with 404, not 403, so record existence
// does not leak across studios.
func requireOwnCustomer(c *fiber.Ctx, withMedia bool) (*models.Customer, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid customer id")
	}

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	var customer *models.Customer
	if withMedia {
		customer, err = repo.GetByIDWithMedia(id)
	} else {
		customer, err = repo.GetByID(id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "not_found", "customer not found")
		}
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "customer lookup failed")
	}

	tc := tenantcontext.GetTenantContext(c)
	if !tc.IsSuperadmin && customer.TenantID != tc.TenantID {
		return nil, jsonError(c, fiber.StatusNotFound, "not_found", "customer not found")
	}

	return customer, nil
}
