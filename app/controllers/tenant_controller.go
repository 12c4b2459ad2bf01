package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/tenantcontext"
)

// HandleTenantProfile returns the logged-in studio's account state.
// GET /api/v1/tenant
func HandleTenantProfile(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	if tenantID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	tenant, err := repository.GetGlobalFactory().GetTenantRepository().GetByID(tenantID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "tenant lookup failed")
	}

	return c.JSON(tenant)
}

// HandleTenantSettingsUpdate updates the studio's own settings. Automatic
// retention cleanup only ever touches studios that opted in here.
// PATCH /api/v1/tenant
func HandleTenantSettingsUpdate(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	if tenantID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	var req struct {
		StudioName      *string `json:"studio_name"`
		Phone           *string `json:"phone"`
		AutoDeleteMedia *bool   `json:"auto_delete_media"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := repo.GetByID(tenantID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "tenant lookup failed")
	}

	if req.StudioName != nil {
		tenant.StudioName = *req.StudioName
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.AutoDeleteMedia != nil {
		tenant.AutoDeleteMedia = *req.AutoDeleteMedia
	}

	if err := tenant.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := repo.Update(tenant); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update settings")
	}

	return c.JSON(tenant)
}
