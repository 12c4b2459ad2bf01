package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/mail"
	"github.com/albumdesk/albumdesk/internal/pkg/session"
)

// HandleRegister creates a new studio account and sends the verification
// mail. Accounts start unverified and inactive on the trial package.
// POST /api/v1/auth/register
func HandleRegister(c *fiber.Ctx) error {
	var req struct {
		StudioName string `json:"studio_name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		Phone      string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	if existing, err := repo.GetByEmail(req.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "an account with this email already exists")
	}

	tenant, err := models.CreateTenant(req.StudioName, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	tenant.Phone = req.Phone

	if err := tenant.GenerateVerificationToken(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create account")
	}

	if err := repo.Create(tenant); err != nil {
		fiberlog.Error("[Auth] Tenant create failed: ", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create account")
	}

	if err := mail.SendVerificationMail(tenant); err != nil {
		fiberlog.Error("[Auth] Verification mail failed: ", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "account created, please verify your email",
	})
}

// HandleVerifyEmail confirms the double-opt-in token.
// GET /api/v1/auth/verify?token=...
func HandleVerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "token missing")
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := repo.GetByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "invalid or expired token")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "verification failed")
	}

	tenant.IsEmailVerified = true
	tenant.VerificationToken = ""
	if err := repo.Update(tenant); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "verification failed")
	}

	return c.JSON(fiber.Map{"success": true, "message": "email verified"})
}

// HandleLogin checks credentials and opens a session.
// POST /api/v1/auth/login
func HandleLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := repo.GetByEmail(req.Email)
	if err != nil || !models.CheckPasswordHash(req.Password, tenant.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "wrong email or password")
	}

	now := time.Now()
	tenant.LastLoginAt = &now
	if err := repo.Update(tenant); err != nil {
		fiberlog.Error("[Auth] Last login update failed: ", err)
	}

	if err := session.SetSessionValue(c, SESSION_TENANT_ID, fmt.Sprintf("%d", tenant.ID)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "session setup failed")
	}
	session.SetSessionValue(c, SESSION_TENANT_NAME, tenant.StudioName)
	session.SetSessionValue(c, SESSION_TENANT_ROLE, tenant.Role)
	session.SetSessionValue(c, SESSION_TENANT_PACKAGE, tenant.PackageType)

	return c.JSON(fiber.Map{
		"success": true,
		"tenant": fiber.Map{
			"id":           tenant.ID,
			"studio_name":  tenant.StudioName,
			"role":         tenant.Role,
			"package_type": tenant.PackageType,
		},
	})
}

// HandleLogout drops the session.
// POST /api/v1/auth/logout
func HandleLogout(c *fiber.Ctx) error {
	if err := session.DestroySession(c); err != nil {
		fiberlog.Error("[Auth] Logout failed: ", err)
	}
	return c.JSON(fiber.Map{"success": true})
}
