package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/internal/pkg/cache"
	"github.com/albumdesk/albumdesk/internal/pkg/tenantcontext"
)

// quotaSnapshotTTL keeps dashboard polling off the database. The cached
// copy can lag a resync by at most this long.
const quotaSnapshotTTL = 60 * time.Second

func quotaCacheKey(tenantID uint) string {
	return fmt.Sprintf("quota:tenant:%d", tenantID)
}

// HandleQuotaSnapshot returns the logged-in tenant's cached storage usage
// and limit.
// GET /api/v1/quota
func HandleQuotaSnapshot(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	if tenantID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	if cached, err := cache.Get(quotaCacheKey(tenantID)); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	snapshot, err := mediaLedger.Snapshot(tenantID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "quota lookup failed")
	}

	if payload, err := json.Marshal(snapshot); err == nil {
		if err := cache.Set(quotaCacheKey(tenantID), string(payload), quotaSnapshotTTL); err != nil {
			fiberlog.Warn("[Quota] Could not cache snapshot: ", err)
		}
	}

	return c.JSON(snapshot)
}

// HandleQuotaResync forces a recomputation of every tenant's cached usage.
// Superadmin only.
// POST /api/v1/admin/quota/resync
func HandleQuotaResync(c *fiber.Ctx) error {
	updated, err := mediaLedger.Resync()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "quota resync failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"updated": updated,
	})
}
