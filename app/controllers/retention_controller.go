package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/mediastore"
	"github.com/albumdesk/albumdesk/internal/pkg/retention"
)

// NewRetentionScanner builds a scanner over the global repositories, the
// media store and the quota ledger, using the configured retention window.
func NewRetentionScanner() *retention.Scanner {
	repos := repository.GetGlobalFactory().GetRepositories()
	window := time.Duration(models.GetAppSettings().GetRetentionWindowDays()) * 24 * time.Hour
	return retention.NewScanner(repos.Customer, repos.Media, mediastore.GetStore(), mediaLedger, window)
}

// HandleRetentionRun triggers one retention cleanup pass. Guarded by the
// cron key middleware; meant for external schedulers and manual operations.
// POST /api/v1/retention/run
func HandleRetentionRun(c *fiber.Ctx) error {
	scanner := NewRetentionScanner()

	stats, err := scanner.Run(c.UserContext())
	if err != nil {
		fiberlog.Error("[Retention] Manual run failed: ", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "retention run failed",
			"stats":   stats,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "retention run completed",
		"stats":   stats,
	})
}
