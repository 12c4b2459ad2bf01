package retention

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/internal/pkg/cache"
)

const (
	// checkInterval is how often the scheduler wakes up. The scanner itself
	// only runs once per calendar day, gated by the shared Redis marker.
	checkInterval = 1 * time.Hour

	lastRunKeyPrefix = "retention:last_run:"
	markerTTL        = 48 * time.Hour
)

// scheduler state
var (
	schedulerStopCh chan struct{}
)

// StartScheduler starts the daily retention loop. The cadence is
// best-effort: a late or skipped day is acceptable, the scanner pass is
// idempotent either way. The Redis SETNX marker keeps multiple app
// instances from running the same day twice.
func StartScheduler(scanner *Scanner) {
	if schedulerStopCh != nil {
		return
	}
	schedulerStopCh = make(chan struct{})
	go func() {
		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()
		log.Info("[Retention] Scheduler started (check interval: 1h, cadence: daily)")

		// run once immediately
		runScheduledPass(scanner)

		for {
			select {
			case <-schedulerStopCh:
				log.Info("[Retention] Scheduler stopped")
				return
			case <-ticker.C:
				runScheduledPass(scanner)
			}
		}
	}()
}

// StopScheduler stops the retention loop
func StopScheduler() {
	if schedulerStopCh != nil {
		close(schedulerStopCh)
		schedulerStopCh = nil
	}
}

func runScheduledPass(scanner *Scanner) {
	key := lastRunKeyPrefix + time.Now().Format("2006-01-02")
	acquired, err := cache.SetNX(key, time.Now().Format(time.RFC3339), markerTTL)
	if err != nil {
		log.Errorf("[Retention] Could not check last-run marker: %v", err)
		return
	}
	if !acquired {
		// already ran today (possibly on another instance)
		return
	}

	stats, err := scanner.Run(context.Background())
	if err != nil {
		log.Errorf("[Retention] Scheduled pass failed: %v", err)
		return
	}
	log.Infof("[Retention] Scheduled pass done: processed=%d cleared=%d errors=%d",
		stats.Processed, stats.Cleared, stats.Errors)
}
