package retention

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/app/models"
)

// CustomerStore is the slice of the customer repository the scanner needs
type CustomerStore interface {
	FindRetentionCandidates(cutoff time.Time) ([]models.Customer, error)
	Archive(id uint) error
}

// MediaStore clears a customer's media rows after the purge
type MediaStore interface {
	DeleteAllByCustomerID(customerID uint) error
}

// ObjectDeleter removes a single object from remote storage
type ObjectDeleter interface {
	Delete(ctx context.Context, folder, filename string) error
}

// Resyncer corrects the cached quota aggregates after a purge
type Resyncer interface {
	Resync() (bool, error)
}

// Stats summarizes one scanner pass
type Stats struct {
	Processed int `json:"processed"`
	Cleared   int `json:"cleared"`
	Errors    int `json:"errors"`
}

// Scanner enforces opt-in automatic deletion of delivered media older than
// the retention window. A pass is idempotent: cleared customers no longer
// match the candidate predicate, so a back-to-back second run is a no-op.
type Scanner struct {
	customers CustomerStore
	media     MediaStore
	store     ObjectDeleter
	ledger    Resyncer
	window    time.Duration
}

// NewScanner creates a retention scanner with the given window
func NewScanner(customers CustomerStore, media MediaStore, store ObjectDeleter, ledger Resyncer, window time.Duration) *Scanner {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	return &Scanner{
		customers: customers,
		media:     media,
		store:     store,
		ledger:    ledger,
		window:    window,
	}
}

// objectRef addresses one object in remote storage
type objectRef struct {
	Folder   string
	Filename string
}

// Run executes one cleanup pass over all tenants. Individual remote delete
// failures are logged and counted but never abort the batch: an orphaned
// blob is an acceptable cost, blocking cleanup of everything else is not.
// The database rows are cleared regardless of remote outcomes.
func (s *Scanner) Run(ctx context.Context) (Stats, error) {
	cutoff := time.Now().Add(-s.window)

	candidates, err := s.customers.FindRetentionCandidates(cutoff)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query retention candidates: %w", err)
	}

	var stats Stats
	for i := range candidates {
		customer := &candidates[i]

		// Auto cleanup is strictly opt-in per tenant
		if !customer.Tenant.AutoDeleteMedia {
			continue
		}
		stats.Processed++

		log.Infof("[Retention] Processing customer %d (%s) for tenant %d",
			customer.ID, customer.BrideName, customer.TenantID)

		for _, ref := range collectObjectRefs(customer.Media) {
			if err := s.store.Delete(ctx, ref.Folder, ref.Filename); err != nil {
				log.Errorf("[Retention] Failed to delete %s/%s: %v", ref.Folder, ref.Filename, err)
				stats.Errors++
			}
		}

		// Clear the database regardless of individual delete outcomes
		if err := s.media.DeleteAllByCustomerID(customer.ID); err != nil {
			log.Errorf("[Retention] Failed to clear media for customer %d: %v", customer.ID, err)
			stats.Errors++
			continue
		}
		if err := s.customers.Archive(customer.ID); err != nil {
			log.Errorf("[Retention] Failed to archive customer %d: %v", customer.ID, err)
			stats.Errors++
			continue
		}
		stats.Cleared++
	}

	// One resync for the whole pass, not per customer
	if stats.Cleared > 0 {
		if _, err := s.ledger.Resync(); err != nil {
			log.Errorf("[Retention] Quota resync after cleanup failed: %v", err)
		}
	}

	return stats, nil
}

// collectObjectRefs derives the distinct (folder, filename) pairs from the
// customer's media. Library and selected entries can reference the same
// object, so URLs are deduplicated before parsing to avoid redundant
// delete calls.
func collectObjectRefs(media []models.MediaItem) []objectRef {
	seen := make(map[string]struct{}, len(media))
	refs := make([]objectRef, 0, len(media))

	for _, item := range media {
		if item.URL == "" {
			continue
		}
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}

		ref, err := parseObjectRef(item.URL)
		if err != nil {
			log.Errorf("[Retention] Skipping unparseable media URL %q: %v", item.URL, err)
			continue
		}
		refs = append(refs, ref)
	}

	return refs
}

// parseObjectRef splits a public media URL into its storage folder prefix
// and trailing filename. Both parts are URL-decoded.
func parseObjectRef(rawURL string) (objectRef, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return objectRef{}, err
	}

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(u.EscapedPath(), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return objectRef{}, fmt.Errorf("url has no path: %s", rawURL)
	}

	filename, err := url.PathUnescape(parts[len(parts)-1])
	if err != nil {
		return objectRef{}, err
	}
	folder, err := url.PathUnescape(strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return objectRef{}, err
	}

	return objectRef{Folder: folder, Filename: filename}, nil
}
