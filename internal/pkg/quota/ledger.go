package quota

import (
	"errors"

	"github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/app/models"
)

// ErrCapacityExceeded is returned when an upload would push a tenant past
// its storage limit.
var ErrCapacityExceeded = errors.New("storage quota exceeded")

// TenantStore is the slice of the tenant repository the ledger needs
type TenantStore interface {
	GetByID(id uint) (*models.Tenant, error)
	ListQuotaOwners() ([]models.Tenant, error)
	UpdateStorageUsage(id uint, usage int64) error
}

// UsageAggregator computes the true per-tenant storage aggregate
type UsageAggregator interface {
	TotalLibrarySizeByTenant() (map[uint]int64, error)
}

// Ledger keeps each tenant's cached storage usage in sync with the true
// aggregate over its customers' media. The cached field is never trusted as
// a source of truth and never decremented in place: after any media
// mutation the ledger recomputes the aggregate and overwrites the cache.
type Ledger struct {
	tenants TenantStore
	media   UsageAggregator
}

// NewLedger creates a quota ledger over the given stores
func NewLedger(tenants TenantStore, media UsageAggregator) *Ledger {
	return &Ledger{tenants: tenants, media: media}
}

// Resync recomputes the storage aggregate for every quota-owning tenant and
// overwrites cached values that drifted. It reports whether any tenant was
// updated. Calling it twice without intervening media changes is a no-op on
// the second call.
func (l *Ledger) Resync() (bool, error) {
	totals, err := l.media.TotalLibrarySizeByTenant()
	if err != nil {
		return false, err
	}

	tenants, err := l.tenants.ListQuotaOwners()
	if err != nil {
		return false, err
	}

	updated := false
	for _, tenant := range tenants {
		computed := totals[tenant.ID] // tenants without media aggregate to zero
		if tenant.StorageUsage == computed {
			continue
		}
		log.Infof("[QuotaLedger] Correcting drift for tenant %d: %d -> %d bytes",
			tenant.ID, tenant.StorageUsage, computed)
		if err := l.tenants.UpdateStorageUsage(tenant.ID, computed); err != nil {
			return updated, err
		}
		updated = true
	}

	return updated, nil
}

// CheckQuota decides whether an upload of incomingBytes fits within the
// tenant's limit, based on the cached usage value. The check is a fast
// pre-upload gate: concurrent uploads can transiently overshoot the limit,
// which the next resync corrects. Never mutates state.
func (l *Ledger) CheckQuota(tenant *models.Tenant, incomingBytes int64) error {
	if tenant.StorageUsage+incomingBytes > tenant.StorageLimit {
		return ErrCapacityExceeded
	}
	return nil
}

// Snapshot is the read-only quota state exposed to the UI
type Snapshot struct {
	StorageUsage int64 `json:"storage_usage"`
	StorageLimit int64 `json:"storage_limit"`
}

// Snapshot returns the tenant's current cached quota state
func (l *Ledger) Snapshot(tenantID uint) (*Snapshot, error) {
	tenant, err := l.tenants.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		StorageUsage: tenant.StorageUsage,
		StorageLimit: tenant.StorageLimit,
	}, nil
}
