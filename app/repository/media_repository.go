package repository

import (
	"github.com/albumdesk/albumdesk/app/models"
	"gorm.io/gorm"
)

// mediaRepository implements the MediaRepository interface
type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository instance
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// Create appends a media item to a customer record
func (r *mediaRepository) Create(item *models.MediaItem) error {
	return r.db.Create(item).Error
}

// GetByCustomerID retrieves all media items of a customer
func (r *mediaRepository) GetByCustomerID(customerID uint) ([]models.MediaItem, error) {
	var items []models.MediaItem
	err := r.db.Where("customer_id = ?", customerID).Order("uploaded_at ASC").Find(&items).Error
	return items, err
}

// DeleteByFilenames removes media rows matching the given filenames,
// across both the library and the selected subset.
func (r *mediaRepository) DeleteByFilenames(customerID uint, filenames []string) error {
	if len(filenames) == 0 {
		return nil
	}
	return r.db.Where("customer_id = ? AND file_name IN ?", customerID, filenames).
		Delete(&models.MediaItem{}).Error
}

// DeleteAllByCustomerID clears a customer's entire media collection
// (library and selected subset). Used by the retention purge.
func (r *mediaRepository) DeleteAllByCustomerID(customerID uint) error {
	return r.db.Where("customer_id = ?", customerID).Delete(&models.MediaItem{}).Error
}

// ReplaceLibrary swaps the customer's library rows for the given set in one
// transaction. The selected subset is left untouched.
func (r *mediaRepository) ReplaceLibrary(customerID uint, items []models.MediaItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ? AND kind = ?", customerID, models.MEDIA_KIND_LIBRARY).
			Delete(&models.MediaItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].CustomerID = customerID
			items[i].Kind = models.MEDIA_KIND_LIBRARY
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// ReplaceSelection swaps the customer's selected subset for the given set
// in one transaction. Library rows are left untouched; an empty set clears
// the selection.
func (r *mediaRepository) ReplaceSelection(customerID uint, items []models.MediaItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ? AND kind = ?", customerID, models.MEDIA_KIND_SELECTED).
			Delete(&models.MediaItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].CustomerID = customerID
			items[i].Kind = models.MEDIA_KIND_SELECTED
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// tenantUsageRow is the scan target for the per-tenant aggregation
type tenantUsageRow struct {
	TenantID uint
	Total    int64
}

// TotalLibrarySizeByTenant aggregates the byte size of every library media
// item, grouped by owning tenant. Selected items reference the same stored
// bytes and are excluded.
func (r *mediaRepository) TotalLibrarySizeByTenant() (map[uint]int64, error) {
	var rows []tenantUsageRow
	err := r.db.Model(&models.MediaItem{}).
		Select("customers.tenant_id AS tenant_id, COALESCE(SUM(media_items.file_size), 0) AS total").
		Joins("JOIN customers ON customers.id = media_items.customer_id").
		Where("media_items.kind = ?", models.MEDIA_KIND_LIBRARY).
		Group("customers.tenant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[uint]int64, len(rows))
	for _, row := range rows {
		totals[row.TenantID] = row.Total
	}
	return totals, nil
}
