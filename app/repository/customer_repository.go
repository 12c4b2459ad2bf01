package repository

import (
	"time"

	"github.com/albumdesk/albumdesk/app/models"
	"gorm.io/gorm"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer in the database
func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID retrieves a customer by its ID
func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByIDWithMedia retrieves a customer with its media collection preloaded
func (r *customerRepository) GetByIDWithMedia(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Preload("Media").First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByTenantID retrieves a paginated list of a tenant's customers
func (r *customerRepository) GetByTenantID(tenantID uint, offset, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error
	return customers, err
}

// Update updates an existing customer in the database
func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Archive marks a customer record as archived after its media was purged
func (r *customerRepository) Archive(id uint) error {
	return r.db.Model(&models.Customer{}).Where("id = ?", id).
		Update("status", models.CUSTOMER_STATUS_ARCHIVED).Error
}

// Delete soft deletes a customer by its ID
func (r *customerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

// FindRetentionCandidates returns delivered customers whose delivery date is
// older than the cutoff and that still hold media. The owning tenant is
// preloaded so the scanner can check the auto-delete opt-in.
func (r *customerRepository) FindRetentionCandidates(cutoff time.Time) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Preload("Media").Preload("Tenant").
		Where("album_status = ?", models.ALBUM_STATUS_DELIVERED).
		Where("delivered_at IS NOT NULL AND delivered_at < ?", cutoff).
		Where("EXISTS (SELECT 1 FROM media_items WHERE media_items.customer_id = customers.id)").
		Find(&customers).Error
	return customers, err
}

// CountByTenantID returns the number of customers owned by a tenant
func (r *customerRepository) CountByTenantID(tenantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}
