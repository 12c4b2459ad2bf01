package repository

import (
	"strings"

	"github.com/albumdesk/albumdesk/app/models"
	"gorm.io/gorm"
)

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

// Create creates a new tenant in the database
func (r *tenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// GetByID retrieves a tenant by its ID
func (r *tenantRepository) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.First(&tenant, id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByEmail retrieves a tenant by its email address
func (r *tenantRepository) GetByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("email = ?", email).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByVerificationToken retrieves a tenant by its email verification token
func (r *tenantRepository) GetByVerificationToken(token string) (*models.Tenant, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var tenant models.Tenant
	err := r.db.Where("verification_token = ?", trimmed).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Update updates an existing tenant in the database
func (r *tenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// UpdateStorageUsage overwrites the cached storage usage for a tenant.
// Only the quota ledger resync should call this.
func (r *tenantRepository) UpdateStorageUsage(id uint, usage int64) error {
	return r.db.Model(&models.Tenant{}).Where("id = ?", id).
		Update("storage_usage", usage).Error
}

// ListQuotaOwners returns all studio accounts that own a storage quota.
// Superadmin and customer logins carry no quota of their own.
func (r *tenantRepository) ListQuotaOwners() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.Where("role = ?", models.ROLE_ADMIN).Find(&tenants).Error
	return tenants, err
}

// Delete soft deletes a tenant by its ID
func (r *tenantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tenant{}, id).Error
}

// Count returns the total number of tenants
func (r *tenantRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).Count(&count).Error
	return count, err
}
