package repository

import (
	"time"

	"github.com/albumdesk/albumdesk/app/models"
	"gorm.io/gorm"
)

// TenantRepository defines the interface for tenant-related database operations
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id uint) (*models.Tenant, error)
	GetByEmail(email string) (*models.Tenant, error)
	GetByVerificationToken(token string) (*models.Tenant, error)
	Update(tenant *models.Tenant) error
	UpdateStorageUsage(id uint, usage int64) error
	ListQuotaOwners() ([]models.Tenant, error)
	Delete(id uint) error
	Count() (int64, error)
}

// CustomerRepository defines the interface for customer-related database operations
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByIDWithMedia(id uint) (*models.Customer, error)
	GetByTenantID(tenantID uint, offset, limit int) ([]models.Customer, error)
	Update(customer *models.Customer) error
	Archive(id uint) error
	Delete(id uint) error
	FindRetentionCandidates(cutoff time.Time) ([]models.Customer, error)
	CountByTenantID(tenantID uint) (int64, error)
}

// MediaRepository defines the interface for media-related database operations
type MediaRepository interface {
	Create(item *models.MediaItem) error
	GetByCustomerID(customerID uint) ([]models.MediaItem, error)
	DeleteByFilenames(customerID uint, filenames []string) error
	DeleteAllByCustomerID(customerID uint) error
	ReplaceLibrary(customerID uint, items []models.MediaItem) error
	ReplaceSelection(customerID uint, items []models.MediaItem) error
	TotalLibrarySizeByTenant() (map[uint]int64, error)
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	GetPendingByTenantID(tenantID uint) ([]models.Order, error)
	Update(order *models.Order) error
}

// Repositories bundles all repository instances
type Repositories struct {
	Tenant   TenantRepository
	Customer CustomerRepository
	Media    MediaRepository
	Order    OrderRepository
}

// NewRepositories creates all repositories backed by the given database
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tenant:   NewTenantRepository(db),
		Customer: NewCustomerRepository(db),
		Media:    NewMediaRepository(db),
		Order:    NewOrderRepository(db),
	}
}
