package repository

import (
	"github.com/albumdesk/albumdesk/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order in the database
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order by its ID
func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo retrieves an order by its tracking number
func (r *orderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetPendingByTenantID retrieves a tenant's orders still awaiting a gateway callback
func (r *orderRepository) GetPendingByTenantID(tenantID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("tenant_id = ? AND status = ?", tenantID, models.ORDER_STATUS_PENDING).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// Update updates an existing order in the database
func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
