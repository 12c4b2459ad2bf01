package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/app/models"
)

var (
	ErrInvalidPackage  = errors.New("invalid package selection")
	ErrUnknownOrder    = errors.New("order not found")
	ErrOrderNotPending = errors.New("order is not pending")
)

// OrderStore is the slice of the order repository the service needs
type OrderStore interface {
	Create(order *models.Order) error
	GetByOrderNo(orderNo string) (*models.Order, error)
	Update(order *models.Order) error
}

// TenantStore loads and saves the tenant an order belongs to
type TenantStore interface {
	GetByID(id uint) (*models.Tenant, error)
	Update(tenant *models.Tenant) error
}

// Service owns the order lifecycle. The payment gateway itself is an
// external collaborator: we create a pending order for its checkout and
// apply its completion/failure callback to the tenant's subscription state.
type Service struct {
	orders  OrderStore
	tenants TenantStore
}

// NewService creates a billing service over the given stores
func NewService(orders OrderStore, tenants TenantStore) *Service {
	return &Service{orders: orders, tenants: tenants}
}

// CreateCheckout opens a pending order for the given package
func (s *Service) CreateCheckout(tenantID uint, packageType string, amount int64, currency string) (*models.Order, error) {
	if !IsPurchasable(packageType) {
		return nil, ErrInvalidPackage
	}
	if _, err := s.tenants.GetByID(tenantID); err != nil {
		return nil, fmt.Errorf("failed to resolve tenant %d: %w", tenantID, err)
	}
	if currency == "" {
		currency = "TRY"
	}

	order := &models.Order{
		OrderNo:     models.NewOrderNo(),
		TenantID:    tenantID,
		PackageType: normalizePackage(packageType),
		Amount:      amount,
		Currency:    currency,
		Status:      models.ORDER_STATUS_PENDING,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// HandleCallback applies a gateway result to the order and, on completion,
// to the owning tenant: package type, storage limit and a subscription
// expiry one year out.
func (s *Service) HandleCallback(orderNo, providerPaymentID, status string, now time.Time) (*models.Order, error) {
	order, err := s.orders.GetByOrderNo(orderNo)
	if err != nil {
		return nil, ErrUnknownOrder
	}
	if !order.IsPending() {
		// callbacks can arrive more than once; a settled order stays settled
		return order, ErrOrderNotPending
	}

	switch status {
	case models.ORDER_STATUS_COMPLETED:
		completedAt := now
		order.Status = models.ORDER_STATUS_COMPLETED
		order.ProviderPaymentID = providerPaymentID
		order.CompletedAt = &completedAt
		if err := s.orders.Update(order); err != nil {
			return nil, fmt.Errorf("failed to complete order %s: %w", orderNo, err)
		}
		if err := s.activateTenant(order, now); err != nil {
			return nil, err
		}
	case models.ORDER_STATUS_FAILED, models.ORDER_STATUS_REFUNDED:
		order.Status = status
		order.ProviderPaymentID = providerPaymentID
		if err := s.orders.Update(order); err != nil {
			return nil, fmt.Errorf("failed to update order %s: %w", orderNo, err)
		}
	default:
		return nil, fmt.Errorf("unsupported callback status %q", status)
	}

	return order, nil
}

func (s *Service) activateTenant(order *models.Order, now time.Time) error {
	tenant, err := s.tenants.GetByID(order.TenantID)
	if err != nil {
		return fmt.Errorf("failed to resolve tenant %d: %w", order.TenantID, err)
	}

	tenant.PackageType = order.PackageType
	tenant.StorageLimit = StorageLimitFor(order.PackageType)
	tenant.SubscriptionExpiry = now.AddDate(1, 0, 0)
	tenant.IsActive = true

	if err := s.tenants.Update(tenant); err != nil {
		return fmt.Errorf("failed to activate tenant %d: %w", tenant.ID, err)
	}

	log.Infof("[Billing] Order %s completed: tenant %d on %s until %s",
		order.OrderNo, tenant.ID, tenant.PackageType, tenant.SubscriptionExpiry.Format(time.RFC3339))
	return nil
}
