package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albumdesk/albumdesk/app/models"
)

type fakeOrderStore struct {
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (s *fakeOrderStore) Create(order *models.Order) error {
	order.ID = uint(len(s.orders) + 1)
	s.orders[order.OrderNo] = order
	return nil
}

func (s *fakeOrderStore) GetByOrderNo(orderNo string) (*models.Order, error) {
	o, ok := s.orders[orderNo]
	if !ok {
		return nil, errors.New("record not found")
	}
	return o, nil
}

func (s *fakeOrderStore) Update(order *models.Order) error {
	s.orders[order.OrderNo] = order
	return nil
}

type fakeTenantStore struct {
	tenants map[uint]*models.Tenant
}

func (s *fakeTenantStore) GetByID(id uint) (*models.Tenant, error) {
	t, ok := s.tenants[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return t, nil
}

func (s *fakeTenantStore) Update(tenant *models.Tenant) error {
	s.tenants[tenant.ID] = tenant
	return nil
}

func TestStorageLimitFor(t *testing.T) {
	assert.Equal(t, int64(10737418240), StorageLimitFor("standard"))
	assert.Equal(t, int64(32212254720), StorageLimitFor("corporate"))
	assert.Equal(t, int64(21474836480), StorageLimitFor("trial"))
	assert.Equal(t, int64(21474836480), StorageLimitFor("bogus"))
	assert.Equal(t, int64(32212254720), StorageLimitFor(" CORPORATE "))
}

func TestCreateCheckoutRejectsUnpurchasablePackages(t *testing.T) {
	svc := NewService(newFakeOrderStore(), &fakeTenantStore{tenants: map[uint]*models.Tenant{1: {ID: 1}}})

	_, err := svc.CreateCheckout(1, "trial", 0, "")
	assert.ErrorIs(t, err, ErrInvalidPackage)

	_, err = svc.CreateCheckout(1, "bogus", 0, "")
	assert.ErrorIs(t, err, ErrInvalidPackage)
}

func TestCreateCheckoutCreatesPendingOrder(t *testing.T) {
	orders := newFakeOrderStore()
	svc := NewService(orders, &fakeTenantStore{tenants: map[uint]*models.Tenant{1: {ID: 1}}})

	order, err := svc.CreateCheckout(1, "standard", 149900, "")
	require.NoError(t, err)
	assert.Equal(t, models.ORDER_STATUS_PENDING, order.Status)
	assert.Equal(t, "standard", order.PackageType)
	assert.Equal(t, "TRY", order.Currency)
	assert.NotEmpty(t, order.OrderNo)
}

func TestHandleCallbackCompletionActivatesTenant(t *testing.T) {
	orders := newFakeOrderStore()
	tenants := &fakeTenantStore{tenants: map[uint]*models.Tenant{
		5: {ID: 5, PackageType: models.PACKAGE_TRIAL, IsActive: false, StorageLimit: StorageLimitTrial},
	}}
	svc := NewService(orders, tenants)

	order, err := svc.CreateCheckout(5, "corporate", 299900, "TRY")
	require.NoError(t, err)

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	completed, err := svc.HandleCallback(order.OrderNo, "pay_123", models.ORDER_STATUS_COMPLETED, now)
	require.NoError(t, err)

	assert.Equal(t, models.ORDER_STATUS_COMPLETED, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	tenant := tenants.tenants[5]
	assert.Equal(t, models.PACKAGE_CORPORATE, tenant.PackageType)
	assert.Equal(t, StorageLimitCorporate, tenant.StorageLimit)
	assert.True(t, tenant.IsActive)
	assert.Equal(t, now.AddDate(1, 0, 0), tenant.SubscriptionExpiry)
}

func TestHandleCallbackFailureLeavesTenantUntouched(t *testing.T) {
	orders := newFakeOrderStore()
	tenants := &fakeTenantStore{tenants: map[uint]*models.Tenant{
		5: {ID: 5, PackageType: models.PACKAGE_TRIAL, IsActive: false},
	}}
	svc := NewService(orders, tenants)

	order, err := svc.CreateCheckout(5, "standard", 149900, "TRY")
	require.NoError(t, err)

	failed, err := svc.HandleCallback(order.OrderNo, "pay_456", models.ORDER_STATUS_FAILED, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.ORDER_STATUS_FAILED, failed.Status)

	tenant := tenants.tenants[5]
	assert.Equal(t, models.PACKAGE_TRIAL, tenant.PackageType)
	assert.False(t, tenant.IsActive)
}

func TestHandleCallbackIsIdempotentForSettledOrders(t *testing.T) {
	orders := newFakeOrderStore()
	tenants := &fakeTenantStore{tenants: map[uint]*models.Tenant{5: {ID: 5}}}
	svc := NewService(orders, tenants)

	order, err := svc.CreateCheckout(5, "standard", 149900, "TRY")
	require.NoError(t, err)

	_, err = svc.HandleCallback(order.OrderNo, "pay_1", models.ORDER_STATUS_COMPLETED, time.Now())
	require.NoError(t, err)

	// a replayed callback must not re-apply the transition
	_, err = svc.HandleCallback(order.OrderNo, "pay_1", models.ORDER_STATUS_COMPLETED, time.Now())
	assert.ErrorIs(t, err, ErrOrderNotPending)
}

func TestHandleCallbackUnknownOrder(t *testing.T) {
	svc := NewService(newFakeOrderStore(), &fakeTenantStore{tenants: map[uint]*models.Tenant{}})

	_, err := svc.HandleCallback("AD-000000", "", models.ORDER_STATUS_COMPLETED, time.Now())
	assert.ErrorIs(t, err, ErrUnknownOrder)
}
