package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"
)

const (
	ORDER_STATUS_PENDING   = "pending"
	ORDER_STATUS_COMPLETED = "completed"
	ORDER_STATUS_FAILED    = "failed"
	ORDER_STATUS_REFUNDED  = "refunded"
)

// Order tracks a package purchase. The payment gateway is an external
// collaborator: it receives the checkout and posts back completion or
// failure, which transitions the order and mutates the tenant's
// subscription state.
type Order struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	OrderNo           string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_no"`
	TenantID          uint           `gorm:"index;not null" json:"tenant_id"`
	Tenant            Tenant         `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	PackageType       string         `gorm:"type:varchar(50);not null" json:"package_type"`
	Amount            int64          `gorm:"type:bigint;not null" json:"amount"` // minor currency units
	Currency          string         `gorm:"type:varchar(10);default:'TRY'" json:"currency"`
	Status            string         `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ProviderPaymentID string         `gorm:"type:varchar(100)" json:"provider_payment_id"`
	CompletedAt       *time.Time     `gorm:"type:timestamp;default:null" json:"completed_at"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewOrderNo generates a human-readable order tracking number (AD-123456).
func NewOrderNo() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return fmt.Sprintf("AD-%d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("AD-%06d", n.Int64()+100000)
}

// IsPending reports whether the order still awaits a gateway callback.
func (o *Order) IsPending() bool {
	return o.Status == ORDER_STATUS_PENDING
}
