package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	CUSTOMER_STATUS_ACTIVE    = "active"
	CUSTOMER_STATUS_COMPLETED = "completed"
	CUSTOMER_STATUS_ARCHIVED  = "archived"

	APPOINTMENT_STATUS_PENDING  = "shoot_pending"
	APPOINTMENT_STATUS_DONE     = "shoot_done"
	APPOINTMENT_STATUS_UPLOADED = "photos_uploaded"
	APPOINTMENT_STATUS_SELECTED = "photos_selected"

	ALBUM_STATUS_NONE       = "not_started"
	ALBUM_STATUS_DESIGN     = "in_design"
	ALBUM_STATUS_PRINTING   = "printing"
	ALBUM_STATUS_SHIPPING   = "shipping"
	ALBUM_STATUS_READY      = "ready_for_delivery"
	ALBUM_STATUS_DELIVERED  = "delivered"
)

// Customer is a couple/client owned by exactly one tenant. StorageFolder is
// the immutable object-store folder for this record: it is generated once at
// creation and never re-derived from the (mutable) name fields, so renaming
// a couple cannot orphan previously uploaded media.
type Customer struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	TenantID          uint           `gorm:"index;not null" json:"tenant_id"`
	Tenant            Tenant         `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	BrideName         string         `gorm:"type:varchar(150);not null" json:"bride_name" validate:"required,min=2,max=150"`
	GroomName         string         `gorm:"type:varchar(150)" json:"groom_name" validate:"max=150"`
	Phone             string         `gorm:"type:varchar(30)" json:"phone" validate:"required"`
	Email             string         `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email"`
	WeddingDate       *time.Time     `gorm:"type:date" json:"wedding_date"`
	Status            string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active completed archived"`
	AppointmentStatus string         `gorm:"type:varchar(50);default:'shoot_pending'" json:"appointment_status"`
	AlbumStatus       string         `gorm:"type:varchar(50);default:'not_started'" json:"album_status"`
	DeliveredAt       *time.Time     `gorm:"type:timestamp;default:null" json:"delivered_at"`
	StorageFolder     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"storage_folder"`
	SelectionDone     bool           `gorm:"default:false" json:"selection_done"`
	Media             []MediaItem    `gorm:"foreignKey:CustomerID" json:"media,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// CreateCustomer builds an unsaved customer record with its storage folder
// assigned. The uuid suffix keeps folders unique across couples that share
// names.
func CreateCustomer(tenantID uint, brideName, groomName, phone string) (*Customer, error) {
	c := &Customer{
		TenantID:      tenantID,
		BrideName:     brideName,
		GroomName:     groomName,
		Phone:         phone,
		Status:        CUSTOMER_STATUS_ACTIVE,
		StorageFolder: NewStorageFolder(brideName, groomName),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// NewStorageFolder derives a permanent object-store folder name from the
// couple's names at creation time. Callers must persist the result; it must
// not be recomputed later.
func NewStorageFolder(brideName, groomName string) string {
	base := slug.Make(fmt.Sprintf("%s-%s", brideName, groomName))
	base = strings.Trim(base, "-")
	if base == "" {
		base = "couple"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s", base, suffix)
}

// MarkDelivered stamps album delivery. DeliveredAt starts the retention
// window for auto cleanup.
func (c *Customer) MarkDelivered(now time.Time) {
	c.AlbumStatus = ALBUM_STATUS_DELIVERED
	c.DeliveredAt = &now
}

// LibraryMedia returns the media items that count toward the storage quota.
func (c *Customer) LibraryMedia() []MediaItem {
	out := make([]MediaItem, 0, len(c.Media))
	for _, m := range c.Media {
		if m.Kind == MEDIA_KIND_LIBRARY {
			out = append(out, m)
		}
	}
	return out
}

// SelectedMedia returns the delivery subset chosen by the couple.
func (c *Customer) SelectedMedia() []MediaItem {
	out := make([]MediaItem, 0)
	for _, m := range c.Media {
		if m.Kind == MEDIA_KIND_SELECTED {
			out = append(out, m)
		}
	}
	return out
}
