package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_SUPERADMIN = "superadmin"
	ROLE_ADMIN      = "admin" // photographer / studio owner
	ROLE_CUSTOMER   = "customer"

	PACKAGE_TRIAL     = "trial"
	PACKAGE_STANDARD  = "standard"
	PACKAGE_CORPORATE = "corporate"
)

// Tenant is a studio/photographer account. It is the billing and quota unit:
// StorageUsage caches the aggregate size of all media across the tenant's
// customers and is only ever written by the quota ledger resync.
type Tenant struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	StudioName         string         `gorm:"type:varchar(150)" json:"studio_name" validate:"required,min=2,max=150"`
	Email              string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password           string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role               string         `gorm:"type:varchar(50);default:'admin'" json:"role" validate:"oneof=superadmin admin customer"`
	Phone              string         `gorm:"type:varchar(30)" json:"phone"`
	IsEmailVerified    bool           `gorm:"default:false" json:"is_email_verified"`
	IsActive           bool           `gorm:"default:false" json:"is_active"`
	PackageType        string         `gorm:"type:varchar(50);default:'trial'" json:"package_type" validate:"oneof=trial standard corporate"`
	SubscriptionExpiry time.Time      `json:"subscription_expiry"`
	StorageUsage       int64          `gorm:"type:bigint;default:0" json:"storage_usage"`
	StorageLimit       int64          `gorm:"type:bigint;default:21474836480" json:"storage_limit"`
	AutoDeleteMedia    bool           `gorm:"default:false" json:"auto_delete_media"`
	VerificationToken  string         `gorm:"type:varchar(100);index" json:"-"`
	VerificationSentAt *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	LastLoginAt        *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tenant) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// CreateTenant builds an unsaved tenant with a hashed password. New studio
// accounts start on the trial package with a one-year subscription window.
func CreateTenant(studioName string, email string, password string) (*Tenant, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	t := &Tenant{
		StudioName:         studioName,
		Email:              email,
		Password:           pw,
		Role:               ROLE_ADMIN,
		PackageType:        PACKAGE_TRIAL,
		SubscriptionExpiry: time.Now().AddDate(1, 0, 0),
	}

	err = t.Validate()
	if err != nil {
		return nil, err
	}

	return t, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// GenerateVerificationToken creates a random token and sets VerificationSentAt
func (t *Tenant) GenerateVerificationToken() error {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	t.VerificationToken = hex.EncodeToString(b)
	now := time.Now()
	t.VerificationSentAt = &now
	return nil
}

// IsPaidPackage reports whether the tenant is on a paid tier.
func (t *Tenant) IsPaidPackage() bool {
	return t.PackageType == PACKAGE_STANDARD || t.PackageType == PACKAGE_CORPORATE
}

// SubscriptionExpired reports whether the subscription is at or past its
// expiry relative to now.
func (t *Tenant) SubscriptionExpired(now time.Time) bool {
	return !t.SubscriptionExpiry.After(now)
}
