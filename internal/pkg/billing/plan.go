package billing

import (
	"strings"

	"github.com/albumdesk/albumdesk/app/models"
)

// Package storage limits in bytes
const (
	StorageLimitTrial     int64 = 21474836480 // 20 GiB
	StorageLimitStandard  int64 = 10737418240 // 10 GiB
	StorageLimitCorporate int64 = 32212254720 // 30 GiB
)

func normalizePackage(packageType string) string {
	switch strings.ToLower(strings.TrimSpace(packageType)) {
	case models.PACKAGE_STANDARD:
		return models.PACKAGE_STANDARD
	case models.PACKAGE_CORPORATE:
		return models.PACKAGE_CORPORATE
	default:
		return models.PACKAGE_TRIAL
	}
}

// Package prices in minor currency units (kurus)
const (
	PriceStandard  int64 = 149900
	PriceCorporate int64 = 299900
)

// PriceFor returns the checkout price of a package, or 0 for packages that
// cannot be bought.
func PriceFor(packageType string) int64 {
	switch normalizePackage(packageType) {
	case models.PACKAGE_CORPORATE:
		return PriceCorporate
	case models.PACKAGE_STANDARD:
		return PriceStandard
	default:
		return 0
	}
}

// StorageLimitFor returns the storage quota granted by a package
func StorageLimitFor(packageType string) int64 {
	switch normalizePackage(packageType) {
	case models.PACKAGE_CORPORATE:
		return StorageLimitCorporate
	case models.PACKAGE_STANDARD:
		return StorageLimitStandard
	default:
		return StorageLimitTrial
	}
}

// IsPurchasable reports whether a package can be bought through checkout
func IsPurchasable(packageType string) bool {
	switch normalizePackage(packageType) {
	case models.PACKAGE_STANDARD, models.PACKAGE_CORPORATE:
		return true
	default:
		return false
	}
}
