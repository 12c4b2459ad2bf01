package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/internal/pkg/constants"
)

// State is the gate's classification of a tenant-scoped request
type State string

const (
	StateSuperadminBypass    State = "SUPERADMIN_BYPASS"
	StateCustomerBypass      State = "CUSTOMER_BYPASS"
	StateUnverifiedEmail     State = "UNVERIFIED_EMAIL"
	StatePaymentRequired     State = "PAYMENT_REQUIRED"
	StateSubscriptionExpired State = "SUBSCRIPTION_EXPIRED"
	StateActive              State = "ACTIVE"
)

// Input carries the tenant and request state the gate evaluates
type Input struct {
	Role          string
	EmailVerified bool
	Active        bool
	PackageType   string
	ExpiresAt     time.Time
	Now           time.Time
	Path          string
}

// Decision is the gate's verdict. An empty RedirectTo means the request
// may proceed.
type Decision struct {
	State      State
	RedirectTo string
}

// Allowed reports whether the request may proceed
func (d Decision) Allowed() bool {
	return d.RedirectTo == ""
}

// Evaluate applies the gate rules in order, first match wins. Each
// remediation page is exempted from its own redirect so the gate can never
// loop. Must run on every tenant-scoped request: subscription state changes
// asynchronously (payment callback, admin action, expiry).
func Evaluate(in Input) Decision {
	switch in.Role {
	case models.ROLE_SUPERADMIN:
		return Decision{State: StateSuperadminBypass}
	case models.ROLE_CUSTOMER:
		return Decision{State: StateCustomerBypass}
	}

	if !in.EmailVerified {
		if in.Path == constants.RouteVerifyRequired {
			return Decision{State: StateUnverifiedEmail}
		}
		return Decision{State: StateUnverifiedEmail, RedirectTo: constants.RouteVerifyRequired}
	}

	if !in.Active && isPaidPackage(in.PackageType) {
		if strings.HasPrefix(in.Path, constants.RouteCheckout) {
			return Decision{State: StatePaymentRequired}
		}
		return Decision{
			State:      StatePaymentRequired,
			RedirectTo: fmt.Sprintf("%s?package=%s", constants.RouteCheckout, in.PackageType),
		}
	}

	// expiry exactly at now counts as expired
	if !in.ExpiresAt.After(in.Now) {
		if strings.HasPrefix(in.Path, constants.RoutePackages) {
			return Decision{State: StateSubscriptionExpired}
		}
		return Decision{
			State:      StateSubscriptionExpired,
			RedirectTo: constants.RoutePackages + "?expired=true",
		}
	}

	return Decision{State: StateActive}
}

func isPaidPackage(packageType string) bool {
	return packageType == models.PACKAGE_STANDARD || packageType == models.PACKAGE_CORPORATE
}
