package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/albumdesk/albumdesk/app/models"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	valid := now.AddDate(1, 0, 0)

	tests := []struct {
		name         string
		in           Input
		wantState    State
		wantRedirect string
	}{
		{
			name:      "superadmin always bypasses",
			in:        Input{Role: models.ROLE_SUPERADMIN, EmailVerified: false, Now: now, Path: "/admin/tenants"},
			wantState: StateSuperadminBypass,
		},
		{
			name:      "customer always bypasses",
			in:        Input{Role: models.ROLE_CUSTOMER, Now: now, Path: "/gallery"},
			wantState: StateCustomerBypass,
		},
		{
			name:         "unverified admin redirected to verification",
			in:           Input{Role: models.ROLE_ADMIN, EmailVerified: false, Active: true, ExpiresAt: valid, Now: now, Path: "/admin/dashboard"},
			wantState:    StateUnverifiedEmail,
			wantRedirect: "/verify-required",
		},
		{
			name:      "unverified admin allowed on verification page itself",
			in:        Input{Role: models.ROLE_ADMIN, EmailVerified: false, Now: now, Path: "/verify-required"},
			wantState: StateUnverifiedEmail,
		},
		{
			name:         "inactive standard tier redirected to checkout",
			in:           Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: false, PackageType: models.PACKAGE_STANDARD, ExpiresAt: valid, Now: now, Path: "/admin/customers"},
			wantState:    StatePaymentRequired,
			wantRedirect: "/checkout?package=standard",
		},
		{
			name:         "inactive corporate tier redirected with package preselected",
			in:           Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: false, PackageType: models.PACKAGE_CORPORATE, ExpiresAt: valid, Now: now, Path: "/admin/customers"},
			wantState:    StatePaymentRequired,
			wantRedirect: "/checkout?package=corporate",
		},
		{
			name:      "inactive paid tier allowed on checkout page itself",
			in:        Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: false, PackageType: models.PACKAGE_STANDARD, ExpiresAt: valid, Now: now, Path: "/checkout"},
			wantState: StatePaymentRequired,
		},
		{
			name:      "inactive trial is not payment gated",
			in:        Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: false, PackageType: models.PACKAGE_TRIAL, ExpiresAt: valid, Now: now, Path: "/admin/dashboard"},
			wantState: StateActive,
		},
		{
			name:         "expired subscription redirected to plan selection",
			in:           Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: true, PackageType: models.PACKAGE_STANDARD, ExpiresAt: now.Add(-time.Second), Now: now, Path: "/admin/dashboard"},
			wantState:    StateSubscriptionExpired,
			wantRedirect: "/packages?expired=true",
		},
		{
			name:         "expiry exactly at now counts as expired",
			in:           Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: true, PackageType: models.PACKAGE_STANDARD, ExpiresAt: now, Now: now, Path: "/admin/dashboard"},
			wantState:    StateSubscriptionExpired,
			wantRedirect: "/packages?expired=true",
		},
		{
			name:      "expired admin allowed on packages page itself",
			in:        Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: true, PackageType: models.PACKAGE_STANDARD, ExpiresAt: now.Add(-time.Hour), Now: now, Path: "/packages"},
			wantState: StateSubscriptionExpired,
		},
		{
			name:      "active subscription one day from expiry allowed",
			in:        Input{Role: models.ROLE_ADMIN, EmailVerified: true, Active: true, PackageType: models.PACKAGE_STANDARD, ExpiresAt: now.Add(24 * time.Hour), Now: now, Path: "/admin/dashboard"},
			wantState: StateActive,
		},
		{
			name:         "verification outranks payment gating",
			in:           Input{Role: models.ROLE_ADMIN, EmailVerified: false, Active: false, PackageType: models.PACKAGE_CORPORATE, ExpiresAt: now.Add(-time.Hour), Now: now, Path: "/admin/dashboard"},
			wantState:    StateUnverifiedEmail,
			wantRedirect: "/verify-required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.in)
			assert.Equal(t, tt.wantState, got.State)
			assert.Equal(t, tt.wantRedirect, got.RedirectTo)
			assert.Equal(t, tt.wantRedirect == "", got.Allowed())
		})
	}
}
