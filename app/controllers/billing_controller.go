package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/billing"
	"github.com/albumdesk/albumdesk/internal/pkg/tenantcontext"
)

var billingService *billing.Service

// InitializeBillingController wires the billing service over the global
// repositories.
func InitializeBillingController() {
	repos := repository.GetGlobalFactory().GetRepositories()
	billingService = billing.NewService(repos.Order, repos.Tenant)
}

// HandleCheckout opens a pending order for the requested package and
// returns what the payment page needs.
// POST /api/v1/billing/checkout?package=standard
func HandleCheckout(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	if tenantID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	packageType := c.Query("package")
	if packageType == "" {
		var req struct {
			Package string `json:"package"`
		}
		if err := c.BodyParser(&req); err == nil {
			packageType = req.Package
		}
	}

	order, err := billingService.CreateCheckout(tenantID, packageType, billing.PriceFor(packageType), "TRY")
	if err != nil {
		if errors.Is(err, billing.ErrInvalidPackage) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_package", "this package cannot be purchased")
		}
		fiberlog.Error("[Billing] Checkout failed: ", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "checkout failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_no":     order.OrderNo,
		"package_type": order.PackageType,
		"amount":       order.Amount,
		"currency":     order.Currency,
	})
}

// HandleBillingCallback applies the payment gateway's verdict to an order.
// A completed payment activates the tenant's subscription for one year.
// POST /api/v1/billing/callback
func HandleBillingCallback(c *fiber.Ctx) error {
	var req struct {
		OrderNo           string `json:"order_no"`
		ProviderPaymentID string `json:"provider_payment_id"`
		Status            string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.OrderNo == "" || req.Status == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "order_no and status are required")
	}

	order, err := billingService.HandleCallback(req.OrderNo, req.ProviderPaymentID, req.Status, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrUnknownOrder):
			return jsonError(c, fiber.StatusNotFound, "not_found", "unknown order")
		case errors.Is(err, billing.ErrOrderNotPending):
			// Replayed callback: acknowledge without reapplying.
			return c.JSON(fiber.Map{"success": true, "message": "order already settled"})
		default:
			fiberlog.Error("[Billing] Callback failed: ", err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "callback processing failed")
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"order_no": order.OrderNo,
		"status":   order.Status,
	})
}
