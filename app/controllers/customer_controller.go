package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/mail"
	"github.com/albumdesk/albumdesk/internal/pkg/tenantcontext"
)

// HandleCustomerCreate registers a new couple for the logged-in studio.
// The storage folder is assigned here, once, and never changes afterwards.
// POST /api/v1/customers
func HandleCustomerCreate(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	if tenantID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	var req struct {
		BrideName   string `json:"bride_name"`
		GroomName   string `json:"groom_name"`
		Phone       string `json:"phone"`
		Email       string `json:"email"`
		WeddingDate string `json:"wedding_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	customer, err := models.CreateCustomer(tenantID, req.BrideName, req.GroomName, req.Phone)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	customer.Email = req.Email
	if req.WeddingDate != "" {
		if d, err := time.Parse("2006-01-02", req.WeddingDate); err == nil {
			customer.WeddingDate = &d
		}
	}

	if err := repository.GetGlobalFactory().GetCustomerRepository().Create(customer); err != nil {
		fiberlog.Error("[Customer] Create failed: ", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create customer")
	}

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleCustomerList pages through the studio's customers.
// GET /api/v1/customers?offset=0&limit=50
func HandleCustomerList(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	if tenantID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customers, err := repo.GetByTenantID(tenantID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "customer listing failed")
	}
	total, err := repo.CountByTenantID(tenantID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "customer listing failed")
	}

	return c.JSON(fiber.Map{
		"customers": customers,
		"total":     total,
		"offset":    offset,
		"limit":     limit,
	})
}

// HandleCustomerGet returns one customer with its media.
// GET /api/v1/customers/:id
func HandleCustomerGet(c *fiber.Ctx) error {
	customer, err := requireOwnCustomer(c, true)
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

// HandleCustomerStatusUpdate moves a customer through the workflow states.
// Names stay mutable; the storage folder is deliberately not touched.
// PATCH /api/v1/customers/:id
func HandleCustomerStatusUpdate(c *fiber.Ctx) error {
	customer, err := requireOwnCustomer(c, false)
	if err != nil {
		return err
	}

	var req struct {
		BrideName         *string `json:"bride_name"`
		GroomName         *string `json:"groom_name"`
		Status            *string `json:"status"`
		AppointmentStatus *string `json:"appointment_status"`
		AlbumStatus       *string `json:"album_status"`
		SelectionDone     *bool   `json:"selection_done"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if req.BrideName != nil {
		customer.BrideName = *req.BrideName
	}
	if req.GroomName != nil {
		customer.GroomName = *req.GroomName
	}
	if req.Status != nil {
		customer.Status = *req.Status
	}
	if req.AppointmentStatus != nil {
		customer.AppointmentStatus = *req.AppointmentStatus
	}
	if req.AlbumStatus != nil {
		customer.AlbumStatus = *req.AlbumStatus
	}
	if req.SelectionDone != nil {
		customer.SelectionDone = *req.SelectionDone
	}

	if err := customer.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalFactory().GetCustomerRepository().Update(customer); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update customer")
	}

	return c.JSON(customer)
}

// HandleCustomerDeliver stamps the album as delivered, which starts the
// retention window, and notifies the couple by mail when they have one.
// POST /api/v1/customers/:id/deliver
func HandleCustomerDeliver(c *fiber.Ctx) error {
	customer, err := requireOwnCustomer(c, false)
	if err != nil {
		return err
	}

	if customer.AlbumStatus == models.ALBUM_STATUS_DELIVERED {
		return c.JSON(fiber.Map{"success": true, "message": "album already delivered"})
	}

	customer.MarkDelivered(time.Now())
	if err := repository.GetGlobalFactory().GetCustomerRepository().Update(customer); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update customer")
	}

	if customer.Email != "" {
		if err := mail.SendAlbumDeliveredMail(customer, customer.Email); err != nil {
			fiberlog.Error("[Customer] Delivery mail failed: ", err)
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"delivered_at": customer.DeliveredAt,
	})
}

// HandleCustomerSelection replaces the couple's delivery selection with the
// named library files. Selected rows point at the already stored objects,
// so quota accounting is untouched. An empty list clears the selection.
// PUT /api/v1/customers/:id/selection
func HandleCustomerSelection(c *fiber.Ctx) error {
	customer, err := requireOwnCustomer(c, true)
	if err != nil {
		return err
	}

	var req struct {
		FileNames []string `json:"file_names"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	selection, err := models.BuildSelection(customer.LibraryMedia(), req.FileNames)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "unknown_file", err.Error())
	}

	factory := repository.GetGlobalFactory()
	if err := factory.GetMediaRepository().ReplaceSelection(customer.ID, selection); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to save selection")
	}

	customer.SelectionDone = len(selection) > 0
	if customer.SelectionDone {
		customer.AppointmentStatus = models.APPOINTMENT_STATUS_SELECTED
	}
	if err := factory.GetCustomerRepository().Update(customer); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update customer")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"selected": len(selection),
	})
}
