package controllers

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/mediameta"
	"github.com/albumdesk/albumdesk/internal/pkg/mediastore"
	"github.com/albumdesk/albumdesk/internal/pkg/quota"
	"github.com/albumdesk/albumdesk/internal/pkg/upload"
)

var mediaLedger *quota.Ledger

// InitializeMediaController wires the quota ledger over the global
// repositories. Must run after the repository factory is initialized.
func InitializeMediaController() {
	repos := repository.GetGlobalFactory().GetRepositories()
	mediaLedger = quota.NewLedger(repos.Tenant, repos.Media)
}

// HandleMediaUpload accepts one photo for a customer's library.
// POST /api/v1/customers/:id/media (multipart, field "file")
func HandleMediaUpload(c *fiber.Ctx) error {
	if !models.GetAppSettings().IsMediaUploadEnabled() {
		return jsonError(c, fiber.StatusServiceUnavailable, "uploads_disabled", "media uploads are currently disabled")
	}

	customer, err := requireOwnCustomer(c, false)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "missing file field")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unreadable upload")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unreadable upload")
	}
	contentType, err := upload.ValidateImageBySniff(fileHeader.Filename, head[:n])
	if err != nil {
		return jsonError(c, fiber.StatusUnsupportedMediaType, "unsupported_media_type", err.Error())
	}

	// Quota is checked against the cached aggregate before any bytes leave
	// the request.
	tenantRepo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := tenantRepo.GetByID(customer.TenantID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "tenant lookup failed")
	}
	if err := mediaLedger.CheckQuota(tenant, fileHeader.Size); err != nil {
		return jsonError(c, fiber.StatusForbidden, "quota_exceeded",
			fmt.Sprintf("storage quota exceeded: %d of %d bytes used, upload of %d bytes does not fit",
				tenant.StorageUsage, tenant.StorageLimit, fileHeader.Size))
	}

	filename := filepath.Base(fileHeader.Filename)
	item := &models.MediaItem{
		CustomerID:  customer.ID,
		Kind:        models.MEDIA_KIND_LIBRARY,
		FileName:    filename,
		FileSize:    fileHeader.Size,
		ContentType: contentType,
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "upload rewind failed")
	}
	mediameta.ExtractMetadata(item, f)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "upload rewind failed")
	}
	url, err := mediastore.GetStore().Put(c.UserContext(), customer.StorageFolder, filename, f, fileHeader.Size, contentType)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("[Media] Upload to store failed for %s/%s: %v", customer.StorageFolder, filename, err))
		return jsonError(c, fiber.StatusBadGateway, "storage_error", "failed to store photo")
	}
	item.URL = url

	if err := repository.GetGlobalFactory().GetMediaRepository().Create(item); err != nil {
		// The object is already stored; the next media sync picks it up.
		fiberlog.Error(fmt.Sprintf("[Media] DB insert failed after upload, orphaned object %s/%s: %v",
			customer.StorageFolder, filename, err))
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to record photo")
	}

	if _, err := mediaLedger.Resync(); err != nil {
		fiberlog.Error("[Media] Quota resync after upload failed: ", err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploadResponse(item, customer.TenantID))
}

// uploadResponse builds the 201 body. The quota snapshot is best effort: a
// failed read is logged and the field omitted, never serialized as null.
func uploadResponse(item *models.MediaItem, tenantID uint) fiber.Map {
	resp := fiber.Map{"media": item}
	if snapshot, err := mediaLedger.Snapshot(tenantID); err != nil {
		fiberlog.Error("[Media] Quota snapshot after upload failed: ", err)
	} else {
		resp["quota"] = snapshot
	}
	return resp
}

// normalizeFileNames strips any path component from client-supplied names
// and drops empties and duplicates.
func normalizeFileNames(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, name := range in {
		name = filepath.Base(name)
		if name == "." || name == string(filepath.Separator) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// HandleMediaList returns a customer's media split by kind.
// GET /api/v1/customers/:id/media
func HandleMediaList(c *fiber.Ctx) error {
	customer, err := requireOwnCustomer(c, true)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"library":  customer.LibraryMedia(),
		"selected": customer.SelectedMedia(),
	})
}

// HandleMediaBatchDelete removes the named files from the customer's
// library. Remote delete failures are logged and counted; the database rows
// for the remaining names are still removed.
// DELETE /api/v1/customers/:id/media
func HandleMediaBatchDelete(c *fiber.Ctx) error {
	customer, err := requireOwnCustomer(c, false)
	if err != nil {
		return err
	}

	var req struct {
		FileNames []string `json:"file_names"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "file_names must be a non-empty array")
	}

	// Remote delete and DB delete must operate on the same names, or a
	// path-carrying request removes the object but leaves its row behind.
	names := normalizeFileNames(req.FileNames)
	if len(names) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "file_names must be a non-empty array")
	}

	store := mediastore.GetStore()
	remoteErrors := 0
	for _, name := range names {
		if err := store.Delete(c.UserContext(), customer.StorageFolder, name); err != nil {
			fiberlog.Error(fmt.Sprintf("[Media] Remote delete failed for %s/%s: %v", customer.StorageFolder, name, err))
			remoteErrors++
		}
	}

	if err := repository.GetGlobalFactory().GetMediaRepository().DeleteByFilenames(customer.ID, names); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to remove records")
	}

	if _, err := mediaLedger.Resync(); err != nil {
		fiberlog.Error("[Media] Quota resync after delete failed: ", err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"deleted":       len(names),
		"remote_errors": remoteErrors,
	})
}

// HandleMediaSync rebuilds the customer's library rows from what actually
// sits in the object store. Used to recover from partial uploads or manual
// changes in the storage backend.
// POST /api/v1/customers/:id/media/sync
func HandleMediaSync(c *fiber.Ctx) error {
	customer, err := requireOwnCustomer(c, false)
	if err != nil {
		return err
	}

	store := mediastore.GetStore()
	objects, err := store.List(c.UserContext(), customer.StorageFolder)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("[Media] Store listing failed for %s: %v", customer.StorageFolder, err))
		return jsonError(c, fiber.StatusBadGateway, "storage_error", "failed to list stored photos")
	}

	items := make([]models.MediaItem, 0, len(objects))
	for _, obj := range objects {
		if obj.IsDirectory {
			continue
		}
		created := obj.CreatedAt
		items = append(items, models.MediaItem{
			CustomerID: customer.ID,
			Kind:       models.MEDIA_KIND_LIBRARY,
			URL:        store.PublicURL(customer.StorageFolder, obj.Name),
			FileName:   obj.Name,
			FileSize:   obj.Size,
			UploadedAt: created,
		})
	}

	if err := repository.GetGlobalFactory().GetMediaRepository().ReplaceLibrary(customer.ID, items); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to rebuild library")
	}

	if _, err := mediaLedger.Resync(); err != nil {
		fiberlog.Error("[Media] Quota resync after sync failed: ", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"synced":  len(items),
	})
}
