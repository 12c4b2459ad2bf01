package models

import (
	"fmt"
	"time"
)

const (
	// MEDIA_KIND_LIBRARY is the full set of uploaded photos. Only library
	// items count toward the tenant's storage quota.
	MEDIA_KIND_LIBRARY = "library"
	// MEDIA_KIND_SELECTED marks the delivery subset picked by the couple.
	// Selected items reference the same stored bytes as their library
	// counterpart and are excluded from quota accounting.
	MEDIA_KIND_SELECTED = "selected"
)

// MediaItem is one photo belonging to a customer record. URL points at the
// public CDN location; FileName plus the customer's StorageFolder address
// the object in the media store.
type MediaItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CustomerID  uint       `gorm:"index;not null" json:"customer_id"`
	Kind        string     `gorm:"type:varchar(20);default:'library';index" json:"kind"`
	URL         string     `gorm:"type:varchar(500);not null" json:"url"`
	FileName    string     `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize    int64      `gorm:"type:bigint;default:0" json:"file_size"`
	ContentType string     `gorm:"type:varchar(100)" json:"content_type"`
	CameraModel *string    `gorm:"type:varchar(100);default:null" json:"camera_model,omitempty"`
	CapturedAt  *time.Time `gorm:"type:timestamp;default:null" json:"captured_at"`
	UploadedAt  time.Time  `gorm:"autoCreateTime" json:"uploaded_at"`
}

// BuildSelection derives the couple's delivery subset from their library.
// Every filename must name an existing library item; the resulting rows
// reference the same stored object and URL, so no bytes are copied and
// quota accounting is unaffected. Duplicate filenames collapse to one row.
func BuildSelection(library []MediaItem, filenames []string) ([]MediaItem, error) {
	byName := make(map[string]MediaItem, len(library))
	for _, item := range library {
		byName[item.FileName] = item
	}

	seen := make(map[string]struct{}, len(filenames))
	selection := make([]MediaItem, 0, len(filenames))
	for _, name := range filenames {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		src, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("file %q is not in the library", name)
		}
		selection = append(selection, MediaItem{
			CustomerID:  src.CustomerID,
			Kind:        MEDIA_KIND_SELECTED,
			URL:         src.URL,
			FileName:    src.FileName,
			FileSize:    src.FileSize,
			ContentType: src.ContentType,
			CameraModel: src.CameraModel,
			CapturedAt:  src.CapturedAt,
		})
	}

	return selection, nil
}
