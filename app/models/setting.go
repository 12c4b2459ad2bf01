package models

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type"` // string, boolean, integer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppSettings holds the in-memory application settings
type AppSettings struct {
	SiteTitle                string `json:"site_title"`
	MediaUploadEnabled       bool   `json:"media_upload_enabled"`
	RetentionWindowDays      int    `json:"retention_window_days"`
	UploadRateLimitPerMinute int    `json:"upload_rate_limit_per_minute"`
}

var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// GetAppSettings returns the current application settings
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if appSettings == nil {
		return defaultSettings()
	}
	return appSettings
}

func defaultSettings() *AppSettings {
	return &AppSettings{
		SiteTitle:                "AlbumDesk",
		MediaUploadEnabled:       true,
		RetentionWindowDays:      30,
		UploadRateLimitPerMinute: 60,
	}
}

// LoadSettings loads settings from database into memory
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	appSettings = defaultSettings()

	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			appSettings.SiteTitle = setting.Value
		case "media_upload_enabled":
			appSettings.MediaUploadEnabled = setting.Value == "true"
		case "retention_window_days":
			if v, err := strconv.Atoi(setting.Value); err == nil && v > 0 {
				appSettings.RetentionWindowDays = v
			}
		case "upload_rate_limit_per_minute":
			if v, err := strconv.Atoi(setting.Value); err == nil && v >= 0 {
				appSettings.UploadRateLimitPerMinute = v
			}
		}
	}

	return nil
}

// IsMediaUploadEnabled reports whether uploads are globally enabled
func (s *AppSettings) IsMediaUploadEnabled() bool {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return s.MediaUploadEnabled
}

// GetRetentionWindowDays returns the configured retention window
func (s *AppSettings) GetRetentionWindowDays() int {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if s.RetentionWindowDays <= 0 {
		return 30
	}
	return s.RetentionWindowDays
}

// GetUploadRateLimitPerMinute returns the per-IP upload rate limit (0 = off)
func (s *AppSettings) GetUploadRateLimitPerMinute() int {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return s.UploadRateLimitPerMinute
}
