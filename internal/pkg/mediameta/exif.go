package mediameta

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"github.com/albumdesk/albumdesk/app/models"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// ExtractMetadata reads EXIF data from an uploaded photo and fills the
// capture time and camera model on the media item. Missing or unreadable
// EXIF data is not an error; most phone screenshots carry none.
func ExtractMetadata(item *models.MediaItem, r io.Reader) {
	x, err := exif.Decode(r)
	if err != nil {
		log.Info(fmt.Sprintf("[MediaMeta] No EXIF data found for %s: %v", item.FileName, err))
		return
	}

	if m, err := x.Get(exif.Model); err == nil {
		s := strings.TrimSpace(strings.Trim(m.String(), `"`))
		if s != "" {
			item.CameraModel = &s
		}
	}

	if dt, err := x.DateTime(); err == nil {
		item.CapturedAt = &dt
	}
}
