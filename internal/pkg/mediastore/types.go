package mediastore

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a single entry in a storage folder listing
type ObjectInfo struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	IsDirectory bool      `json:"is_directory"`
}

// ObjectStore is the contract to the remote media storage (CDN-backed).
// Put returns the public URL the object is served from. Delete reports
// failure through its error; callers in batch cleanup treat that as
// non-fatal and continue.
type ObjectStore interface {
	Put(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, folder, filename string) error
	List(ctx context.Context, folder string) ([]ObjectInfo, error)
	PublicURL(folder, filename string) string
}
