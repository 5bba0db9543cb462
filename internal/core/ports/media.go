// internal/core/ports/media.go
package ports

import (
	"context"
	"io"
	"time"
)

// MediaStore is the blob-store port for device images and uploaded
// workbooks. Implemented by the S3 adapter.
type MediaStore interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DeleteMultiple(ctx context.Context, keys []string) error
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)
	PresignUpload(ctx context.Context, key, contentType string, duration time.Duration) (string, error)
}
