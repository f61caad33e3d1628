package payment

import (
	"context"
	"time"
)

// ObjectStorageService abstracts the object store holding payment screenshots.
// Implementations live in infrastructure/storage.
type ObjectStorageService interface {
	// Upload stores the given bytes under storageKey
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL returns a presigned URL for reading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// ObjectURL returns the stable public URL for a stored object
	ObjectURL(storageKey string) string

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}
