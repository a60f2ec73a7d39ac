package kyc

import (
	"context"
	"time"
)

// ObjectInfo describes a stored document.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ObjectStorageService abstracts the object store holding KYC documents.
// Implemented by storage.S3ObjectStorage; storage.StubObjectStorage is
// available for development without a bucket.
type ObjectStorageService interface {
	// Upload stores data under storageKey.
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL returns a presigned GET URL and its expiry.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// ListObjects returns the objects under a key prefix.
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// DeleteObject removes an object. Deleting a missing key is not an error.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether an object is present.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
