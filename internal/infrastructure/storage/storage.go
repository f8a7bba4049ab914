// Package storage provides object storage for uploaded documents:
// customer ID photos and generated PDF documents.
package storage

import (
	"context"
	"time"
)

// ObjectStorage abstracts an S3-compatible object store.
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for direct client uploads.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// Upload writes data directly to the store (used for generated PDFs).
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// DeleteObject removes an object.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether the object is present.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
