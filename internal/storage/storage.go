package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"

	cfg "github.com/batch26/keepsake/internal/config"
)

var ErrNotFound = errors.New("object not found")

// BlobPrefix is the route that serves stored objects. Records keep
// BlobPrefix+path so the backing driver can change without rewriting them.
const BlobPrefix = "/blobs/"

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, file io.Reader, contentType string) error

	// Open streams a stored file back
	Open(ctx context.Context, path string) (*Object, error)

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// URL returns the app-relative URL for accessing the file
	URL(path string) string
}

type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// New picks the driver named by STORAGE_DRIVER.
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case cfg.StorageDriverS3:
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:              c.S3Region,
			Bucket:              c.S3Bucket,
			AccessKey:           c.S3AccessKey,
			SecretKey:           c.S3SecretKey,
			Endpoint:            c.S3Endpoint,
			PresignExpiryPublic: c.S3PresignExpiryPublic,
		})
	default:
		slog.Info("initializing in-memory storage", "hint", "uploads are lost on restart")
		return NewMemoryStorage(), nil
	}
}
