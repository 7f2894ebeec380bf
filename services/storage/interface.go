package storage

import (
	"context"
	"io"
	"time"
)

// BlobStore defines the interface for bucket storage operations.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
	Download(ctx context.Context, objectPath string) ([]byte, error)
	Delete(ctx context.Context, objectPath string) error
	DeletePrefix(ctx context.Context, prefix string) error
	PublicURL(objectPath string) string
	SignedURL(objectPath string, expires time.Duration) (string, error)
	Bucket() string
}
