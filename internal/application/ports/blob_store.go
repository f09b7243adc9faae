package ports

import (
	"context"
	"io"
)

// BlobUpload is what the blob store hands back after a successful transfer.
// ProviderID is the store-assigned identifier later used for deletion.
type BlobUpload struct {
	URL        string
	SecureURL  string
	ProviderID string
	SizeBytes  uint64
}

type BlobStore interface {
	Upload(ctx context.Context, body io.Reader, key, contentType string, size int64) (*BlobUpload, error)
	Delete(ctx context.Context, providerID string) error
	GetPublicURL(key string) string
	GetBucket() string
}
