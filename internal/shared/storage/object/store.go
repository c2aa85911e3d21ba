package object

import (
	"context"
	"io"
)

// ObjectStore persists uploaded resumes, extracted text and rendered
// exports. Save returns an opaque storage key that Open accepts later;
// keys are scoped per user by the implementation.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	// SaveWithKey writes at an exact storage key, used for derived
	// artifacts that live next to an original.
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
