// Package profilepics persists profile pictures keyed by a deterministic id
// derived from the image content hash, so inserting the same image twice
// yields the same row.
package profilepics

import (
	"context"

	"github.com/sealvault/sealvault-core/internal/db/detid"
)

type Repository interface {
	// CreateIfNotExists stores the image and returns its deterministic id.
	// The natural key is the image content hash; re-inserting an identical
	// image is a no-op. imageName is optional display metadata.
	CreateIfNotExists(ctx context.Context, image []byte, imageName *string) (detid.DeterministicId, error)

	// FetchImage returns the image bytes for a picture id.
	FetchImage(ctx context.Context, id detid.DeterministicId) ([]byte, error)
}
