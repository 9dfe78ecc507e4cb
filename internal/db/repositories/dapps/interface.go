// Package dapps persists registered dapps keyed by a deterministic,
// content-addressed identifier derived from the dapp's human-readable site
// identifier. Creation is idempotent: repeated or concurrent registrations of
// the same site converge on a single row.
package dapps

import (
	"context"

	"github.com/sealvault/sealvault-core/internal/db/detid"
)

// Dapp is a registered dapp row.
type Dapp struct {
	DeterministicID detid.DeterministicId
	Identifier      string
	URL             string
	CreatedAt       string
	UpdatedAt       *string
}

type Repository interface {
	// CreateIfNotExists registers the dapp at rawURL and returns its
	// deterministic id. The write is insert-or-ignore on the derived id, so
	// the operation is idempotent and concurrent duplicate registrations are
	// harmless.
	CreateIfNotExists(ctx context.Context, rawURL string) (detid.DeterministicId, error)

	// FetchIdentifier returns the human-readable site identifier for a dapp id.
	FetchIdentifier(ctx context.Context, id detid.DeterministicId) (string, error)

	// ListAll returns every registered dapp.
	ListAll(ctx context.Context) ([]Dapp, error)

	// ListIDsDesc returns up to limit dapp ids, most recently updated first.
	ListIDsDesc(ctx context.Context, limit int) ([]detid.DeterministicId, error)
}
