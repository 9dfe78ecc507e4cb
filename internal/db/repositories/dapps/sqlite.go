package dapps

import (
	"context"
	"fmt"

	"github.com/sealvault/sealvault-core/internal/common"
	"github.com/sealvault/sealvault-core/internal/db/detid"
	"github.com/sealvault/sealvault-core/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateIfNotExists(ctx context.Context, rawURL string) (detid.DeterministicId, error) {
	identifier, err := SiteIdentifier(rawURL)
	if err != nil {
		return "", err
	}

	id := detid.DeriveFromStrings(detid.EntityDapp, identifier)
	createdAt := common.RFC3339Timestamp()

	// Insert-or-ignore on the derived primary key: a second registration of
	// the same site leaves the existing row untouched.
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dapps (deterministic_id, identifier, url, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (deterministic_id) DO NOTHING
	`, id.String(), identifier, rawURL, createdAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert dapp %q: %w", identifier, err)
	}

	return id, nil
}

func (r *SQLiteRepository) FetchIdentifier(ctx context.Context, id detid.DeterministicId) (string, error) {
	var identifier string
	err := r.db.QueryRowContext(ctx,
		`SELECT identifier FROM dapps WHERE deterministic_id = ?`, id.String(),
	).Scan(&identifier)
	if err != nil {
		return "", fmt.Errorf("failed to fetch dapp identifier for %s: %w", id, err)
	}
	return identifier, nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]Dapp, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT deterministic_id, identifier, url, created_at, updated_at FROM dapps
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dapps: %w", err)
	}
	defer rows.Close()

	var result []Dapp
	for rows.Next() {
		var item Dapp
		if err := rows.Scan(&item.DeterministicID, &item.Identifier, &item.URL, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListIDsDesc(ctx context.Context, limit int) ([]detid.DeterministicId, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT deterministic_id FROM dapps
		ORDER BY updated_at DESC, created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dapp ids: %w", err)
	}
	defer rows.Close()

	var result []detid.DeterministicId
	for rows.Next() {
		var id detid.DeterministicId
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
