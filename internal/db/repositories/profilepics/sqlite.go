package profilepics

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

func (r *SQLiteRepository) CreateIfNotExists(ctx context.Context, image []byte, imageName *string) (detid.DeterministicId, error) {
	imageHash := detid.ContentHash(image)
	id := detid.Derive(detid.EntityProfilePicture, imageHash)
	createdAt := common.RFC3339Timestamp()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile_pictures (deterministic_id, image_name, image_hash, image, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (deterministic_id) DO NOTHING
	`, id.String(), imageName, imageHash, image, createdAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert profile picture: %w", err)
	}

	return id, nil
}

func (r *SQLiteRepository) FetchImage(ctx context.Context, id detid.DeterministicId) ([]byte, error) {
	var image []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT image FROM profile_pictures WHERE deterministic_id = ?`, id.String(),
	).Scan(&image)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile picture %s: %w", id, err)
	}
	return image, nil
}
