package localsettings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sealvault/sealvault-core/internal/dbx"
)

// singletonID is the primary key of the only local_settings row. The row is
// created by the schema migration.
const singletonID = "local_settings"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx). Binding to a DBTX lets callers run several fetches inside one
// transaction, e.g. reading the backup version and timestamp as a consistent
// pair.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) FetchBackupVersion(ctx context.Context) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT backup_version FROM local_settings WHERE id = ?`, singletonID,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch backup version: %w", err)
	}
	return version, nil
}

func (r *SQLiteRepository) FetchBackupTimestamp(ctx context.Context) (*string, error) {
	var timestamp sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT backup_completed_at FROM local_settings WHERE id = ?`, singletonID,
	).Scan(&timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backup timestamp: %w", err)
	}
	if !timestamp.Valid {
		return nil, nil
	}
	return &timestamp.String, nil
}

func (r *SQLiteRepository) IncrementBackupVersion(ctx context.Context) (int64, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE local_settings SET backup_version = backup_version + 1 WHERE id = ?`, singletonID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to increment backup version: %w", err)
	}
	return r.FetchBackupVersion(ctx)
}

func (r *SQLiteRepository) SetBackupTimestamp(ctx context.Context, timestamp string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE local_settings SET backup_completed_at = ? WHERE id = ?`, timestamp, singletonID,
	)
	if err != nil {
		return fmt.Errorf("failed to set backup timestamp: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FetchBackupEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := r.db.QueryRowContext(ctx,
		`SELECT backup_enabled FROM local_settings WHERE id = ?`, singletonID,
	).Scan(&enabled)
	if err != nil {
		return false, fmt.Errorf("failed to fetch backup enabled: %w", err)
	}
	return enabled, nil
}

func (r *SQLiteRepository) SetBackupEnabled(ctx context.Context, enabled bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE local_settings SET backup_enabled = ? WHERE id = ?`, enabled, singletonID,
	)
	if err != nil {
		return fmt.Errorf("failed to set backup enabled: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FetchDeviceID(ctx context.Context) (*string, error) {
	var deviceID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT device_id FROM local_settings WHERE id = ?`, singletonID,
	).Scan(&deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device id: %w", err)
	}
	if !deviceID.Valid {
		return nil, nil
	}
	return &deviceID.String, nil
}

func (r *SQLiteRepository) SetDeviceID(ctx context.Context, deviceID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE local_settings SET device_id = ? WHERE id = ?`, deviceID, singletonID,
	)
	if err != nil {
		return fmt.Errorf("failed to set device id: %w", err)
	}
	return nil
}
