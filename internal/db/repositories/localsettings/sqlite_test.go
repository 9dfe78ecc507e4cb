package localsettings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE local_settings (
  id TEXT PRIMARY KEY,
  device_id TEXT,
  backup_enabled INTEGER NOT NULL DEFAULT 0,
  backup_version INTEGER NOT NULL DEFAULT 0,
  backup_completed_at TEXT
);
INSERT INTO local_settings (id) VALUES ('local_settings');
`)
	require.NoError(t, err)

	return db
}

func TestBackupVersion_DefaultAndIncrement(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	version, err := r.FetchBackupVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	next, err := r.IncrementBackupVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	next, err = r.IncrementBackupVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)

	version, err = r.FetchBackupVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestBackupTimestamp_AbsentThenSet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	timestamp, err := r.FetchBackupTimestamp(ctx)
	require.NoError(t, err)
	assert.Nil(t, timestamp, "no backup recorded yet")

	require.NoError(t, r.SetBackupTimestamp(ctx, "2023-11-14T22:13:20Z"))

	timestamp, err = r.FetchBackupTimestamp(ctx)
	require.NoError(t, err)
	require.NotNil(t, timestamp)
	assert.Equal(t, "2023-11-14T22:13:20Z", *timestamp)
}

func TestBackupEnabled_Toggle(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	enabled, err := r.FetchBackupEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, r.SetBackupEnabled(ctx, true))

	enabled, err = r.FetchBackupEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestDeviceID_AbsentThenSet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	deviceID, err := r.FetchDeviceID(ctx)
	require.NoError(t, err)
	assert.Nil(t, deviceID)

	require.NoError(t, r.SetDeviceID(ctx, "dev-1"))

	deviceID, err = r.FetchDeviceID(ctx)
	require.NoError(t, err)
	require.NotNil(t, deviceID)
	assert.Equal(t, "dev-1", *deviceID)
}
