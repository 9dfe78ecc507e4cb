package profilepics

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
CREATE TABLE profile_pictures (
  deterministic_id TEXT PRIMARY KEY,
  image_name TEXT,
  image_hash BLOB NOT NULL UNIQUE,
  image BLOB NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT
);
`)
	require.NoError(t, err)

	return db
}

func TestCreateIfNotExists_SameImageSameRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	image := []byte("png-bytes")
	name := "bundled-cat"

	first, err := r.CreateIfNotExists(ctx, image, &name)
	require.NoError(t, err)

	second, err := r.CreateIfNotExists(ctx, image, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM profile_pictures`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCreateIfNotExists_DifferentImagesDifferentRows(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a, err := r.CreateIfNotExists(ctx, []byte("image-a"), nil)
	require.NoError(t, err)
	b, err := r.CreateIfNotExists(ctx, []byte("image-b"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFetchImage_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	id, err := r.CreateIfNotExists(ctx, image, nil)
	require.NoError(t, err)

	got, err := r.FetchImage(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, image, got)
}
