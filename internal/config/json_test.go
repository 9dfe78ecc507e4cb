package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_dsn": "wallet.db",
		"staging_dir":  "/var/backups",
		"s3_bucket":    "my-backups",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "wallet.db", cfg.DatabaseDSN)
		assert.Equal(t, "/var/backups", cfg.StagingDir)
		assert.Equal(t, "my-backups", cfg.S3.Bucket)
	})

	t.Run("empty fields keep current values", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "wallet.db", cfg.DatabaseDSN)
		assert.Equal(t, "SealVault Device", cfg.DeviceName, "field absent from JSON keeps its default")
		assert.Equal(t, "us-east-1", cfg.S3.Region)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DatabaseDSN: "unchanged.db", StagingDir: "unchanged"}
		parseJson(cfg)

		assert.Equal(t, "unchanged.db", cfg.DatabaseDSN)
		assert.Equal(t, "unchanged", cfg.StagingDir)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
