package config

import "github.com/sealvault/sealvault-core/internal/backup"

// Config holds runtime settings for the SealVault core CLI.
//
// Fields:
//   - DatabaseDSN: path or DSN of the local wallet database.
//   - StagingDir: directory where backup archives are staged before upload
//     and after download.
//   - DeviceName: human-readable name recorded in backup metadata.
//   - S3: settings for the S3-compatible backup bucket.
type Config struct {
	DatabaseDSN string
	StagingDir  string
	DeviceName  string
	S3          backup.S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "sealvault.db"
	c.StagingDir = "backups"
	c.DeviceName = "SealVault Device"
	c.S3 = backup.S3Config{
		Bucket: "sealvault-backups",
		Region: "us-east-1",
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
