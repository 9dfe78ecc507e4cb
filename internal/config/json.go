package config

import (
	"encoding/json"
	"os"

	"github.com/sealvault/sealvault-core/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// non-empty values are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN    string `json:"database_dsn"`
	StagingDir     string `json:"staging_dir"`
	DeviceName     string `json:"device_name"`
	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); if neither is set, nothing is loaded. Read and
// unmarshal errors panic (configuration is resolved at process start, before
// any state exists worth preserving). Empty JSON fields leave the current
// Config values untouched.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.StagingDir, jc.StagingDir)
	overlay(&cfg.DeviceName, jc.DeviceName)
	overlay(&cfg.S3.RootUser, jc.S3RootUser)
	overlay(&cfg.S3.RootPassword, jc.S3RootPassword)
	overlay(&cfg.S3.Bucket, jc.S3Bucket)
	overlay(&cfg.S3.Region, jc.S3Region)
	overlay(&cfg.S3.BaseEndpoint, jc.S3BaseEndpoint)
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
