package config

import (
	"flag"
	"os"

	"github.com/sealvault/sealvault-core/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path or DSN of the local wallet database
//	-s string   backup staging directory
//	-n string   device name recorded in backup metadata
//	-b string   S3 bucket for backups
//	-e string   S3 base endpoint (for self-hosted backends)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-n", "-b", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path or DSN of the local wallet database")
	fs.StringVar(&cfg.StagingDir, "s", cfg.StagingDir, "backup staging directory")
	fs.StringVar(&cfg.DeviceName, "n", cfg.DeviceName, "device name recorded in backup metadata")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "S3 bucket for backups")
	fs.StringVar(&cfg.S3.BaseEndpoint, "e", cfg.S3.BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
