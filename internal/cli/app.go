// Package cli wires the backup core into a small command-line surface:
// status, create and restore, plus the user-facing backup switch.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/sealvault/sealvault-core/internal/backup"
	"github.com/sealvault/sealvault-core/internal/common"
	"github.com/sealvault/sealvault-core/internal/config"
	"github.com/sealvault/sealvault-core/internal/db"
	"github.com/sealvault/sealvault-core/internal/db/repositories/localsettings"
	"github.com/sealvault/sealvault-core/internal/dbx"
	"github.com/sealvault/sealvault-core/internal/device"
	"github.com/sealvault/sealvault-core/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	res     backup.Resources
	service *backup.Service
	out     io.Writer
}

// NewApp opens the wallet database, ensures the device has a persisted
// identifier and connects the backup storage.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, out io.Writer) (*App, error) {
	database, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	deviceID, err := ensureDeviceID(ctx, database)
	if err != nil {
		return nil, err
	}

	storage, err := backup.NewS3Storage(ctx, cfg.S3, log)
	if err != nil {
		return nil, err
	}

	res := backup.NewCoreResources(database, deviceID, storage)
	service := backup.NewService(res, log, device.Name(cfg.DeviceName), cfg.StagingDir)
	return &App{config: cfg, log: log, res: res, service: service, out: out}, nil
}

// newApp builds an App on pre-wired collaborators. Test seam.
func newApp(cfg *config.Config, log logging.Logger, res backup.Resources, service *backup.Service, out io.Writer) *App {
	return &App{config: cfg, log: log, res: res, service: service, out: out}
}

// ensureDeviceID returns the persisted device identifier, assigning a fresh
// one on first run. The identifier never rotates afterwards.
func ensureDeviceID(ctx context.Context, database *sql.DB) (device.Identifier, error) {
	var id device.Identifier
	err := dbx.WithTx(ctx, database, nil, func(ctx context.Context, tx dbx.DBTX) error {
		settings := localsettings.NewSQLiteRepository(tx)
		stored, err := settings.FetchDeviceID(ctx)
		if err != nil {
			return err
		}
		if stored != nil {
			id, err = device.ParseIdentifier(*stored)
			return err
		}
		id = device.NewIdentifier()
		return settings.SetDeviceID(ctx, id.String())
	})
	return id, err
}

// Run dispatches a single command. Usage is printed for unknown or missing
// commands.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	switch args[0] {
	case "status":
		return a.status(ctx)
	case "create":
		return a.create(ctx)
	case "restore":
		return a.restore(ctx)
	case "enable":
		return a.setBackupEnabled(ctx, true)
	case "disable":
		return a.setBackupEnabled(ctx, false)
	case "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: sealvault <command>")
	fmt.Fprintln(a.out, "Commands: status, create, restore, enable, disable, help")
}

func (a *App) status(ctx context.Context) error {
	timestamp, ok, err := backup.LastUploadedBackup(ctx, a.res)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "No backup uploaded yet")
		return nil
	}
	fmt.Fprintf(a.out, "Last backup uploaded at %s\n", time.Unix(timestamp, 0).UTC().Format(time.RFC3339))
	return nil
}

func (a *App) create(ctx context.Context) error {
	enabled, err := a.backupEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		return fmt.Errorf("backups are disabled on this device, run 'enable' first")
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	payload, err := a.exportPayload(ctx)
	if err != nil {
		return err
	}

	metadata, archivePath, err := a.service.CreateBackup(ctx, payload, password)
	if err != nil {
		return err
	}
	if err := a.service.UploadBackup(ctx, metadata, archivePath); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Backup %s uploaded\n", metadata.FileName())
	return nil
}

func (a *App) restore(ctx context.Context) error {
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	payload, metadata, err := a.service.RestoreLatest(ctx, password)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(payload)

	if err := a.importPayload(ctx, payload); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Restored backup version %s from device %q (%s)\n",
		metadata.Version, metadata.DeviceID, metadata.OperatingSystem)
	return nil
}

func (a *App) setBackupEnabled(ctx context.Context, enabled bool) error {
	err := dbx.WithTx(ctx, a.res.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		return localsettings.NewSQLiteRepository(tx).SetBackupEnabled(ctx, enabled)
	})
	if err != nil {
		return err
	}
	if enabled {
		fmt.Fprintln(a.out, "Backups enabled")
	} else {
		fmt.Fprintln(a.out, "Backups disabled")
	}
	return nil
}

func (a *App) backupEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := dbx.WithReadTx(ctx, a.res.DB(), func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		enabled, err = localsettings.NewSQLiteRepository(tx).FetchBackupEnabled(ctx)
		return err
	})
	return enabled, err
}
