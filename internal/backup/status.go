package backup

import (
	"context"

	"github.com/sealvault/sealvault-core/internal/common"
	"github.com/sealvault/sealvault-core/internal/db/repositories/localsettings"
	"github.com/sealvault/sealvault-core/internal/dbx"
	"github.com/sealvault/sealvault-core/internal/device"
)

// LastUploadedBackup returns the unix timestamp of the last backup confirmed
// present in cloud storage. ok is false when no backup was ever recorded or
// when the recorded backup has not been confirmed uploaded. A local record
// that was never confirmed externally counts the same as never having backed
// up, so callers trigger a fresh backup/upload cycle instead of trusting it.
//
// The recorded version and timestamp are read as one consistent pair inside
// a single deferred read transaction; the storage presence check happens
// outside it, because a remote call must never hold a database transaction
// open.
func LastUploadedBackup(ctx context.Context, res Resources) (timestamp int64, ok bool, err error) {
	var (
		storedVersion   int64
		storedTimestamp *string
	)
	err = dbx.WithReadTx(ctx, res.DB(), func(ctx context.Context, tx dbx.DBTX) error {
		settings := localsettings.NewSQLiteRepository(tx)
		var err error
		if storedTimestamp, err = settings.FetchBackupTimestamp(ctx); err != nil {
			return err
		}
		storedVersion, err = settings.FetchBackupVersion(ctx)
		return err
	})
	if err != nil {
		return 0, false, err
	}

	if storedTimestamp == nil {
		return 0, false, nil
	}

	completedAt, err := common.ParseRFC3339Timestamp(*storedTimestamp)
	if err != nil {
		return 0, false, err
	}
	unix := completedAt.Unix()

	version, err := VersionFromInt64(storedVersion)
	if err != nil {
		return 0, false, err
	}

	// The local pair is trusted for naming the expected file, never for
	// deciding that the backup is safe.
	name := FileName(SchemeV1, device.DefaultOS(), unix, res.DeviceID(), version)

	if !res.BackupStorage().IsUploaded(ctx, name) {
		return 0, false, nil
	}
	return unix, true, nil
}
