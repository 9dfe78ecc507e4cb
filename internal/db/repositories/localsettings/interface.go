// Package localsettings stores device-local, non-synced settings in a single
// database row: the backup lineage state (version, completion timestamp,
// enabled flag) and the persisted device identifier.
package localsettings

import "context"

type Repository interface {
	// FetchBackupVersion returns the last recorded backup version, 0 if no
	// backup was ever recorded.
	FetchBackupVersion(ctx context.Context) (int64, error)

	// FetchBackupTimestamp returns the RFC 3339 completion timestamp of the
	// last recorded backup, or nil if no backup was ever completed.
	FetchBackupTimestamp(ctx context.Context) (*string, error)

	// IncrementBackupVersion advances the backup version by one and returns
	// the new value. Must be called inside a write transaction together with
	// the backup creation it accounts for.
	IncrementBackupVersion(ctx context.Context) (int64, error)

	// SetBackupTimestamp records the completion timestamp of the latest
	// backup.
	SetBackupTimestamp(ctx context.Context, timestamp string) error

	// FetchBackupEnabled reports whether the user enabled device backups.
	FetchBackupEnabled(ctx context.Context) (bool, error)

	// SetBackupEnabled flips the user-facing backup switch.
	SetBackupEnabled(ctx context.Context, enabled bool) error

	// FetchDeviceID returns the persisted device identifier, or nil when the
	// device has not been assigned one yet.
	FetchDeviceID(ctx context.Context) (*string, error)

	// SetDeviceID persists the device identifier. It is assigned once and
	// never rotated afterwards.
	SetDeviceID(ctx context.Context, deviceID string) error
}
