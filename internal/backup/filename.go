package backup

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sealvault/sealvault-core/internal/common"
	"github.com/sealvault/sealvault-core/internal/device"
)

// Backup file name grammar:
//
//	sealvault_backup_<scheme>_<os>_<timestamp>_<device_id>_<version>.zip
//
// scheme, os and device_id are limited to [A-Za-z0-9-], timestamp and
// version are unsigned decimals. The pattern is anchored: anything that does
// not match in full is not a backup file.
var fileNameRegex = regexp.MustCompile(
	`^sealvault_backup_([A-Za-z0-9-]+)_([A-Za-z0-9-]+)_([0-9]+)_([A-Za-z0-9-]+)_([0-9]+)\.zip$`,
)

// FileName encodes the five identifying backup fields into the archive file
// name. Each component is written in its canonical string form.
func FileName(
	scheme Scheme,
	os device.OperatingSystem,
	timestamp int64,
	deviceID device.Identifier,
	version Version,
) string {
	return fmt.Sprintf("sealvault_backup_%s_%s_%d_%s_%s.zip", scheme, os, timestamp, deviceID, version)
}

// FileNameFields are the typed fields recovered from a backup file name. The
// scheme is validated during matching but not carried: callers that need it
// assume the single currently supported scheme.
type FileNameFields struct {
	Timestamp int64
	OS        device.OperatingSystem
	DeviceID  device.Identifier
	Version   Version
}

// ParseFileName matches name against the backup file name grammar and
// recovers the typed fields. Every failure is fatal: an unparseable file
// name is evidence of a corrupted or non-backup file, never input worth
// retrying verbatim.
func ParseFileName(name string) (FileNameFields, error) {
	groups := fileNameRegex.FindStringSubmatch(name)
	if groups == nil {
		return FileNameFields{}, common.Fatalf("invalid backup file name format: %q", name)
	}

	if _, err := ParseScheme(groups[1]); err != nil {
		return FileNameFields{}, err
	}

	os, err := device.ParseOS(groups[2])
	if err != nil {
		return FileNameFields{}, err
	}

	timestamp, err := strconv.ParseInt(groups[3], 10, 64)
	if err != nil {
		return FileNameFields{}, common.Fatalf("invalid timestamp in backup file name %q: %w", name, err)
	}

	deviceID, err := device.ParseIdentifier(groups[4])
	if err != nil {
		return FileNameFields{}, err
	}

	rawVersion, err := strconv.ParseInt(groups[5], 10, 64)
	if err != nil {
		return FileNameFields{}, common.Fatalf("invalid version in backup file name %q: %w", name, err)
	}
	version, err := VersionFromInt64(rawVersion)
	if err != nil {
		return FileNameFields{}, err
	}

	return FileNameFields{
		Timestamp: timestamp,
		OS:        os,
		DeviceID:  deviceID,
		Version:   version,
	}, nil
}
