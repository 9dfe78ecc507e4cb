package backup

import (
	"encoding/json"
	"strconv"

	"github.com/sealvault/sealvault-core/internal/common"
)

// Version is the backup version: monotonically increasing within one
// device's backup lineage, totally ordered by its numeric value. It wraps a
// signed 64-bit integer restricted to non-negative values because the
// storage engine has no unsigned 64-bit column type. The restriction is
// enforced only at construction; once a Version exists, downstream code may
// assume non-negativity without re-checking.
type Version int64

// VersionFromInt64 validates a stored integer as a backup version. A
// negative value is structurally impossible and fails fatally.
func VersionFromInt64(value int64) (Version, error) {
	if value < 0 {
		return 0, common.Fatalf("negative backup version: %d", value)
	}
	return Version(value), nil
}

// ParseVersion parses a decimal string, e.g. a field cut out of a backup
// file name. A string that is not an integer literal fails retriably, since
// the caller may have transient or correctable input. A syntactically valid
// but negative value still fails fatally via VersionFromInt64.
func ParseVersion(s string) (Version, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, common.Retriablef("failed to parse backup version %q: %w", s, err)
	}
	return VersionFromInt64(value)
}

// Int64 returns the underlying integer.
func (v Version) Int64() int64 {
	return int64(v)
}

func (v Version) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// UnmarshalJSON validates the version on decode, so a metadata record with a
// negative version never constructs.
func (v *Version) UnmarshalJSON(data []byte) error {
	var raw int64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := VersionFromInt64(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
