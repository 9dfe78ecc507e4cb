// Package device describes the identity of the device a backup lineage
// belongs to: a stable identifier, a human-readable display name and the
// operating system tag.
package device

import (
	"encoding/json"
	"regexp"
	"runtime"

	"github.com/google/uuid"

	"github.com/sealvault/sealvault-core/internal/common"
)

// Identifiers end up inside backup file names, so they are restricted to the
// character class the file name grammar allows.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Identifier is a stable, filename-safe device identifier. It is generated
// once per device and persisted; it must never contain user-identifying
// display strings.
type Identifier string

// NewIdentifier generates a fresh random device identifier.
func NewIdentifier() Identifier {
	return Identifier(uuid.NewString())
}

// ParseIdentifier validates s as a device identifier. An identifier that
// fails the character-class check can never name a backup file, so the error
// is fatal.
func ParseIdentifier(s string) (Identifier, error) {
	if !identifierRegex.MatchString(s) {
		return "", common.Fatalf("invalid device identifier: %q", s)
	}
	return Identifier(s), nil
}

func (i Identifier) String() string {
	return string(i)
}

// UnmarshalJSON validates the identifier on decode.
func (i *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseIdentifier(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Name is the user-visible device display name. It is stored only inside the
// backup metadata record, never in file names, because it may contain
// arbitrary user text.
type Name string

func (n Name) String() string {
	return string(n)
}

// OperatingSystem tags the platform a backup was created on.
type OperatingSystem string

const (
	OSIos     OperatingSystem = "ios"
	OSAndroid OperatingSystem = "android"
	OSMacos   OperatingSystem = "macos"
	OSLinux   OperatingSystem = "linux"
	OSWindows OperatingSystem = "windows"
)

// DefaultOS returns the operating system tag for the host platform.
func DefaultOS() OperatingSystem {
	switch runtime.GOOS {
	case "ios":
		return OSIos
	case "android":
		return OSAndroid
	case "darwin":
		return OSMacos
	case "windows":
		return OSWindows
	default:
		return OSLinux
	}
}

// ParseOS validates s as a known operating system tag. Unknown tags are
// fatal: they indicate a corrupted file name or metadata record, not input
// worth retrying.
func ParseOS(s string) (OperatingSystem, error) {
	switch OperatingSystem(s) {
	case OSIos, OSAndroid, OSMacos, OSLinux, OSWindows:
		return OperatingSystem(s), nil
	default:
		return "", common.Fatalf("unknown operating system tag: %q", s)
	}
}

func (os OperatingSystem) String() string {
	return string(os)
}

// UnmarshalJSON validates the tag on decode.
func (os *OperatingSystem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOS(s)
	if err != nil {
		return err
	}
	*os = parsed
	return nil
}
