// Package backup implements the metadata, versioning, naming and upload
// status protocol for encrypted device backups. The encrypted archive itself
// is opaque here; this package produces and validates everything around it:
// the monotonically versioned metadata record, its canonical serialization
// used as AEAD associated data, the backup file name codec, and the resolver
// that decides whether the most recent local backup has actually reached
// remote storage.
package backup

import (
	"encoding/json"

	"github.com/sealvault/sealvault-core/internal/common"
)

// Scheme identifies which version of the backup protocol produced an
// archive. There is a single supported scheme today; introducing a new
// archive layout means introducing a new scheme tag.
type Scheme string

// SchemeV1 is the current default backup scheme.
const SchemeV1 Scheme = "v1"

func (s Scheme) String() string {
	return string(s)
}

// ParseScheme validates s as a known backup scheme tag. An unknown tag in a
// file name or metadata record is evidence of corruption and fatal.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeV1:
		return Scheme(s), nil
	default:
		return "", common.Fatalf("unknown backup scheme: %q", s)
	}
}

// UnmarshalJSON validates the scheme tag on decode.
func (s *Scheme) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseScheme(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
