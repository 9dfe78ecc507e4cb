package common

import (
	"crypto/rand"
	"time"
)

// GenerateRandByteArray returns size cryptographically random bytes.
// crypto/rand.Read never fails on supported platforms; a failure here means
// the process cannot do anything crypto-related, so it panics.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Useful for removing key material from memory after use.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// UnixTimestamp returns the current unix time in seconds.
func UnixTimestamp() int64 {
	return time.Now().Unix()
}

// RFC3339Timestamp renders the current time as an RFC 3339 UTC string, the
// format used for created_at/updated_at columns in the local database.
func RFC3339Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseRFC3339Timestamp parses an RFC 3339 string stored in the database.
// A stored value that does not parse indicates local state corruption, which
// is fatal.
func ParseRFC3339Timestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, Fatalf("invalid rfc3339 timestamp %q: %w", s, err)
	}
	return t, nil
}
