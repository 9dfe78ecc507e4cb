package backup

import (
	"github.com/sealvault/sealvault-core/internal/common"
	"github.com/sealvault/sealvault-core/internal/device"
	"github.com/sealvault/sealvault-core/internal/jsonx"
)

// Metadata is the plaintext descriptor of one backup. It is created once per
// backup event, immutable afterwards, and persisted as a plaintext JSON
// sidecar next to the encrypted archive. Its version and timestamp double as
// the lookup key for the upload status resolver.
//
// The device name and the KDF nonce deliberately never appear in the backup
// file name: the name must stay free of user-identifying display strings and
// of binary-safe encoding concerns.
type Metadata struct {
	Scheme          Scheme                 `json:"backup_scheme"`
	Version         Version                `json:"backup_version"`
	Timestamp       int64                  `json:"timestamp"`
	DeviceID        device.Identifier      `json:"device_id"`
	DeviceName      device.Name            `json:"device_name"`
	OperatingSystem device.OperatingSystem `json:"operating_system"`
	// Base64-encoded key-derivation nonce.
	KDFNonce string `json:"kdf_nonce"`
}

// MetadataOption overrides a defaulted Metadata field.
type MetadataOption func(*Metadata)

// WithTimestamp overrides the creation timestamp (unix seconds). The default
// is the current time.
func WithTimestamp(timestamp int64) MetadataOption {
	return func(m *Metadata) {
		m.Timestamp = timestamp
	}
}

// WithOperatingSystem overrides the OS tag. The default is the detected host
// platform.
func WithOperatingSystem(os device.OperatingSystem) MetadataOption {
	return func(m *Metadata) {
		m.OperatingSystem = os
	}
}

// NewMetadata builds the metadata record for a new backup. Scheme, version,
// device identity and the KDF nonce are required; the timestamp and the
// operating system tag default unless overridden through options.
func NewMetadata(
	scheme Scheme,
	version Version,
	deviceID device.Identifier,
	deviceName device.Name,
	kdfNonce string,
	opts ...MetadataOption,
) Metadata {
	m := Metadata{
		Scheme:          scheme,
		Version:         version,
		Timestamp:       common.UnixTimestamp(),
		DeviceID:        deviceID,
		DeviceName:      deviceName,
		OperatingSystem: device.DefaultOS(),
		KDFNonce:        kdfNonce,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// CanonicalJSON serializes the metadata with lexicographically ordered keys
// and platform-independent number formatting. Use this, and only this, as
// the associated data of the AEAD protecting the backup payload: field-wise
// equal records serialize to identical bytes, and any single-field change
// changes the output, which is what makes metadata tampering detectable at
// decryption time.
func (m *Metadata) CanonicalJSON() ([]byte, error) {
	return jsonx.Canonical(m)
}

// FileName derives the backup archive name from the metadata's identifying
// fields.
func (m *Metadata) FileName() string {
	return FileName(m.Scheme, m.OperatingSystem, m.Timestamp, m.DeviceID, m.Version)
}
