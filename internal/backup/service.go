package backup

import (
	"archive/zip"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sealvault/sealvault-core/internal/common"
	"github.com/sealvault/sealvault-core/internal/cryptox"
	"github.com/sealvault/sealvault-core/internal/db/repositories/localsettings"
	"github.com/sealvault/sealvault-core/internal/dbx"
	"github.com/sealvault/sealvault-core/internal/device"
	"github.com/sealvault/sealvault-core/internal/filex"
	"github.com/sealvault/sealvault-core/internal/logging"
)

// Archive entry names inside the backup zip. The metadata is stored twice:
// inside the archive so a downloaded backup is self-describing, and as a
// plaintext sidecar file next to the local archive.
const (
	archiveMetadataName = "metadata.json"
	archivePayloadName  = "payload.enc"
)

// Service creates, uploads and restores encrypted backups. The payload bytes
// are opaque to it; versioning, metadata, naming, the AAD binding and the
// archive layout are owned here.
type Service struct {
	res        Resources
	log        logging.Logger
	deviceName device.Name
	stagingDir string
}

// NewService returns a backup service staging archives under stagingDir.
func NewService(res Resources, log logging.Logger, deviceName device.Name, stagingDir string) *Service {
	return &Service{res: res, log: log, deviceName: deviceName, stagingDir: stagingDir}
}

// CreateBackup encrypts payload under a key derived from password and a
// fresh KDF nonce, writes the archive and its plaintext metadata sidecar to
// the staging directory, and records the new backup version and completion
// timestamp in local settings. It returns the metadata and the local archive
// path; uploading is a separate step so a crash between the two leaves a
// resumable state that LastUploadedBackup detects.
func (s *Service) CreateBackup(ctx context.Context, payload, password []byte) (*Metadata, string, error) {
	var version Version
	err := dbx.WithTx(ctx, s.res.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		settings := localsettings.NewSQLiteRepository(tx)
		next, err := settings.IncrementBackupVersion(ctx)
		if err != nil {
			return err
		}
		version, err = VersionFromInt64(next)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("advance backup version: %w", err)
	}

	kdfNonce := common.GenerateRandByteArray(cryptox.KDFNonceSize)
	metadata := NewMetadata(
		SchemeV1,
		version,
		s.res.DeviceID(),
		s.deviceName,
		base64.StdEncoding.EncodeToString(kdfNonce),
	)

	aad, err := metadata.CanonicalJSON()
	if err != nil {
		return nil, "", err
	}

	key := cryptox.DeriveBackupKey(password, kdfNonce)
	defer common.WipeByteArray(key)

	ciphertext, cipherNonce, err := cryptox.EncryptWithAAD(key, payload, aad)
	if err != nil {
		return nil, "", err
	}

	plainMetadata, err := json.Marshal(&metadata)
	if err != nil {
		return nil, "", common.Fatalf("serialize backup metadata: %w", err)
	}

	dir, err := filex.EnsureDir(s.stagingDir)
	if err != nil {
		return nil, "", err
	}

	archivePath := filepath.Join(dir, metadata.FileName())
	payloadEnc := append(cipherNonce, ciphertext...)
	if err := writeArchive(archivePath, plainMetadata, payloadEnc); err != nil {
		return nil, "", err
	}
	if err := os.WriteFile(archivePath+".json", plainMetadata, 0o600); err != nil {
		return nil, "", fmt.Errorf("write metadata sidecar: %w", err)
	}

	completedAt := time.Unix(metadata.Timestamp, 0).UTC().Format(time.RFC3339)
	err = dbx.WithTx(ctx, s.res.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		return localsettings.NewSQLiteRepository(tx).SetBackupTimestamp(ctx, completedAt)
	})
	if err != nil {
		return nil, "", fmt.Errorf("record backup timestamp: %w", err)
	}

	s.log.Info(ctx, "backup created", "file_name", metadata.FileName(), "version", version.Int64())
	return &metadata, archivePath, nil
}

// UploadBackup copies a created archive to cloud storage. A false from the
// storage collaborator means the upload did not happen; that is retriable,
// since the archive is still staged locally and LastUploadedBackup keeps
// reporting absence until an upload is confirmed.
func (s *Service) UploadBackup(ctx context.Context, metadata *Metadata, archivePath string) error {
	name := metadata.FileName()
	if !s.res.BackupStorage().CopyToStorage(ctx, archivePath, name) {
		return common.Retriablef("backup upload did not complete: %s", name)
	}
	s.log.Info(ctx, "backup uploaded", "file_name", name)
	return nil
}

// FindLatestRemoteBackup lists remote backups and picks the one with the
// highest version, breaking ties by timestamp. Remote files that do not
// parse as backup names are skipped. found is false when storage holds no
// usable backup.
func (s *Service) FindLatestRemoteBackup(ctx context.Context) (name string, fields FileNameFields, found bool) {
	for _, candidate := range s.res.BackupStorage().ListBackupFileNames(ctx) {
		parsed, err := ParseFileName(candidate)
		if err != nil {
			s.log.Warn(ctx, "skipping unparseable backup file", "file_name", candidate, "error", err)
			continue
		}
		if !found ||
			parsed.Version > fields.Version ||
			(parsed.Version == fields.Version && parsed.Timestamp > fields.Timestamp) {
			name, fields, found = candidate, parsed, true
		}
	}
	return name, fields, found
}

// RestoreLatest downloads the newest remote backup, re-derives the AEAD
// associated data from the archive's metadata record and decrypts the
// payload. Any tampering with the metadata after the backup was created
// makes the decryption fail authentication.
func (s *Service) RestoreLatest(ctx context.Context, password []byte) ([]byte, *Metadata, error) {
	name, _, found := s.FindLatestRemoteBackup(ctx)
	if !found {
		return nil, nil, common.Retriablef("no backup found in cloud storage")
	}
	return s.Restore(ctx, name, password)
}

// Restore downloads and decrypts the named remote backup.
func (s *Service) Restore(ctx context.Context, name string, password []byte) ([]byte, *Metadata, error) {
	// Validate before touching storage.
	if _, err := ParseFileName(name); err != nil {
		return nil, nil, err
	}

	dir, err := filex.EnsureDir(s.stagingDir)
	if err != nil {
		return nil, nil, err
	}
	localPath := filepath.Join(dir, name)

	if !s.res.BackupStorage().CopyFromStorage(ctx, name, localPath) {
		return nil, nil, common.Retriablef("backup download did not complete: %s", name)
	}

	plainMetadata, payloadEnc, err := readArchive(localPath)
	if err != nil {
		return nil, nil, err
	}

	var metadata Metadata
	if err := json.Unmarshal(plainMetadata, &metadata); err != nil {
		return nil, nil, common.Fatalf("parse backup metadata: %w", err)
	}

	kdfNonce, err := base64.StdEncoding.DecodeString(metadata.KDFNonce)
	if err != nil {
		return nil, nil, common.Fatalf("decode kdf nonce: %w", err)
	}

	aad, err := metadata.CanonicalJSON()
	if err != nil {
		return nil, nil, err
	}

	key := cryptox.DeriveBackupKey(password, kdfNonce)
	defer common.WipeByteArray(key)

	nonceSize := cryptox.CipherNonceSize
	if len(payloadEnc) <= nonceSize {
		return nil, nil, common.Fatalf("backup payload too short: %d bytes", len(payloadEnc))
	}
	payload, err := cryptox.DecryptWithAAD(key, payloadEnc[nonceSize:], payloadEnc[:nonceSize], aad)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info(ctx, "backup restored", "file_name", name)
	return payload, &metadata, nil
}

func writeArchive(path string, metadata, payload []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup archive: %w", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	for _, entry := range []struct {
		name string
		data []byte
	}{
		{archiveMetadataName, metadata},
		{archivePayloadName, payload},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			return fmt.Errorf("create archive entry %s: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			return fmt.Errorf("write archive entry %s: %w", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize backup archive: %w", err)
	}
	return file.Close()
}

func readArchive(path string) (metadata, payload []byte, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, common.Fatalf("open backup archive %s: %w", path, err)
	}
	defer zr.Close()

	read := func(name string) ([]byte, error) {
		for _, entry := range zr.File {
			if entry.Name != name {
				continue
			}
			rc, err := entry.Open()
			if err != nil {
				return nil, common.Fatalf("open archive entry %s: %w", name, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
		return nil, common.Fatalf("backup archive %s is missing entry %s", path, name)
	}

	if metadata, err = read(archiveMetadataName); err != nil {
		return nil, nil, err
	}
	if payload, err = read(archivePayloadName); err != nil {
		return nil, nil, err
	}
	return metadata, payload, nil
}
