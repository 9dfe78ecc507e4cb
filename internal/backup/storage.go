package backup

import "context"

// Storage is the cloud storage collaborator holding uploaded backup
// archives. Implementations report success or failure as a boolean rather
// than an error: false means "the operation did not happen", and callers
// must treat it that way instead of expecting an exception. Timeout and
// retry policy live behind this interface, not in front of it.
type Storage interface {
	// IsUploaded reports whether a file with exactly this name is present in
	// remote storage.
	IsUploaded(ctx context.Context, name string) bool

	// ListBackupFileNames returns the names of all backup files currently in
	// remote storage.
	ListBackupFileNames(ctx context.Context) []string

	// CopyToStorage uploads the local file at path under the given name.
	CopyToStorage(ctx context.Context, path string, name string) bool

	// CopyFromStorage downloads the named file to the local path.
	CopyFromStorage(ctx context.Context, name string, path string) bool

	// DeleteBackup removes the named file from remote storage.
	DeleteBackup(ctx context.Context, name string) bool
}
