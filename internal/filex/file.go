// Package filex provides small filesystem helpers shared by the backup
// staging flow.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir makes sure dir exists (creating parents as needed) and returns
// its absolute path. Backup staging directories hold key-derivation material
// in sidecar files, so the directory is private to the owner.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}
