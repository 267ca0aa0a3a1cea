// Package fs holds filesystem helpers.
package fs

import (
	"fmt"
	"os"

	"mixarr/internal/utils/logging"
)

// ResetDir destructively resets the directory: any pre-existing contents are
// deleted and the directory is recreated empty.
func ResetDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("no directory entered")
	}

	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path %q exists but is not a directory", dir)
		}
		logging.I("Clearing output directory: %s", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clear directory %q: %w", dir, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	logging.D(1, "Created output directory: %s", dir)
	return nil
}
