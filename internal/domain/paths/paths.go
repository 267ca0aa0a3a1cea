// Package paths initializes mixarr's filepaths, directories, etc.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	progDir     = "mixarr"
	logFileName = "mixarr.log"
	ffmpegDir   = "ffmpeg"
)

// File and directory path strings.
var (
	CacheDir       string
	FFmpegCacheDir string
	LogFilePath    string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
func InitProgFilesDirs() error {
	CacheDir = filepath.Join(xdg.CacheHome, progDir)
	if err := os.MkdirAll(CacheDir, 0o755); err != nil {
		return fmt.Errorf("failed to make cache directory: %w", err)
	}

	// Provisioned ffmpeg binaries live under the cache dir
	FFmpegCacheDir = filepath.Join(CacheDir, ffmpegDir)

	stateDir := filepath.Join(xdg.StateHome, progDir)
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("failed to make state directory: %w", err)
	}
	LogFilePath = filepath.Join(stateDir, logFileName)

	return nil
}
