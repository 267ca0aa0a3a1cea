// Package validation handles validation of user flag input.
package validation

import (
	"fmt"
	"net/url"
	"os"
	"slices"

	"mixarr/internal/domain/consts"
	"mixarr/internal/utils/logging"
)

// ValidateBitrate checks the bitrate against the allowed MP3 rates.
func ValidateBitrate(bitrate int) error {
	if !slices.Contains(consts.ValidBitrates[:], bitrate) {
		return fmt.Errorf("invalid bitrate %d, must be one of %v", bitrate, consts.ValidBitrates)
	}
	return nil
}

// ValidatePlaylistURL checks that the URL looks like a YouTube playlist URL
// (carries a 'list=' parameter). A URL that also carries 'v=' is treated as a
// single-video download.
func ValidatePlaylistURL(rawURL string) (singleVideo bool, err error) {
	if rawURL == "" {
		return false, fmt.Errorf("no playlist URL entered")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("invalid playlist URL %q: %w", rawURL, err)
	}

	q := u.Query()
	if q.Get("list") == "" {
		return false, fmt.Errorf("URL %q does not look like a playlist (missing 'list=' parameter)", rawURL)
	}

	if q.Get("v") != "" {
		logging.D(1, "URL %q carries a 'v=' parameter, downloading as a single video", rawURL)
		return true, nil
	}
	return false, nil
}

// ValidateDirectory validates that the directory exists, else creates it if
// desired.
func ValidateDirectory(dir string, createIfNotFound bool) (os.FileInfo, error) {
	logging.D(2, "Statting directory %q...", dir)

	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("path %q exists but is not a directory", dir)
		}
		return info, nil
	case os.IsNotExist(err):
		if !createIfNotFound {
			return nil, fmt.Errorf("directory %q does not exist", dir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		return os.Stat(dir)
	default:
		return nil, fmt.Errorf("failed to stat %q: %w", dir, err)
	}
}
