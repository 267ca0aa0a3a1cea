// Package tags stamps ID3v2 frames onto the produced MP3 files.
package tags

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"mixarr/internal/utils/logging"

	"github.com/bogem/id3v2/v2"
)

// ApplyAlbum tags each file with the playlist title as album plus its
// position in the produced set. Files keep whatever title yt-dlp wrote.
// Tagging is best-effort: failures are logged and skipped.
func ApplyAlbum(files []string, album string) {
	if album == "" {
		return
	}

	for i, file := range files {
		if err := tagFile(file, album, i+1, len(files)); err != nil {
			logging.W("Failed to tag %q: %v", filepath.Base(file), err)
		}
	}
}

func tagFile(file, album string, number, total int) error {
	tag, err := id3v2.Open(file, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open ID3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetAlbum(album)
	tag.AddTextFrame(tag.CommonID("Track number/Position in set"),
		tag.DefaultEncoding(), strconv.Itoa(number)+"/"+strconv.Itoa(total))

	if tag.Title() == "" {
		title := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		tag.SetTitle(title)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save ID3 tag: %w", err)
	}
	return nil
}
