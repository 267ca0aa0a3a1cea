package tags_test

import (
	"os"
	"path/filepath"
	"testing"

	"mixarr/internal/tags"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAlbum(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "First_Song.mp3"),
		filepath.Join(dir, "Second_Song.mp3"),
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("\xff\xfb\x90\x00fake audio"), 0o644))
	}

	tags.ApplyAlbum(files, "Road Trip Mix")

	tag, err := id3v2.Open(files[0], id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()

	assert.Equal(t, "Road Trip Mix", tag.Album())
	assert.Equal(t, "First_Song", tag.Title())
	assert.Equal(t, "1/2", tag.GetTextFrame(tag.CommonID("Track number/Position in set")).Text)
}

func TestApplyAlbum_NoTitleNoOp(t *testing.T) {
	f := filepath.Join(t.TempDir(), "track.mp3")
	require.NoError(t, os.WriteFile(f, []byte("data"), 0o644))

	tags.ApplyAlbum([]string{f}, "")

	tag, err := id3v2.Open(f, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Empty(t, tag.Album())
}

func TestApplyAlbum_MissingFileSkipped(t *testing.T) {
	// Must not panic or abort on an unreadable file
	tags.ApplyAlbum([]string{filepath.Join(t.TempDir(), "gone.mp3")}, "Album")
}
