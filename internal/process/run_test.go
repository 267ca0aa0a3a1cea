package process_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mixarr/internal/models"
	"mixarr/internal/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient stands in for the yt-dlp/ffmpeg-backed client.
type fakeClient struct {
	playlist   *models.Playlist
	resolveErr error

	produced []string // file basenames FetchAudio creates in the output dir
	fetchErr error

	normalizeErrs  map[string]error
	normalizeCalls []string

	durations map[string]time.Duration
	probeErrs map[string]error
}

func (f *fakeClient) ResolvePlaylist(_ context.Context, _ *models.Settings) (*models.Playlist, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.playlist, nil
}

func (f *fakeClient) FetchAudio(_ context.Context, s *models.Settings) ([]string, error) {
	var files []string
	for _, name := range f.produced {
		path := filepath.Join(s.OutputDir, name)
		if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, f.fetchErr
}

func (f *fakeClient) Normalize(_ context.Context, _ *models.Settings, file string) error {
	f.normalizeCalls = append(f.normalizeCalls, file)
	return f.normalizeErrs[filepath.Base(file)]
}

func (f *fakeClient) ProbeDuration(_ context.Context, _ *models.Settings, file string) (time.Duration, error) {
	if err := f.probeErrs[filepath.Base(file)]; err != nil {
		return 0, err
	}
	if d, ok := f.durations[filepath.Base(file)]; ok {
		return d, nil
	}
	return 3 * time.Minute, nil
}

func playlistOf(n int) *models.Playlist {
	pl := &models.Playlist{}
	for i := 0; i < n; i++ {
		pl.Entries = append(pl.Entries, models.PlaylistEntry{
			ID:    fmt.Sprintf("id%d", i),
			Title: fmt.Sprintf("Track %d", i),
		})
	}
	return pl
}

func settingsFor(t *testing.T) *models.Settings {
	t.Helper()
	return &models.Settings{
		PlaylistURL: "https://www.youtube.com/playlist?list=PLabc",
		Bitrate:     320,
		OutputDir:   filepath.Join(t.TempDir(), "musique"),
		Normalize:   true,
	}
}

func TestRun_AllSucceed(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{
		playlist: playlistOf(3),
		produced: []string{"a.mp3", "b.mp3", "c.mp3"},
	}

	sum, err := process.Run(context.Background(), fake, s)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Requested)
	assert.Equal(t, 3, sum.Downloaded)
	assert.Equal(t, 0, sum.Skipped)
	assert.Equal(t, 3, sum.Normalized)
	assert.Equal(t, 0, sum.Flagged)
	assert.Len(t, fake.normalizeCalls, 3)

	entries, err := os.ReadDir(s.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRun_SkipModePartialFailure(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{
		playlist: playlistOf(5),
		produced: []string{"a.mp3", "b.mp3", "c.mp3"},
	}

	sum, err := process.Run(context.Background(), fake, s)
	require.NoError(t, err, "skip mode tolerates inaccessible tracks")

	assert.Equal(t, 5, sum.Requested)
	assert.Equal(t, 3, sum.Downloaded)
	assert.Equal(t, 2, sum.Skipped)
}

func TestRun_FailFastAbortsOnFetchError(t *testing.T) {
	s := settingsFor(t)
	s.FailFast = true
	fake := &fakeClient{
		playlist: playlistOf(3),
		produced: []string{"a.mp3"},
		fetchErr: errors.New("video unavailable"),
	}

	sum, err := process.Run(context.Background(), fake, s)
	require.Error(t, err)
	assert.Equal(t, 1, sum.Downloaded)
	assert.Empty(t, fake.normalizeCalls, "no post-processing after an aborted download")
}

func TestRun_NoNormalize(t *testing.T) {
	s := settingsFor(t)
	s.Normalize = false
	fake := &fakeClient{
		playlist: playlistOf(2),
		produced: []string{"a.mp3", "b.mp3"},
	}

	sum, err := process.Run(context.Background(), fake, s)
	require.NoError(t, err)
	assert.Empty(t, fake.normalizeCalls)
	assert.Equal(t, 0, sum.Normalized)
}

func TestRun_NormalizeFailureSkips(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{
		playlist:      playlistOf(3),
		produced:      []string{"a.mp3", "b.mp3", "c.mp3"},
		normalizeErrs: map[string]error{"b.mp3": errors.New("ffmpeg exploded")},
	}

	sum, err := process.Run(context.Background(), fake, s)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Normalized)
	assert.Len(t, fake.normalizeCalls, 3, "failure must not halt the pass")
}

func TestRun_NormalizeFailureFailFast(t *testing.T) {
	s := settingsFor(t)
	s.FailFast = true
	fake := &fakeClient{
		playlist:      playlistOf(3),
		produced:      []string{"a.mp3", "b.mp3", "c.mp3"},
		normalizeErrs: map[string]error{"a.mp3": errors.New("ffmpeg exploded")},
	}

	_, err := process.Run(context.Background(), fake, s)
	require.Error(t, err)
	assert.Len(t, fake.normalizeCalls, 1)
}

func TestRun_DurationFlagAdvisory(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{
		playlist:  playlistOf(2),
		produced:  []string{"short.mp3", "long.mp3"},
		durations: map[string]time.Duration{"long.mp3": 80 * time.Minute},
	}

	sum, err := process.Run(context.Background(), fake, s)
	require.NoError(t, err, "duration violation is advisory in skip mode")
	assert.Equal(t, 1, sum.Flagged)
}

func TestRun_DurationCeilingExact(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{
		playlist:  playlistOf(1),
		produced:  []string{"edge.mp3"},
		durations: map[string]time.Duration{"edge.mp3": 79 * time.Minute},
	}

	sum, err := process.Run(context.Background(), fake, s)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Flagged, "exactly 79 minutes is at the ceiling and flagged")
}

func TestRun_DurationFlagFailFast(t *testing.T) {
	s := settingsFor(t)
	s.FailFast = true
	fake := &fakeClient{
		playlist:  playlistOf(2),
		produced:  []string{"short.mp3", "long.mp3"},
		durations: map[string]time.Duration{"long.mp3": 80 * time.Minute},
	}

	_, err := process.Run(context.Background(), fake, s)
	require.Error(t, err)
}

func TestRun_OutputDirReset(t *testing.T) {
	s := settingsFor(t)
	require.NoError(t, os.MkdirAll(s.OutputDir, 0o755))
	stale := filepath.Join(s.OutputDir, "stale.mp3")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	fake := &fakeClient{
		playlist: playlistOf(1),
		produced: []string{"fresh.mp3"},
	}

	_, err := process.Run(context.Background(), fake, s)
	require.NoError(t, err)

	_, statErr := os.Stat(stale)
	assert.True(t, os.IsNotExist(statErr), "prior contents must be discarded")
}

func TestRun_EmptyPlaylist(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{playlist: &models.Playlist{Title: "Empty"}}

	_, err := process.Run(context.Background(), fake, s)
	require.Error(t, err)
}

func TestRun_ResolveError(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{resolveErr: errors.New("network down")}

	_, err := process.Run(context.Background(), fake, s)
	require.Error(t, err)
}

func TestRun_CancelledContext(t *testing.T) {
	s := settingsFor(t)
	fake := &fakeClient{
		playlist: playlistOf(2),
		produced: []string{"a.mp3", "b.mp3"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := process.Run(ctx, fake, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
