// Package contracts defines the interfaces mixarr's pipeline depends on.
package contracts

import (
	"context"
	"time"

	"mixarr/internal/models"
)

// MediaClient wraps the external extraction/transcoding/probing tools so the
// pipeline can run against fakes in tests.
type MediaClient interface {
	// ResolvePlaylist performs a flat pre-scan of the playlist, returning its
	// title and entries without downloading anything.
	ResolvePlaylist(ctx context.Context, s *models.Settings) (*models.Playlist, error)

	// FetchAudio downloads every entry's best audio stream and transcodes it
	// to MP3, returning the paths of files written. In skip mode, per-video
	// failures are tolerated and simply produce no path.
	FetchAudio(ctx context.Context, s *models.Settings) ([]string, error)

	// Normalize rewrites the file in place at the target loudness.
	Normalize(ctx context.Context, s *models.Settings, file string) error

	// ProbeDuration returns the playback length of the file.
	ProbeDuration(ctx context.Context, s *models.Settings, file string) (time.Duration, error)
}
