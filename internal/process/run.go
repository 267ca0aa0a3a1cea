// Package process orchestrates a full playlist-to-MP3 run.
package process

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"mixarr/internal/contracts"
	"mixarr/internal/domain/consts"
	"mixarr/internal/models"
	"mixarr/internal/tags"
	"mixarr/internal/utils/fs"
	"mixarr/internal/utils/logging"

	"github.com/fatih/color"
)

var (
	okLine   = color.New(color.FgGreen)
	warnLine = color.New(color.FgYellow)
	failLine = color.New(color.FgRed)
)

// Run executes the pipeline: reset the output directory, pre-scan the
// playlist, fetch and transcode, then the optional normalization and the
// duration validation passes.
func Run(ctx context.Context, client contracts.MediaClient, s *models.Settings) (*models.Summary, error) {
	sum := &models.Summary{}

	if err := fs.ResetDir(s.OutputDir); err != nil {
		return sum, err
	}

	playlist, err := client.ResolvePlaylist(ctx, s)
	if err != nil {
		return sum, fmt.Errorf("failed to resolve playlist: %w", err)
	}
	sum.Requested = len(playlist.Entries)

	if sum.Requested == 0 {
		return sum, fmt.Errorf("playlist contains no downloadable entries")
	}

	if playlist.Title != "" {
		logging.I("Downloading %d track(s) from %q at %d kbps", sum.Requested, playlist.Title, s.Bitrate)
	} else {
		logging.I("Downloading %d track(s) at %d kbps", sum.Requested, s.Bitrate)
	}

	files, err := client.FetchAudio(ctx, s)
	sum.Downloaded = len(files)
	if sum.Requested > sum.Downloaded {
		sum.Skipped = sum.Requested - sum.Downloaded
	}
	if err != nil {
		return sum, fmt.Errorf("download failed: %w", err)
	}

	tracks := make([]*models.Track, len(files))
	for i, f := range files {
		tracks[i] = &models.Track{Path: f}
	}

	if s.Normalize {
		if err := normalizePass(ctx, client, s, tracks, sum); err != nil {
			return sum, err
		}
	} else {
		logging.I("Normalization disabled, files keep their original loudness")
	}

	if err := durationPass(ctx, client, s, tracks, sum); err != nil {
		return sum, err
	}

	tags.ApplyAlbum(files, playlist.Title)

	printSummary(sum)
	return sum, nil
}

// normalizePass loudness-normalizes each produced file in place. Per-file
// failures skip in tolerant mode and abort in fail-fast mode.
func normalizePass(ctx context.Context, client contracts.MediaClient, s *models.Settings, tracks []*models.Track, sum *models.Summary) error {
	logging.I("Normalizing volume for %d file(s) to %.0f LUFS...", len(tracks), consts.NormTargetLUFS)

	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}

		logging.I("[%d/%d] Normalizing: %s", i+1, len(tracks), filepath.Base(track.Path))
		if err := client.Normalize(ctx, s, track.Path); err != nil {
			if s.FailFast {
				return fmt.Errorf("normalization failed for %q: %w", track.Path, err)
			}
			failLine.Printf("Normalization failed for %s, skipping: %v\n", filepath.Base(track.Path), err)
			continue
		}
		track.Normalized = true
		sum.Normalized++
	}
	return nil
}

// durationPass flags files at or above the disc-compatible length ceiling.
// Advisory in tolerant mode, fatal in fail-fast mode.
func durationPass(ctx context.Context, client contracts.MediaClient, s *models.Settings, tracks []*models.Track, sum *models.Summary) error {
	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}

		d, err := client.ProbeDuration(ctx, s, track.Path)
		if err != nil {
			if s.FailFast {
				return fmt.Errorf("duration probe failed for %q: %w", track.Path, err)
			}
			warnLine.Printf("Could not determine duration of %s: %v\n", filepath.Base(track.Path), err)
			continue
		}
		track.Duration = d

		if d >= consts.MaxDiscDuration {
			track.Flagged = true
			sum.Flagged++
			if s.FailFast {
				return fmt.Errorf("%q is %v long, at or above the %v disc ceiling",
					track.Path, d.Round(time.Second), consts.MaxDiscDuration)
			}
			warnLine.Printf("%s is %v long, exceeds the %v disc-compatible ceiling\n",
				filepath.Base(track.Path), d.Round(time.Second), consts.MaxDiscDuration)
		}
	}
	return nil
}

func printSummary(sum *models.Summary) {
	okLine.Printf("\nPlaylist download complete: %d/%d track(s) downloaded", sum.Downloaded, sum.Requested)
	fmt.Println()

	if sum.Skipped > 0 {
		warnLine.Printf("Skipped %d inaccessible track(s)\n", sum.Skipped)
	}
	if sum.Normalized > 0 {
		logging.S("Volume normalization completed for %d file(s)", sum.Normalized)
	}
	if sum.Flagged > 0 {
		warnLine.Printf("%d file(s) exceed the disc-compatible length ceiling\n", sum.Flagged)
	}
}
