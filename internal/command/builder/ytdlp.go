// Package builder constructs the argument lists for the external tools.
package builder

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"

	"mixarr/internal/domain/consts"
	"mixarr/internal/models"
	"mixarr/internal/utils/logging"
)

// YtdlpCommandBuilder builds yt-dlp invocations from run settings.
type YtdlpCommandBuilder struct {
	Settings *models.Settings
}

// NewYtdlpCommandBuilder returns a builder for the given settings.
func NewYtdlpCommandBuilder(s *models.Settings) *YtdlpCommandBuilder {
	return &YtdlpCommandBuilder{Settings: s}
}

// PrescanArgs builds the flat playlist pre-scan argument list. Each entry is
// printed as "id<TAB>title", preceded by one "playlist:<title>" line.
func (b *YtdlpCommandBuilder) PrescanArgs() []string {
	s := b.Settings

	args := []string{
		"--flat-playlist",
		"--skip-download",
		"--no-warnings",
		"--print", "playlist:%(playlist_title)s",
		"--print", "%(id)s\t%(title)s",
	}
	if s.SingleVideo {
		args = append(args, "--no-playlist")
	}
	args = append(args, s.PlaylistURL)
	return args
}

// FetchArgs builds the download-and-transcode argument list.
func (b *YtdlpCommandBuilder) FetchArgs() []string {
	s := b.Settings

	args := []string{
		"-f", consts.AudioFormatSelector,
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", strconv.Itoa(s.Bitrate) + "K",
		"--restrict-filenames",
		"-o", filepath.Join(s.OutputDir, consts.OutputTemplate),
		"--no-warnings",
		"--newline",
		"--retries", "10",
		"--fragment-retries", "10",
		"--hls-use-mpegts",
		"--print", "after_move:%(filepath)s",
		"--no-simulate",
	}

	if s.FailFast {
		args = append(args, "--abort-on-error")
	} else {
		args = append(args, "--ignore-errors")
	}

	if s.SingleVideo {
		args = append(args, "--no-playlist")
	}

	if s.CookieSource != "" {
		args = append(args, "--cookies-from-browser", s.CookieSource)
	}

	if s.FFmpegPath != "" {
		// yt-dlp wants the directory holding the binary, not the binary itself
		args = append(args, "--ffmpeg-location", filepath.Dir(s.FFmpegPath))
	}

	args = append(args, s.PlaylistURL)

	logging.D(1, "Built yt-dlp argument list: %v", args)
	return args
}

// PrescanCommand returns the runnable pre-scan command.
func (b *YtdlpCommandBuilder) PrescanCommand(ctx context.Context) (*exec.Cmd, error) {
	if _, err := exec.LookPath(consts.YtdlpCmd); err != nil {
		return nil, fmt.Errorf("%s command not found: %w", consts.YtdlpCmd, err)
	}
	return exec.CommandContext(ctx, consts.YtdlpCmd, b.PrescanArgs()...), nil
}

// FetchCommand returns the runnable download command.
func (b *YtdlpCommandBuilder) FetchCommand(ctx context.Context) (*exec.Cmd, error) {
	if _, err := exec.LookPath(consts.YtdlpCmd); err != nil {
		return nil, fmt.Errorf("%s command not found: %w", consts.YtdlpCmd, err)
	}
	return exec.CommandContext(ctx, consts.YtdlpCmd, b.FetchArgs()...), nil
}
