package builder

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"mixarr/internal/domain/consts"
	"mixarr/internal/models"
)

// FFmpegCommandBuilder builds ffmpeg/ffprobe invocations.
type FFmpegCommandBuilder struct {
	Settings *models.Settings
}

// NewFFmpegCommandBuilder returns a builder for the given settings.
func NewFFmpegCommandBuilder(s *models.Settings) *FFmpegCommandBuilder {
	return &FFmpegCommandBuilder{Settings: s}
}

// NormalizeArgs builds the single-pass loudnorm argument list, writing to
// outFile rather than in place.
func (b *FFmpegCommandBuilder) NormalizeArgs(inFile, outFile string) []string {
	return []string{
		"-i", inFile,
		"-af", fmt.Sprintf("loudnorm=I=%.1f:TP=%.1f:LRA=%.1f",
			consts.NormTargetLUFS, consts.NormTruePeak, consts.NormLoudRange),
		"-ar", strconv.Itoa(consts.NormSampleRate),
		"-y",
		outFile,
	}
}

// ProbeArgs builds the ffprobe argument list to print the container duration
// in seconds, bare.
func (b *FFmpegCommandBuilder) ProbeArgs(file string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file,
	}
}

// NormalizeCommand returns the runnable loudness normalization command.
func (b *FFmpegCommandBuilder) NormalizeCommand(ctx context.Context, inFile, outFile string) (*exec.Cmd, error) {
	bin := b.Settings.FFmpegPath
	if bin == "" {
		return nil, fmt.Errorf("no %s path resolved", consts.FFmpegCmd)
	}
	return exec.CommandContext(ctx, bin, b.NormalizeArgs(inFile, outFile)...), nil
}

// ProbeCommand returns the runnable duration probe command.
func (b *FFmpegCommandBuilder) ProbeCommand(ctx context.Context, file string) (*exec.Cmd, error) {
	bin := b.Settings.FFprobePath
	if bin == "" {
		return nil, fmt.Errorf("no %s path resolved", consts.FFprobeCmd)
	}
	return exec.CommandContext(ctx, bin, b.ProbeArgs(file)...), nil
}
