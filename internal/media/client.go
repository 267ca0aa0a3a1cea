// Package media implements the MediaClient contract by shelling out to
// yt-dlp, ffmpeg and ffprobe.
package media

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mixarr/internal/command/builder"
	"mixarr/internal/models"
	"mixarr/internal/utils/logging"

	"github.com/google/uuid"
)

const playlistTitlePrefix = "playlist:"

// Client runs the external tools for real.
type Client struct{}

// NewClient returns a media client backed by the external tools.
func NewClient() *Client {
	return &Client{}
}

// ResolvePlaylist performs the flat pre-scan pass.
func (c *Client) ResolvePlaylist(ctx context.Context, s *models.Settings) (*models.Playlist, error) {
	ycb := builder.NewYtdlpCommandBuilder(s)
	cmd, err := ycb.PrescanCommand(ctx)
	if err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("playlist pre-scan failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	return ParsePrescanOutput(string(out)), nil
}

// ParsePrescanOutput parses the --print output of the flat pre-scan pass.
func ParsePrescanOutput(out string) *models.Playlist {
	pl := &models.Playlist{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if title, ok := strings.CutPrefix(line, playlistTitlePrefix); ok {
			if title != "NA" && pl.Title == "" {
				pl.Title = title
			}
			continue
		}

		id, title, _ := strings.Cut(line, "\t")
		pl.Entries = append(pl.Entries, models.PlaylistEntry{ID: id, Title: title})
	}
	return pl
}

// FetchAudio downloads and transcodes every entry, returning the paths of the
// MP3 files written.
func (c *Client) FetchAudio(ctx context.Context, s *models.Settings) ([]string, error) {
	ycb := builder.NewYtdlpCommandBuilder(s)
	cmd, err := ycb.FetchCommand(ctx)
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	var files []string
	seen := make(map[string]bool)
	done := make(chan struct{})

	// Echo tool output and capture the after_move filepath prints. The
	// printed path is relative whenever the output template is.
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(io.MultiReader(stdout, stderr))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			fmt.Println(line)

			if !strings.EqualFold(filepath.Ext(line), ".mp3") || seen[line] {
				continue
			}
			if info, err := os.Stat(line); err == nil && !info.IsDir() {
				seen[line] = true
				files = append(files, line)
				logging.D(1, "Captured output file: %s", line)
			}
		}
		if err := scanner.Err(); err != nil {
			logging.E("Scanner error: %v", err)
		}
	}()

	logging.I("Executing download command: %s", cmd.String())
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start download: %w", err)
	}

	<-done
	waitErr := cmd.Wait()

	if waitErr != nil {
		if s.FailFast {
			return files, fmt.Errorf("download aborted: %w", waitErr)
		}
		// In skip mode yt-dlp still exits non-zero when some entries failed.
		// Tolerate it as long as anything was produced.
		if len(files) == 0 {
			return nil, fmt.Errorf("download failed, no files produced: %w", waitErr)
		}
		logging.W("Download finished with per-video errors (%v), continuing with %d file(s)", waitErr, len(files))
	}

	return files, nil
}

// Normalize rewrites the file at the target loudness, via a temp sibling that
// replaces the original on success.
func (c *Client) Normalize(ctx context.Context, s *models.Settings, file string) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("input file not found: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(file), "norm-"+uuid.NewString()+".mp3")

	fcb := builder.NewFFmpegCommandBuilder(s)
	cmd, err := fcb.NormalizeCommand(ctx, file, tmp)
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("ffmpeg normalization failed: %w (%s)", err, lastLine(stderr.String()))
	}

	if err := os.Rename(tmp, file); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %q with normalized output: %w", file, err)
	}
	return nil
}

// ProbeDuration returns the playback length of the file.
func (c *Client) ProbeDuration(ctx context.Context, s *models.Settings, file string) (time.Duration, error) {
	fcb := builder.NewFFmpegCommandBuilder(s)
	cmd, err := fcb.ProbeCommand(ctx, file)
	if err != nil {
		return 0, err
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %q: %w (%s)", file, err, lastLine(stderr.String()))
	}

	return ParseProbeDuration(string(out))
}

// ParseProbeDuration parses ffprobe's bare seconds output into a duration.
func ParseProbeDuration(out string) (time.Duration, error) {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" || trimmed == "N/A" {
		return 0, fmt.Errorf("ffprobe returned no duration")
	}

	secs, err := time.ParseDuration(trimmed + "s")
	if err != nil {
		return 0, fmt.Errorf("unparseable ffprobe duration %q: %w", trimmed, err)
	}
	return secs, nil
}

// lastLine trims command stderr down to its final non-empty line.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
