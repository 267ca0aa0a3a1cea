// Package ffmpeg resolves the ffmpeg/ffprobe binaries, downloading a static
// build into the cache directory when none is installed.
package ffmpeg

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"mixarr/internal/domain/consts"
	"mixarr/internal/domain/paths"
	"mixarr/internal/utils/logging"

	"github.com/ulikunitz/xz"
)

// Binaries holds the resolved transcoder/prober paths for a run.
type Binaries struct {
	FFmpeg  string
	FFprobe string
}

// Static Linux build source.
const releaseBaseURL = "https://johnvansickle.com/ffmpeg/releases"

var archMap = map[string]string{
	"amd64": "amd64",
	"arm64": "arm64",
	"arm":   "armhf",
	"386":   "i686",
}

// Resolve locates ffmpeg and ffprobe. Order: explicit override, $PATH, cached
// provisioned binaries, fresh download of a static build (Linux only).
func Resolve(ctx context.Context, override string) (*Binaries, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return nil, fmt.Errorf("ffmpeg path %q is not usable: %w", override, err)
		}
		return &Binaries{
			FFmpeg:  override,
			FFprobe: siblingProbe(override),
		}, nil
	}

	ffmpegPath, err := exec.LookPath(consts.FFmpegCmd)
	if err == nil {
		b := &Binaries{FFmpeg: ffmpegPath}
		if probePath, err := exec.LookPath(consts.FFprobeCmd); err == nil {
			b.FFprobe = probePath
		} else {
			b.FFprobe = siblingProbe(ffmpegPath)
		}
		return b, nil
	}
	if !errors.Is(err, exec.ErrNotFound) {
		return nil, fmt.Errorf("error checking for %q at $PATH: %w", consts.FFmpegCmd, err)
	}

	// Already provisioned?
	cached := &Binaries{
		FFmpeg:  filepath.Join(paths.FFmpegCacheDir, consts.FFmpegCmd),
		FFprobe: filepath.Join(paths.FFmpegCacheDir, consts.FFprobeCmd),
	}
	if isExecutable(cached.FFmpeg) && isExecutable(cached.FFprobe) {
		logging.D(1, "Using cached ffmpeg binaries in %s", paths.FFmpegCacheDir)
		return cached, nil
	}

	return provision(ctx)
}

// provision downloads and extracts a static ffmpeg build into the cache dir.
func provision(ctx context.Context) (*Binaries, error) {
	if runtime.GOOS != "linux" {
		return nil, fmt.Errorf("ffmpeg not found in $PATH and automatic download is only supported on Linux; " +
			"install it manually (e.g. 'sudo apt install ffmpeg' or 'brew install ffmpeg')")
	}

	url, err := ArchiveURL(runtime.GOARCH)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(paths.FFmpegCacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ffmpeg cache directory: %w", err)
	}

	logging.I("ffmpeg not found in $PATH, downloading static build from %s (this may take a few minutes)...", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download ffmpeg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download ffmpeg: unexpected status %s", resp.Status)
	}

	if err := extractBinaries(resp.Body, paths.FFmpegCacheDir); err != nil {
		return nil, err
	}

	b := &Binaries{
		FFmpeg:  filepath.Join(paths.FFmpegCacheDir, consts.FFmpegCmd),
		FFprobe: filepath.Join(paths.FFmpegCacheDir, consts.FFprobeCmd),
	}
	if !isExecutable(b.FFmpeg) {
		return nil, fmt.Errorf("ffmpeg archive did not contain a usable binary")
	}
	logging.S("ffmpeg installed to: %s", paths.FFmpegCacheDir)
	return b, nil
}

// ArchiveURL maps a GOARCH value to the static build archive URL.
func ArchiveURL(goarch string) (string, error) {
	arch, ok := archMap[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture %q, install ffmpeg manually", goarch)
	}
	return fmt.Sprintf("%s/ffmpeg-release-%s-static.tar.xz", releaseBaseURL, arch), nil
}

// extractBinaries pulls the ffmpeg and ffprobe entries out of the tar.xz
// stream into destDir.
func extractBinaries(r io.Reader, destDir string) error {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to read ffmpeg archive: %w", err)
	}

	var found int
	tr := tar.NewReader(xzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to extract ffmpeg archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		base := filepath.Base(hdr.Name)
		if base != consts.FFmpegCmd && base != consts.FFprobeCmd {
			continue
		}

		dest := filepath.Join(destDir, base)
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", dest, err)
		}
		if _, err := io.Copy(f, tr); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %q: %w", dest, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		found++
		if found == 2 {
			break
		}
	}

	if found == 0 {
		return fmt.Errorf("no ffmpeg binaries found in archive")
	}
	return nil
}

// siblingProbe guesses the ffprobe path next to a known ffmpeg binary,
// falling back to bare "ffprobe" ($PATH resolution at exec time).
func siblingProbe(ffmpegPath string) string {
	probe := filepath.Join(filepath.Dir(ffmpegPath), consts.FFprobeCmd)
	if isExecutable(probe) {
		return probe
	}
	return consts.FFprobeCmd
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
