// Package keys holds the Viper/terminal flag keys used across mixarr.
package keys

// Terminal keys
const (
	Bitrate      string = "bitrate"
	OutputDir    string = "output"
	NoNormalize  string = "no-normalize"
	FailFast     string = "fail-fast"
	CookieSource string = "cookie-source"
	FFmpegPath   string = "ffmpeg"
	ConfigFile   string = "config-file"
)

// Logging
const (
	DebugLevel string = "debug"
)

// Internal keys
const (
	PlaylistURL string = "playlistURL"
	Execute     string = "execute"
)
