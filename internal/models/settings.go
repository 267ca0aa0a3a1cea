package models

import "time"

// Settings holds the validated configuration for a single run.
type Settings struct {
	PlaylistURL  string
	SingleVideo  bool
	Bitrate      int
	OutputDir    string
	Normalize    bool
	FailFast     bool
	CookieSource string
	FFmpegPath   string
	FFprobePath  string
}

// Playlist is the result of the flat pre-scan pass.
type Playlist struct {
	Title   string
	Entries []PlaylistEntry
}

// PlaylistEntry identifies one video inside a playlist.
type PlaylistEntry struct {
	ID    string
	Title string
}

// Track is one produced MP3 file.
type Track struct {
	Path       string
	Duration   time.Duration
	Normalized bool
	Flagged    bool // at or above the disc duration ceiling
}

// Summary aggregates the outcome of a run for reporting.
type Summary struct {
	Requested  int
	Downloaded int
	Skipped    int
	Normalized int
	Flagged    int
}
