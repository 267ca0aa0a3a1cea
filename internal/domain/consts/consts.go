// Package consts holds various global, unchanging values.
package consts

import "time"

// External program names.
const (
	YtdlpCmd   = "yt-dlp"
	FFmpegCmd  = "ffmpeg"
	FFprobeCmd = "ffprobe"
)

// ValidBitrates is the set of MP3 bitrates (kbps) accepted by the tool.
var ValidBitrates = [...]int{128, 192, 256, 320}

// DefaultBitrate is used when the user does not supply one.
const DefaultBitrate = 320

// DefaultOutputDirName is the directory MP3s are written into.
const DefaultOutputDirName = "musique"

// MaxDiscDuration is the DVD-compatible track length ceiling. Files at or
// above this duration are flagged after download.
const MaxDiscDuration = 79 * time.Minute

// Loudness normalization targets (EBU R128).
const (
	NormTargetLUFS = -23.0
	NormTruePeak   = -2.0
	NormLoudRange  = 11.0
	NormSampleRate = 44100
)

// Output filename template handed to yt-dlp.
const OutputTemplate = "%(title)s.%(ext)s"

// AudioFormatSelector prefers non-HLS audio streams but falls back when the
// source only serves HLS.
const AudioFormatSelector = "bestaudio[ext!=m3u8][protocol!=m3u8_native]/bestaudio[ext!=m3u8]/bestaudio/best[ext!=m3u8][protocol!=m3u8_native]/best"
