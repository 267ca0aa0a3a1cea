// Package logging provides mixarr's leveled logging helpers, backed by
// zerolog writing to the console and (once set up) a log file.
package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Level is the active debug level (0 - 3). Messages logged with D and a
// level above this are suppressed.
var Level int

var (
	mu  sync.Mutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	logFile *os.File
)

// SetupLogging attaches a log file to the logger. Console output is active
// regardless.
func SetupLogging(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}
	logFile = f

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	log = zerolog.New(zerolog.MultiLevelWriter(console, f)).
		With().Timestamp().Logger()
	return nil
}

// CloseLogFile closes the log file if one was opened.
func CloseLogFile() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// I logs an informational message.
func I(format string, args ...any) {
	log.Info().Msgf(format, args...)
}

// S logs a success message.
func S(format string, args ...any) {
	log.Info().Str("status", "success").Msgf(format, args...)
}

// W logs a warning.
func W(format string, args ...any) {
	log.Warn().Msgf(format, args...)
}

// E logs an error message.
func E(format string, args ...any) {
	log.Error().Msgf(format, args...)
}

// D logs a debug message at the given debug level.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	log.Debug().Msgf(format, args...)
}
