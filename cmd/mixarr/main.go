// Package main is the entrypoint of mixarr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mixarr/internal/cfg"
	"mixarr/internal/domain/paths"
	"mixarr/internal/ffmpeg"
	"mixarr/internal/media"
	"mixarr/internal/process"
	"mixarr/internal/utils/logging"
)

// main is the main entrypoint of the program (duh!).
func main() {
	startTime := time.Now()

	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "mixarr exiting with error: %v\n", err)
		os.Exit(1)
	}

	if err := logging.SetupLogging(paths.LogFilePath); err != nil {
		fmt.Printf("Notice: log file was not created: %v\n", err)
	}
	defer logging.CloseLogFile()

	if err := cfg.InitCommands(); err != nil {
		logging.E("Error: %v", err)
		os.Exit(1)
	}

	if err := cfg.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !cfg.ShouldExecute() {
		return // e.g. --help
	}

	settings, err := cfg.GetSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Cancellable context for shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logging.I("mixarr started at: %v", startTime.Format("2006-01-02 15:04:05.00 MST"))

	bins, err := ffmpeg.Resolve(ctx, settings.FFmpegPath)
	if err != nil {
		logging.E("Error: %v", err)
		os.Exit(1)
	}
	settings.FFmpegPath = bins.FFmpeg
	settings.FFprobePath = bins.FFprobe

	sum, runErr := process.Run(ctx, media.NewClient(), settings)

	endTime := time.Now()
	logging.I("mixarr finished at: %v", endTime.Format("2006-01-02 15:04:05.00 MST"))
	logging.I("Time elapsed: %.2f seconds", endTime.Sub(startTime).Seconds())

	if runErr != nil {
		logging.E("Error: %v", runErr)
		logging.I("Partial output (%d file(s)) left in %q", sum.Downloaded, settings.OutputDir)
		os.Exit(1)
	}
}
