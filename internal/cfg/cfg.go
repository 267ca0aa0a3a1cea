// Package cfg provides configuration and command-line interface setup for mixarr.
package cfg

import (
	"fmt"
	"os"
	"strings"

	"mixarr/internal/domain/consts"
	"mixarr/internal/domain/keys"
	"mixarr/internal/models"
	"mixarr/internal/utils/logging"
	"mixarr/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "mixarr <playlist_url>",
	Short: "mixarr downloads a YouTube playlist's audio tracks as MP3s.",
	Long: `mixarr downloads every audio track of a YouTube playlist, transcodes it to
MP3 at the requested bitrate, then optionally loudness-normalizes the files
and validates their durations against the disc-compatible ceiling.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Level = viper.GetInt(keys.DebugLevel)

		if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
			cInfo, err := os.Stat(configFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed check for config file path: %v\n", err)
				os.Exit(1)
			} else if cInfo.IsDir() {
				fmt.Fprintln(os.Stderr, "config file entered is a directory, should be a file")
				os.Exit(1)
			}

			if err := loadConfigFile(configFile); err != nil {
				fmt.Fprintf(os.Stderr, "failed loading config file: %v\n", err)
				os.Exit(1)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("no playlist URL entered\n\n%s", cmd.UsageString())
		}
		viper.Set(keys.PlaylistURL, args[0])
		viper.Set(keys.Execute, true)
		return nil
	},
}

// InitCommands initializes the root command and its flags.
func InitCommands() error {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("mixarr")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	return initProgramFlags(rootCmd)
}

// Execute runs the root command, parsing flags and arguments.
func Execute() error {
	return rootCmd.Execute()
}

// ShouldExecute reports whether the parse decided a run should proceed
// (false for e.g. --help).
func ShouldExecute() bool {
	return viper.GetBool(keys.Execute)
}

// GetSettings validates the parsed flags and assembles the run settings.
func GetSettings() (*models.Settings, error) {
	bitrate := viper.GetInt(keys.Bitrate)
	if err := validation.ValidateBitrate(bitrate); err != nil {
		return nil, err
	}

	playlistURL := viper.GetString(keys.PlaylistURL)
	singleVideo, err := validation.ValidatePlaylistURL(playlistURL)
	if err != nil {
		return nil, err
	}

	outputDir := viper.GetString(keys.OutputDir)
	if outputDir == "" {
		outputDir = consts.DefaultOutputDirName
	}

	return &models.Settings{
		PlaylistURL:  playlistURL,
		SingleVideo:  singleVideo,
		Bitrate:      bitrate,
		OutputDir:    outputDir,
		Normalize:    !viper.GetBool(keys.NoNormalize),
		FailFast:     viper.GetBool(keys.FailFast),
		CookieSource: viper.GetString(keys.CookieSource),
		FFmpegPath:   viper.GetString(keys.FFmpegPath),
	}, nil
}

// loadConfigFile loads and merges keys from any Viper-supported config file.
func loadConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	logging.D(1, "Merged config file: %s", path)
	return nil
}
