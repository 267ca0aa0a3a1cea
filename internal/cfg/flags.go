package cfg

import (
	"mixarr/internal/domain/consts"
	"mixarr/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initProgramFlags initializes user flag settings and binds them to Viper.
func initProgramFlags(rootCmd *cobra.Command) error {

	// Target MP3 bitrate
	rootCmd.PersistentFlags().IntP(keys.Bitrate, "b", consts.DefaultBitrate, "Target MP3 bitrate in kbps (128, 192, 256 or 320)")
	if err := viper.BindPFlag(keys.Bitrate, rootCmd.PersistentFlags().Lookup(keys.Bitrate)); err != nil {
		return err
	}

	// Output directory
	rootCmd.PersistentFlags().StringP(keys.OutputDir, "o", consts.DefaultOutputDirName, "Output directory (destructively reset on each run)")
	if err := viper.BindPFlag(keys.OutputDir, rootCmd.PersistentFlags().Lookup(keys.OutputDir)); err != nil {
		return err
	}

	// Loudness normalization
	rootCmd.PersistentFlags().Bool(keys.NoNormalize, false, "Skip the loudness normalization pass")
	if err := viper.BindPFlag(keys.NoNormalize, rootCmd.PersistentFlags().Lookup(keys.NoNormalize)); err != nil {
		return err
	}

	// Failure policy
	rootCmd.PersistentFlags().Bool(keys.FailFast, false, "Abort the whole run on the first per-track failure")
	if err := viper.BindPFlag(keys.FailFast, rootCmd.PersistentFlags().Lookup(keys.FailFast)); err != nil {
		return err
	}

	// Cookies
	rootCmd.PersistentFlags().String(keys.CookieSource, "", "Browser to source cookies from for gated tracks (e.g. 'firefox')")
	if err := viper.BindPFlag(keys.CookieSource, rootCmd.PersistentFlags().Lookup(keys.CookieSource)); err != nil {
		return err
	}

	// Explicit ffmpeg binary
	rootCmd.PersistentFlags().String(keys.FFmpegPath, "", "Path to the ffmpeg binary (else $PATH, else auto-provisioned)")
	if err := viper.BindPFlag(keys.FFmpegPath, rootCmd.PersistentFlags().Lookup(keys.FFmpegPath)); err != nil {
		return err
	}

	// Debug level
	rootCmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debugging level (0 - 3)")
	if err := viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel)); err != nil {
		return err
	}

	// Config file
	rootCmd.PersistentFlags().String(keys.ConfigFile, "", "Path to a Viper-readable config file supplying any flag")
	if err := viper.BindPFlag(keys.ConfigFile, rootCmd.PersistentFlags().Lookup(keys.ConfigFile)); err != nil {
		return err
	}

	return nil
}
