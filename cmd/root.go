package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"audio-converter/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	// fileCfg is the config as read from disk; cfg adds environment overrides
	fileCfg *config.Config
	cfg     *config.Config
	cfgErr  error
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "audio-converter",
	Short: "Extract and convert audio from video files with ffmpeg",
	Long: `audio-converter extracts an audio track from a video or audio source,
optionally trims it, tags it with a title and artist, and writes it in the
chosen codec, bitrate, sample rate and channel layout.

  - Convert a single file (optionally picking files interactively)
  - Convert a batch of files listed in a job file
  - Manage named audio presets
  - Inspect the tags of a written file

Example:
  audio-converter convert --source concert.mp4 --title "Encore" --artist "The Band" --start 01:02:00 --end 00:04:30`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = config.DefaultPath
	}

	fileCfg, cfg, cfgErr = loadConfig(cfgFile, explicit)
	if cfgErr != nil {
		// Commands that need config report cfgErr through requireConfig
		fileCfg, cfg = nil, nil
		return
	}

	logger = cfg.Logging.NewLogger(os.Stderr)
	slog.SetDefault(logger)
}

// loadConfig reads the config file, falling back to defaults when the default
// file is absent. It returns the file config and an effective copy with
// environment overrides applied; only the file config is ever saved.
func loadConfig(path string, explicit bool) (*config.Config, *config.Config, error) {
	file, err := config.Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		file = config.Default()
	}

	effective := file.Clone()
	if err := effective.ApplyEnv(context.Background()); err != nil {
		return nil, nil, err
	}
	return file, effective, nil
}

// requireConfig returns the effective configuration used to run conversions
func requireConfig() (*config.Config, error) {
	if cfg == nil {
		return nil, configMissing()
	}
	return cfg, nil
}

// requireFileConfig returns the configuration as stored on disk, for commands that save it
func requireFileConfig() (*config.Config, error) {
	if fileCfg == nil {
		return nil, configMissing()
	}
	return fileCfg, nil
}

func configMissing() error {
	if cfgErr != nil {
		return fmt.Errorf("configuration not loaded: %w", cfgErr)
	}
	return fmt.Errorf("configuration not loaded; run 'audio-converter setup' first")
}

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}
