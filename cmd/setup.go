package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"audio-converter/domain/audio"
	"audio-converter/infrastructure/config"
	"audio-converter/infrastructure/ffmpeg"
	"audio-converter/infrastructure/prompt"

	"github.com/spf13/cobra"
)

// DefaultPrompter is the prompter used in production
var DefaultPrompter prompt.Prompter = &prompt.SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates the config file.

This command guides you through choosing the ffmpeg location, the default
output directory and the default audio encoding. A --config path ending in
.toml is written as TOML, anything else as YAML.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile, os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter prompt.Prompter, configPath string, out OutputWriter) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(filepath.Base(configPath)+" already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to audio-converter setup!")
	fmt.Fprintln(out)

	cfg := config.Default()

	if err := promptTool(prompter, cfg, out); err != nil {
		return err
	}

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptAudio(prompter, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptTool(prompter prompt.Prompter, cfg *config.Config, out OutputWriter) error {
	path, err := prompter.Input("Path to ffmpeg (or a command name on PATH)?", ffmpeg.DefaultPath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = ffmpeg.DefaultPath
	}
	cfg.FFmpeg.Path = path

	if resolved := ffmpeg.Locate(path); resolved != path {
		fmt.Fprintf(out, "Found ffmpeg at %s\n", resolved)
	}
	return nil
}

func promptPaths(prompter prompt.Prompter, cfg *config.Config) error {
	dir, err := prompter.Input("Default output directory? (empty writes next to the source)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.OutputDirectory = strings.TrimSpace(dir)
	return nil
}

func promptAudio(prompter prompt.Prompter, cfg *config.Config) error {
	format, err := prompter.Input("Default output format (mp3, aac, flac, wav)?", audio.DefaultFormat)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if format = strings.ToLower(strings.TrimSpace(format)); format != "" {
		cfg.Audio.Format = format
	}

	bitrate, err := prompter.Input("Audio bitrate?", audio.DefaultBitrate)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if bitrate = strings.TrimSpace(bitrate); bitrate != "" {
		cfg.Audio.Bitrate = bitrate
	}

	sampleRate, err := prompter.Input("Sample rate in Hz?", audio.DefaultSampleRate)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if sampleRate = strings.TrimSpace(sampleRate); sampleRate != "" {
		cfg.Audio.SampleRate = sampleRate
	}

	channels, err := prompter.Input("Number of channels?", strconv.Itoa(audio.DefaultChannels))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if channels = strings.TrimSpace(channels); channels != "" {
		n, err := strconv.Atoi(channels)
		if err != nil || n < 1 {
			return errors.New("channels must be a positive number")
		}
		cfg.Audio.Channels = n
	}

	return nil
}
