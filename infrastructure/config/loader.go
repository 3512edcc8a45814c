package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audio-converter/domain/audio"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when --config is not given
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	FFmpeg  FFmpegConfig            `yaml:"ffmpeg" toml:"ffmpeg"`
	Paths   PathsConfig             `yaml:"paths" toml:"paths"`
	Audio   AudioConfig             `yaml:"audio" toml:"audio"`
	Logging LoggingConfig           `yaml:"logging" toml:"logging"`
	Presets map[string]PresetConfig `yaml:"presets,omitempty" toml:"presets,omitempty" validate:"dive,keys,required,endkeys"`
}

// FFmpegConfig locates the transcoder binary
type FFmpegConfig struct {
	// Path is an absolute path or a bare command name resolved through PATH
	Path string `yaml:"path" toml:"path"`
}

// PathsConfig contains directory paths for output
type PathsConfig struct {
	OutputDirectory string `yaml:"output_directory" toml:"output_directory"`
}

// AudioConfig contains the default output encoding
type AudioConfig struct {
	Format     string `yaml:"format" toml:"format"`
	Bitrate    string `yaml:"bitrate" toml:"bitrate"`
	SampleRate string `yaml:"sample_rate" toml:"sample_rate"`
	Channels   int    `yaml:"channels" toml:"channels" validate:"gte=0"`
}

// LoggingConfig controls the slog handler
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" toml:"format" validate:"omitempty,oneof=text json"`
}

// PresetConfig is a named audio encoding
type PresetConfig struct {
	Format     string `yaml:"format" toml:"format"`
	Bitrate    string `yaml:"bitrate,omitempty" toml:"bitrate,omitempty"`
	SampleRate string `yaml:"sample_rate,omitempty" toml:"sample_rate,omitempty"`
	Channels   int    `yaml:"channels,omitempty" toml:"channels,omitempty" validate:"gte=0"`
}

// Encoding converts the audio defaults to the domain type
func (a AudioConfig) Encoding() audio.AudioEncodingConfig {
	return audio.AudioEncodingConfig{
		Format:     a.Format,
		Bitrate:    a.Bitrate,
		SampleRate: a.SampleRate,
		Channels:   a.Channels,
	}
}

// Encoding converts the preset to the domain type
func (p PresetConfig) Encoding() audio.AudioEncodingConfig {
	return audio.AudioEncodingConfig{
		Format:     p.Format,
		Bitrate:    p.Bitrate,
		SampleRate: p.SampleRate,
		Channels:   p.Channels,
	}
}

// Default returns a configuration with the built-in defaults
func Default() *Config {
	return &Config{
		FFmpeg: FFmpegConfig{Path: "ffmpeg"},
		Audio: AudioConfig{
			Format:     audio.DefaultFormat,
			Bitrate:    audio.DefaultBitrate,
			SampleRate: audio.DefaultSampleRate,
			Channels:   audio.DefaultChannels,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Clone returns a copy that shares no maps with c
func (c *Config) Clone() *Config {
	out := *c
	if c.Presets != nil {
		out.Presets = make(map[string]PresetConfig, len(c.Presets))
		for k, v := range c.Presets {
			out.Presets[k] = v
		}
	}
	return &out
}

// Load reads and parses the configuration from the specified file.
// Files ending in .toml are decoded as TOML, anything else as YAML.
// Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified file, as TOML or YAML by
// extension, creating the parent directory if needed
func Save(cfg *Config, path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
