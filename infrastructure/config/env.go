package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "AUDIO_CONVERTER_"

// envOverrides are applied on top of the file configuration
type envOverrides struct {
	FFmpegPath string `env:"FFMPEG_PATH"`
	OutputDir  string `env:"OUTPUT_DIR"`
	LogLevel   string `env:"LOG_LEVEL"`
	LogFormat  string `env:"LOG_FORMAT"`
}

// ApplyEnv overrides config fields from AUDIO_CONVERTER_* environment variables
func (c *Config) ApplyEnv(ctx context.Context) error {
	return c.applyLookuper(ctx, envconfig.OsLookuper())
}

func (c *Config) applyLookuper(ctx context.Context, lookuper envconfig.Lookuper) error {
	var env envOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if env.FFmpegPath != "" {
		c.FFmpeg.Path = env.FFmpegPath
	}
	if env.OutputDir != "" {
		c.Paths.OutputDirectory = env.OutputDir
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		c.Logging.Format = env.LogFormat
	}

	return c.Validate()
}
