package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
ffmpeg:
  path: /opt/homebrew/bin/ffmpeg
paths:
  output_directory: /Users/me/Music
audio:
  format: flac
  channels: 1
presets:
  podcast:
    format: mp3
    bitrate: 96k
    channels: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/homebrew/bin/ffmpeg", cfg.FFmpeg.Path)
	assert.Equal(t, "/Users/me/Music", cfg.Paths.OutputDirectory)
	assert.Equal(t, "flac", cfg.Audio.Format)
	assert.Equal(t, 1, cfg.Audio.Channels)
	// defaults survive for fields the file leaves out
	assert.Equal(t, "320k", cfg.Audio.Bitrate)
	assert.Equal(t, "44100", cfg.Audio.SampleRate)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "96k", cfg.Presets["podcast"].Bitrate)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[ffmpeg]
path = "/usr/bin/ffmpeg"

[audio]
format = "aac"
bitrate = "256k"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/ffmpeg", cfg.FFmpeg.Path)
	assert.Equal(t, "aac", cfg.Audio.Format)
	assert.Equal(t, "256k", cfg.Audio.Bitrate)
	assert.Equal(t, 2, cfg.Audio.Channels)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "audio: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.yaml", "logging:\n  level: loud\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("negative channels", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.yaml", "audio:\n  channels: -1\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoad_UnknownFormatAllowed(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", "audio:\n  format: wav\n"))
	require.NoError(t, err)
	assert.Equal(t, "wav", cfg.Audio.Format)
	assert.True(t, cfg.Audio.Encoding().IsStreamCopy())
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.Paths.OutputDirectory = "/srv/audio"
			cfg.Presets = map[string]PresetConfig{"hq": {Format: "flac"}}

			require.NoError(t, Save(cfg, path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "/srv/audio", loaded.Paths.OutputDirectory)
			assert.Equal(t, "flac", loaded.Presets["hq"].Format)
		})
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "nested", "config.yaml")

	require.NoError(t, Save(Default(), path))

	_, err := Load(path)
	assert.NoError(t, err)
}

func TestClone_Independent(t *testing.T) {
	cfg := Default()
	cfg.Presets = map[string]PresetConfig{"hq": {Format: "flac"}}

	clone := cfg.Clone()
	clone.Paths.OutputDirectory = "/elsewhere"
	clone.Presets["hq"] = PresetConfig{Format: "mp3"}
	clone.Presets["lq"] = PresetConfig{Format: "aac"}

	assert.Empty(t, cfg.Paths.OutputDirectory)
	assert.Equal(t, "flac", cfg.Presets["hq"].Format)
	assert.NotContains(t, cfg.Presets, "lq")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	lookuper := envconfig.MapLookuper(map[string]string{
		"AUDIO_CONVERTER_FFMPEG_PATH": "/custom/ffmpeg",
		"AUDIO_CONVERTER_OUTPUT_DIR":  "/tmp/out",
		"AUDIO_CONVERTER_LOG_LEVEL":   "debug",
	})

	require.NoError(t, cfg.applyLookuper(context.Background(), lookuper))

	assert.Equal(t, "/custom/ffmpeg", cfg.FFmpeg.Path)
	assert.Equal(t, "/tmp/out", cfg.Paths.OutputDirectory)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	cfg := Default()
	lookuper := envconfig.MapLookuper(map[string]string{
		"AUDIO_CONVERTER_LOG_FORMAT": "xml",
	})

	err := cfg.applyLookuper(context.Background(), lookuper)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv_OS(t *testing.T) {
	t.Setenv("AUDIO_CONVERTER_FFMPEG_PATH", "/env/ffmpeg")
	cfg := Default()

	require.NoError(t, cfg.ApplyEnv(context.Background()))
	assert.Equal(t, "/env/ffmpeg", cfg.FFmpeg.Path)
}

func TestNewLogger(t *testing.T) {
	t.Run("json at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := LoggingConfig{Level: "debug", Format: "json"}.NewLogger(&buf)
		logger.Debug("hello")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("text filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := LoggingConfig{Level: "warn"}.NewLogger(&buf)
		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}
