//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audio-converter/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	envKeys    []string
	cfg        *config.Config
	loadErr    error
}

// SharedConfigContext is reset before each scenario via Before hook
var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		*testCtx = configContext{tempDir: tempDir}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		for _, key := range testCtx.envKeys {
			os.Unsetenv(key)
		}
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a configuration file "([^"]*)" with:$`, testCtx.aConfigurationFileWith)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, testCtx.theEnvironmentVariableIs)
	ctx.Step(`^I load the configuration$`, testCtx.iLoadTheConfiguration)
	ctx.Step(`^I attempt to load the configuration$`, testCtx.iAttemptToLoadTheConfiguration)
	ctx.Step(`^I attempt to load the configuration from "([^"]*)"$`, testCtx.iAttemptToLoadTheConfigurationFrom)
	ctx.Step(`^the ffmpeg path should be "([^"]*)"$`, testCtx.theFFmpegPathShouldBe)
	ctx.Step(`^the output directory should be "([^"]*)"$`, testCtx.theOutputDirectoryShouldBe)
	ctx.Step(`^the default audio should be "([^"]*)" at "([^"]*)" and "([^"]*)" Hz$`, testCtx.theDefaultAudioShouldBe)
	ctx.Step(`^loading should fail with "([^"]*)"$`, testCtx.loadingShouldFailWith)
}

func (c *configContext) aConfigurationFileWith(name string, doc *godog.DocString) error {
	c.configPath = filepath.Join(c.tempDir, name)
	return os.WriteFile(c.configPath, []byte(doc.Content), 0644)
}

func (c *configContext) theEnvironmentVariableIs(key, value string) error {
	c.envKeys = append(c.envKeys, key)
	return os.Setenv(key, value)
}

func (c *configContext) load() {
	cfg, err := config.Load(c.configPath)
	if err == nil {
		err = cfg.ApplyEnv(context.Background())
	}
	c.cfg, c.loadErr = cfg, err
}

func (c *configContext) iLoadTheConfiguration() error {
	c.load()
	if c.loadErr != nil {
		return fmt.Errorf("failed to load config: %w", c.loadErr)
	}
	return nil
}

func (c *configContext) iAttemptToLoadTheConfiguration() error {
	c.load()
	return nil
}

func (c *configContext) iAttemptToLoadTheConfigurationFrom(name string) error {
	c.configPath = filepath.Join(c.tempDir, name)
	c.load()
	return nil
}

func (c *configContext) theFFmpegPathShouldBe(expected string) error {
	if c.cfg.FFmpeg.Path != expected {
		return fmt.Errorf("expected ffmpeg path %q, got %q", expected, c.cfg.FFmpeg.Path)
	}
	return nil
}

func (c *configContext) theOutputDirectoryShouldBe(expected string) error {
	if c.cfg.Paths.OutputDirectory != expected {
		return fmt.Errorf("expected output directory %q, got %q", expected, c.cfg.Paths.OutputDirectory)
	}
	return nil
}

func (c *configContext) theDefaultAudioShouldBe(format, bitrate, sampleRate string) error {
	a := c.cfg.Audio
	if a.Format != format || a.Bitrate != bitrate || a.SampleRate != sampleRate {
		return fmt.Errorf("expected audio %s/%s/%s, got %s/%s/%s", format, bitrate, sampleRate, a.Format, a.Bitrate, a.SampleRate)
	}
	return nil
}

func (c *configContext) loadingShouldFailWith(msg string) error {
	if c.loadErr == nil {
		return fmt.Errorf("expected loading to fail with %q", msg)
	}
	if !strings.Contains(c.loadErr.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, c.loadErr)
	}
	return nil
}
