//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audio-converter/cmd"
	"audio-converter/infrastructure/config"

	"github.com/cucumber/godog"
)

type presetContext struct {
	tempDir    string
	configPath string
	config     *config.Config
	output     *bytes.Buffer
	err        error
}

var SharedPresetContext = &presetContext{}

func InitializePresetScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedPresetContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		// Create temp directory for each scenario
		tempDir, err := os.MkdirTemp("", "preset-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config.yaml")
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		testCtx.config = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		// Cleanup temp directory
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a config file exists with a "([^"]*)" preset$`, testCtx.aConfigFileExistsWithAPreset)
	ctx.Step(`^I run preset list$`, testCtx.iRunPresetList)
	ctx.Step(`^I run preset add "([^"]*)" with format "([^"]*)" and sample rate "([^"]*)"$`, testCtx.iRunPresetAdd)
	ctx.Step(`^I run preset update "([^"]*)" with bitrate "([^"]*)"$`, testCtx.iRunPresetUpdateBitrate)
	ctx.Step(`^I run preset remove "([^"]*)"$`, testCtx.iRunPresetRemove)
	ctx.Step(`^the config should contain preset "([^"]*)" with format "([^"]*)"$`, testCtx.theConfigShouldContainPresetWithFormat)
	ctx.Step(`^the config should contain preset "([^"]*)" with bitrate "([^"]*)"$`, testCtx.theConfigShouldContainPresetWithBitrate)
	ctx.Step(`^the config should not contain preset "([^"]*)"$`, testCtx.theConfigShouldNotContainPreset)

	// Common assertions
	ctx.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	ctx.Step(`^the command should fail with "([^"]*)"$`, testCtx.theCommandShouldFailWith)
	ctx.Step(`^the output should contain "((?:[^"\\]|\\.)*)"$`, testCtx.theOutputShouldContain)
}

func (c *presetContext) aConfigFileExistsWithAPreset(name string) error {
	c.config = config.Default()
	c.config.Presets = map[string]config.PresetConfig{
		name: {Format: "mp3", Bitrate: "128k", Channels: 1},
	}
	return config.Save(c.config, c.configPath)
}

// reload reads the config back from disk so assertions see what was persisted
func (c *presetContext) reload() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	return nil
}

func (c *presetContext) iRunPresetList() error {
	c.err = cmd.RunPresetListWithDependencies(c.config, c.configPath, c.output)
	return nil
}

func (c *presetContext) iRunPresetAdd(name, format, sampleRate string) error {
	c.err = cmd.RunPresetAddWithDependencies(c.config, c.configPath, name,
		config.PresetConfig{Format: format, SampleRate: sampleRate}, c.output)
	return nil
}

func (c *presetContext) iRunPresetUpdateBitrate(name, bitrate string) error {
	c.err = cmd.RunPresetUpdateWithDependencies(c.config, c.configPath, name,
		config.PresetConfig{Bitrate: bitrate}, c.output)
	return nil
}

func (c *presetContext) iRunPresetRemove(name string) error {
	c.err = cmd.RunPresetRemoveWithDependencies(c.config, c.configPath, name, c.output)
	return nil
}

func (c *presetContext) preset(name string) (config.PresetConfig, error) {
	if err := c.reload(); err != nil {
		return config.PresetConfig{}, err
	}
	p, ok := c.config.Presets[name]
	if !ok {
		return config.PresetConfig{}, fmt.Errorf("preset %q not found in config", name)
	}
	return p, nil
}

func (c *presetContext) theConfigShouldContainPresetWithFormat(name, format string) error {
	p, err := c.preset(name)
	if err != nil {
		return err
	}
	if p.Format != format {
		return fmt.Errorf("expected preset %q format %q, got %q", name, format, p.Format)
	}
	return nil
}

func (c *presetContext) theConfigShouldContainPresetWithBitrate(name, bitrate string) error {
	p, err := c.preset(name)
	if err != nil {
		return err
	}
	if p.Bitrate != bitrate {
		return fmt.Errorf("expected preset %q bitrate %q, got %q", name, bitrate, p.Bitrate)
	}
	return nil
}

func (c *presetContext) theConfigShouldNotContainPreset(name string) error {
	if err := c.reload(); err != nil {
		return err
	}
	if _, ok := c.config.Presets[name]; ok {
		return fmt.Errorf("expected preset %q to be removed", name)
	}
	return nil
}

func (c *presetContext) theCommandShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got error: %v", c.err)
	}
	return nil
}

func (c *presetContext) theCommandShouldFailWith(msg string) error {
	if c.err == nil {
		return fmt.Errorf("expected error containing %q but got none", msg)
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, c.err)
	}
	return nil
}

func (c *presetContext) theOutputShouldContain(text string) error {
	text = strings.ReplaceAll(text, `\"`, `"`)
	if !strings.Contains(c.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, c.output.String())
	}
	return nil
}
