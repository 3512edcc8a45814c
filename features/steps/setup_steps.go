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

type setupContext struct {
	tempDir         string
	configPath      string
	originalContent string
	output          *bytes.Buffer
	err             error
}

var SharedSetupContext = &setupContext{}

// MockPrompter implements prompt.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	inputIndex       int
	confirmIndex     int
}

func NewMockPrompter(inputs []string, confirms []bool) *MockPrompter {
	return &MockPrompter{
		inputResponses:   inputs,
		confirmResponses: confirms,
	}
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		if defaultValue != "" {
			return defaultValue, nil
		}
		return "", fmt.Errorf("no more input responses available for message: %s", message)
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) InputPath(message string) (string, error) {
	return m.Input(message, "")
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSetupContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		// Create temp directory for each scenario
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config", "config.yaml")
		testCtx.originalContent = ""
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		// Cleanup temp directory
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^no config file exists for setup$`, testCtx.noConfigFileExistsForSetup)
	ctx.Step(`^no config file exists for setup at "([^"]*)"$`, testCtx.noConfigFileExistsForSetupAt)
	ctx.Step(`^a config file already exists for setup$`, testCtx.aConfigFileAlreadyExistsForSetup)
	ctx.Step(`^I run the setup command with inputs:$`, testCtx.iRunTheSetupCommandWithInputs)
	ctx.Step(`^I run the setup command with confirmation "([^"]*)"$`, testCtx.iRunTheSetupCommandWithConfirmation)
	ctx.Step(`^a config file should exist$`, testCtx.aConfigFileShouldExist)
	ctx.Step(`^the config file should contain "([^"]*)"$`, testCtx.theConfigFileShouldContain)
	ctx.Step(`^the config should have ffmpeg path "([^"]*)"$`, testCtx.theConfigShouldHaveFFmpegPath)
	ctx.Step(`^the config should have output directory "([^"]*)"$`, testCtx.theConfigShouldHaveOutputDirectory)
	ctx.Step(`^the config should have audio format "([^"]*)" with (\d+) channels?$`, testCtx.theConfigShouldHaveAudioFormatWithChannels)
	ctx.Step(`^the setup should fail with "([^"]*)"$`, testCtx.theSetupShouldFailWith)
	ctx.Step(`^the setup should be cancelled$`, testCtx.theSetupShouldBeCancelled)
	ctx.Step(`^the existing config should be unchanged$`, testCtx.theExistingConfigShouldBeUnchanged)
}

func (s *setupContext) noConfigFileExistsForSetup() error {
	return os.MkdirAll(filepath.Dir(s.configPath), 0755)
}

func (s *setupContext) noConfigFileExistsForSetupAt(name string) error {
	s.configPath = filepath.Join(s.tempDir, "config", name)
	return s.noConfigFileExistsForSetup()
}

func (s *setupContext) aConfigFileAlreadyExistsForSetup() error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return err
	}
	s.originalContent = "ffmpeg:\n  path: /existing/ffmpeg\n"
	return os.WriteFile(s.configPath, []byte(s.originalContent), 0644)
}

func (s *setupContext) iRunTheSetupCommandWithInputs(table *godog.Table) error {
	var inputs []string
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		inputs = append(inputs, row.Cells[1].Value)
	}

	s.err = cmd.RunSetupWithPrompter(NewMockPrompter(inputs, nil), s.configPath, s.output)
	return nil
}

func (s *setupContext) iRunTheSetupCommandWithConfirmation(answer string) error {
	confirm := strings.EqualFold(answer, "yes")
	s.err = cmd.RunSetupWithPrompter(NewMockPrompter(nil, []bool{confirm}), s.configPath, s.output)
	return nil
}

func (s *setupContext) load() (*config.Config, error) {
	if s.err != nil {
		return nil, fmt.Errorf("setup failed: %v", s.err)
	}
	return config.Load(s.configPath)
}

func (s *setupContext) aConfigFileShouldExist() error {
	if s.err != nil {
		return fmt.Errorf("setup failed: %v", s.err)
	}
	if _, err := os.Stat(s.configPath); err != nil {
		return fmt.Errorf("config file not found at %s: %w", s.configPath, err)
	}
	return nil
}

func (s *setupContext) theConfigFileShouldContain(text string) error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("expected config file to contain %q, got:\n%s", text, data)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveFFmpegPath(path string) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	if cfg.FFmpeg.Path != path {
		return fmt.Errorf("expected ffmpeg path %q, got %q", path, cfg.FFmpeg.Path)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveOutputDirectory(dir string) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	if cfg.Paths.OutputDirectory != dir {
		return fmt.Errorf("expected output directory %q, got %q", dir, cfg.Paths.OutputDirectory)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveAudioFormatWithChannels(format string, channels int) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	if cfg.Audio.Format != format || cfg.Audio.Channels != channels {
		return fmt.Errorf("expected audio %s/%d, got %s/%d", format, channels, cfg.Audio.Format, cfg.Audio.Channels)
	}
	return nil
}

func (s *setupContext) theSetupShouldFailWith(msg string) error {
	if s.err == nil {
		return fmt.Errorf("expected setup to fail with %q", msg)
	}
	if !strings.Contains(s.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, s.err)
	}
	return nil
}

func (s *setupContext) theSetupShouldBeCancelled() error {
	if s.err != nil {
		return fmt.Errorf("expected a clean cancel, got: %v", s.err)
	}
	if !strings.Contains(s.output.String(), "Setup cancelled.") {
		return fmt.Errorf("expected cancellation message, got:\n%s", s.output.String())
	}
	return nil
}

func (s *setupContext) theExistingConfigShouldBeUnchanged() error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}
	if string(data) != s.originalContent {
		return fmt.Errorf("config changed:\n%s", data)
	}
	return nil
}
