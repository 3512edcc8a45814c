//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"audio-converter/application/conversion"
	"audio-converter/infrastructure/ffmpeg"

	"github.com/cucumber/godog"
)

// mockFileChecker simulates file existence
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// mockRunner records ffmpeg invocations instead of starting a process
type mockRunner struct {
	calls [][]string
	// failures maps a source path to the stderr ffmpeg prints for it
	failures  map[string]string
	launchErr error
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (ffmpeg.Result, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.launchErr != nil {
		return ffmpeg.Result{}, m.launchErr
	}
	for source, stderr := range m.failures {
		if source == "*" || containsArg(args, source) {
			return ffmpeg.Result{Stderr: stderr, ExitCode: 1}, nil
		}
	}
	return ffmpeg.Result{ExitCode: 0}, nil
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

// pipelineContext holds the conversion stack shared by convert and batch scenarios
type pipelineContext struct {
	toolPath    string
	fileChecker *mockFileChecker
	runner      *mockRunner
	outputDir   string
	folder      *mockFolderPicker
	output      *bytes.Buffer
	err         error
}

// mockFolderPicker returns a canned directory and counts how often it was asked
type mockFolderPicker struct {
	dir    string
	cancel bool
	calls  int
}

func (m *mockFolderPicker) PickFolder() (string, bool, error) {
	m.calls++
	if m.cancel {
		return "", false, nil
	}
	return m.dir, true, nil
}

// SharedPipelineContext is reset before each scenario via Before hook
var SharedPipelineContext *pipelineContext

func getPipelineContext() *pipelineContext {
	return SharedPipelineContext
}

func (p *pipelineContext) converter() *conversion.Service {
	transcoder := ffmpeg.NewTranscoder(
		ffmpeg.WithFFmpegPath(p.toolPath),
		ffmpeg.WithCommandRunner(p.runner),
	)
	return conversion.NewService(transcoder, p.fileChecker, p.toolPath, nil)
}

func InitializeCommonScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedPipelineContext = &pipelineContext{
			toolPath: "/usr/bin/ffmpeg",
			fileChecker: &mockFileChecker{
				existingFiles: map[string]bool{"/usr/bin/ffmpeg": true},
			},
			runner: &mockRunner{failures: make(map[string]string)},
			folder: &mockFolderPicker{},
			output: &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedPipelineContext = nil
		return c, nil
	})

	ctx.Step(`^ffmpeg is installed at "([^"]*)"$`, ffmpegIsInstalledAt)
	ctx.Step(`^ffmpeg is not installed$`, ffmpegIsNotInstalled)
	ctx.Step(`^ffmpeg cannot be started$`, ffmpegCannotBeStarted)
	ctx.Step(`^a source file at "([^"]*)"$`, aSourceFileAt)
	ctx.Step(`^the directory "([^"]*)" exists$`, theDirectoryExists)
	ctx.Step(`^the output directory is "([^"]*)"$`, theOutputDirectoryIs)
	ctx.Step(`^the folder picker will return "([^"]*)"$`, theFolderPickerWillReturn)
	ctx.Step(`^the user cancels the folder picker$`, theUserCancelsTheFolderPicker)
	ctx.Step(`^ffmpeg fails with "([^"]*)"$`, ffmpegFailsWith)
	ctx.Step(`^ffmpeg fails for "([^"]*)" with "([^"]*)"$`, ffmpegFailsForWith)

	ctx.Step(`^ffmpeg should have been called with arguments:$`, ffmpegShouldHaveBeenCalledWithArguments)
	ctx.Step(`^ffmpeg should have been called (\d+) times?$`, ffmpegShouldHaveBeenCalledTimes)
	ctx.Step(`^ffmpeg should not have been called$`, ffmpegShouldNotHaveBeenCalled)
	ctx.Step(`^ffmpeg call (\d+) should write "([^"]*)"$`, ffmpegCallShouldWrite)
	ctx.Step(`^ffmpeg call (\d+) should include "([^"]*)" "([^"]*)"$`, ffmpegCallShouldInclude)
	ctx.Step(`^ffmpeg call (\d+) should not include "([^"]*)"$`, ffmpegCallShouldNotInclude)

	ctx.Step(`^the conversion should succeed$`, theConversionShouldSucceed)
	ctx.Step(`^the conversion should fail with "([^"]*)"$`, theConversionShouldFailWith)
	ctx.Step(`^the conversion output should contain "([^"]*)"$`, theConversionOutputShouldContain)
}

func ffmpegIsInstalledAt(path string) error {
	p := getPipelineContext()
	delete(p.fileChecker.existingFiles, p.toolPath)
	p.toolPath = path
	p.fileChecker.existingFiles[path] = true
	return nil
}

func ffmpegIsNotInstalled() error {
	p := getPipelineContext()
	p.fileChecker.existingFiles[p.toolPath] = false
	return nil
}

func ffmpegCannotBeStarted() error {
	p := getPipelineContext()
	p.runner.launchErr = fmt.Errorf("fork/exec %s: permission denied", p.toolPath)
	return nil
}

func aSourceFileAt(path string) error {
	p := getPipelineContext()
	p.fileChecker.existingFiles[path] = true
	return nil
}

func theDirectoryExists(path string) error {
	p := getPipelineContext()
	p.fileChecker.existingFiles[path] = true
	return nil
}

func theOutputDirectoryIs(dir string) error {
	p := getPipelineContext()
	p.outputDir = dir
	p.fileChecker.existingFiles[dir] = true
	return nil
}

func theFolderPickerWillReturn(dir string) error {
	p := getPipelineContext()
	p.folder.dir = dir
	p.fileChecker.existingFiles[dir] = true
	return nil
}

func theUserCancelsTheFolderPicker() error {
	getPipelineContext().folder.cancel = true
	return nil
}

func ffmpegFailsWith(stderr string) error {
	p := getPipelineContext()
	p.runner.failures["*"] = stderr
	return nil
}

func ffmpegFailsForWith(source, stderr string) error {
	p := getPipelineContext()
	p.runner.failures[source] = stderr
	return nil
}

func ffmpegShouldHaveBeenCalledWithArguments(table *godog.Table) error {
	p := getPipelineContext()
	if len(p.runner.calls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}

	call := p.runner.calls[0][1:]
	var expected []string
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		expected = append(expected, row.Cells[0].Value)
	}

	if len(call) != len(expected) {
		return fmt.Errorf("expected %d arguments %v, got %d: %v", len(expected), expected, len(call), call)
	}
	for i := range expected {
		if call[i] != expected[i] {
			return fmt.Errorf("argument %d: expected %q, got %q (full call: %v)", i, expected[i], call[i], call)
		}
	}
	return nil
}

func ffmpegShouldHaveBeenCalledTimes(n int) error {
	p := getPipelineContext()
	if len(p.runner.calls) != n {
		return fmt.Errorf("expected %d ffmpeg calls, got %d", n, len(p.runner.calls))
	}
	return nil
}

func ffmpegShouldNotHaveBeenCalled() error {
	return ffmpegShouldHaveBeenCalledTimes(0)
}

func (p *pipelineContext) call(n int) ([]string, error) {
	if n < 1 || n > len(p.runner.calls) {
		return nil, fmt.Errorf("ffmpeg call %d not found; %d calls made", n, len(p.runner.calls))
	}
	return p.runner.calls[n-1], nil
}

func ffmpegCallShouldWrite(n int, path string) error {
	call, err := getPipelineContext().call(n)
	if err != nil {
		return err
	}
	if got := call[len(call)-1]; got != path {
		return fmt.Errorf("expected call %d to write %q, got %q", n, path, got)
	}
	return nil
}

func ffmpegCallShouldInclude(n int, flag, value string) error {
	call, err := getPipelineContext().call(n)
	if err != nil {
		return err
	}
	for i := 0; i < len(call)-1; i++ {
		if call[i] == flag && call[i+1] == value {
			return nil
		}
	}
	return fmt.Errorf("expected call %d to include %s %s: %v", n, flag, value, call)
}

func ffmpegCallShouldNotInclude(n int, flag string) error {
	call, err := getPipelineContext().call(n)
	if err != nil {
		return err
	}
	if containsArg(call, flag) {
		return fmt.Errorf("expected call %d not to include %s: %v", n, flag, call)
	}
	return nil
}

func theConversionShouldSucceed() error {
	p := getPipelineContext()
	if p.err != nil {
		return fmt.Errorf("expected success, got error: %v", p.err)
	}
	return nil
}

func theConversionShouldFailWith(msg string) error {
	p := getPipelineContext()
	if p.err == nil {
		return fmt.Errorf("expected an error containing %q but got none", msg)
	}
	if !strings.Contains(p.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, p.err)
	}
	return nil
}

func theConversionOutputShouldContain(text string) error {
	p := getPipelineContext()
	if !strings.Contains(p.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, p.output.String())
	}
	return nil
}
