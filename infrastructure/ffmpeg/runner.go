package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Result holds the captured streams of a finished process
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with status zero
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes the command to completion. A non-nil error means the
	// process could not be started; a started process that fails is
	// reported through Result.ExitCode.
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command and captures stdout and stderr
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: decodeLossy(stdout.Bytes()),
		Stderr: decodeLossy(stderr.Bytes()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// -1 when the process was killed by a signal
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}

// decodeLossy converts process output to text, replacing invalid UTF-8
func decodeLossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// Ensure ExecCommandRunner implements CommandRunner
var _ CommandRunner = (*ExecCommandRunner)(nil)
