package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"audio-converter/domain/audio"
)

// DefaultPath is used when no ffmpeg location is configured
const DefaultPath = "ffmpeg"

// Transcoder implements audio.Transcoder using ffmpeg
type Transcoder struct {
	ffmpegPath string
	runner     CommandRunner
	logger     *slog.Logger
}

// TranscoderOption is a functional option for configuring Transcoder
type TranscoderOption func(*Transcoder)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) TranscoderOption {
	return func(t *Transcoder) {
		t.ffmpegPath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) TranscoderOption {
	return func(t *Transcoder) {
		t.runner = runner
	}
}

// WithLogger sets the logger used for command and stream output
func WithLogger(logger *slog.Logger) TranscoderOption {
	return func(t *Transcoder) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranscoder creates a new FFmpeg-based transcoder
func NewTranscoder(opts ...TranscoderOption) *Transcoder {
	t := &Transcoder{
		ffmpegPath: DefaultPath,
		runner:     &ExecCommandRunner{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Path returns the ffmpeg executable this transcoder launches
func (t *Transcoder) Path() string {
	return t.ffmpegPath
}

// Transcode implements audio.Transcoder
func (t *Transcoder) Transcode(ctx context.Context, req audio.ConversionRequest) error {
	args := BuildArgs(req)

	t.logger.Debug("running ffmpeg",
		slog.String("path", t.ffmpegPath),
		slog.String("args", strings.Join(args, " ")),
	)

	res, err := t.runner.Run(ctx, t.ffmpegPath, args...)
	if err != nil {
		t.logger.Error("ffmpeg could not be started",
			slog.String("path", t.ffmpegPath),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %v", audio.ErrToolLaunchFailed, err)
	}

	t.logger.Debug("ffmpeg finished",
		slog.Int("exit_code", res.ExitCode),
		slog.String("stdout", res.Stdout),
		slog.String("stderr", res.Stderr),
	)

	if !res.Success() {
		return &audio.ExecutionError{Stderr: res.Stderr, ExitCode: res.ExitCode}
	}

	return nil
}

// Version runs "ffmpeg -version" and returns the first line of its output
func (t *Transcoder) Version(ctx context.Context) (string, error) {
	res, err := t.runner.Run(ctx, t.ffmpegPath, "-version")
	if err != nil {
		return "", fmt.Errorf("%w: %v", audio.ErrToolLaunchFailed, err)
	}
	if !res.Success() {
		return "", &audio.ExecutionError{Stderr: res.Stderr, ExitCode: res.ExitCode}
	}

	line, _, _ := strings.Cut(res.Stdout, "\n")
	return strings.TrimSpace(line), nil
}

// Ensure Transcoder implements audio.Transcoder
var _ audio.Transcoder = (*Transcoder)(nil)
