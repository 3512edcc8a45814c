package audio

import "errors"

var (
	// ErrSourceNotFound is returned when the source media file does not exist
	ErrSourceNotFound = errors.New("source file does not exist")

	// ErrOutputDirMissing is returned when the output path's directory does not exist
	ErrOutputDirMissing = errors.New("output directory does not exist")

	// ErrToolNotFound is returned when the transcoder binary is not at its configured location
	ErrToolNotFound = errors.New("ffmpeg not found")

	// ErrToolLaunchFailed is returned when the transcoder process could not be started
	ErrToolLaunchFailed = errors.New("failed to launch ffmpeg")

	// ErrToolExecutionFailed is returned when the transcoder exits unsuccessfully
	ErrToolExecutionFailed = errors.New("ffmpeg execution failed")
)

// ExecutionError carries the transcoder's error stream after a failed run.
// Its message is the captured stderr text, unmodified.
type ExecutionError struct {
	Stderr   string
	ExitCode int
}

func (e *ExecutionError) Error() string {
	return e.Stderr
}

// Is reports ErrToolExecutionFailed so callers can classify with errors.Is
func (e *ExecutionError) Is(target error) bool {
	return target == ErrToolExecutionFailed
}
