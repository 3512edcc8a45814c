package audio

import "context"

// Transcoder defines the interface for running a conversion
// This is a port that can be implemented by different infrastructure adapters
type Transcoder interface {
	// Transcode runs the external tool for an already validated request.
	// A non-nil error wraps one of ErrToolLaunchFailed or ErrToolExecutionFailed.
	Transcode(ctx context.Context, req ConversionRequest) error
}

// FileChecker defines the interface for checking file existence
// This is used to validate preconditions before any process is started
type FileChecker interface {
	// Exists returns true if the path exists
	Exists(path string) bool
}
