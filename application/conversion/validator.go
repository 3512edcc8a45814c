package conversion

import (
	"fmt"

	"audio-converter/domain/audio"
)

// Validator checks a request's filesystem preconditions before any process is started
type Validator struct {
	fileChecker audio.FileChecker
	toolPath    string
}

// NewValidator creates a Validator that expects the transcoder at toolPath
func NewValidator(fileChecker audio.FileChecker, toolPath string) *Validator {
	return &Validator{
		fileChecker: fileChecker,
		toolPath:    toolPath,
	}
}

// Validate runs the checks in order (source, output directory, tool) and
// returns the first failure only.
func (v *Validator) Validate(req audio.ConversionRequest) error {
	if !v.fileChecker.Exists(req.SourcePath) {
		return fmt.Errorf("%w: %s", audio.ErrSourceNotFound, req.SourcePath)
	}

	if dir, ok := req.OutputDir(); ok && !v.fileChecker.Exists(dir) {
		return fmt.Errorf("%w: %s", audio.ErrOutputDirMissing, dir)
	}

	if !v.fileChecker.Exists(v.toolPath) {
		return fmt.Errorf("%w at path: %s", audio.ErrToolNotFound, v.toolPath)
	}

	return nil
}
