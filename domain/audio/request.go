package audio

import (
	"path/filepath"
)

// ConversionRequest describes a single audio extraction job.
// Optional string fields are treated as absent when empty.
type ConversionRequest struct {
	SourcePath string

	// OutputFilename is the fallback target used when OutputPath is empty
	OutputFilename string
	// OutputPath is the preferred target and overrides OutputFilename
	OutputPath string

	Title  string
	Artist string

	// StartTime is passed to the transcoder as the seek offset (-ss)
	StartTime string
	// EndTime is a DURATION measured from StartTime (-t), not an absolute
	// end timestamp. "00:03:00" means three minutes of output, wherever
	// the seek lands.
	EndTime string

	Audio    AudioEncodingConfig
	Metadata *TrackMetadata
}

// EffectiveOutputPath returns OutputPath if set, else OutputFilename
func (r ConversionRequest) EffectiveOutputPath() string {
	if r.OutputPath != "" {
		return r.OutputPath
	}
	return r.OutputFilename
}

// OutputDir returns the parent directory of the effective output path.
// The second value is false for a bare filename, which has no directory
// component to check.
func (r ConversionRequest) OutputDir() (string, bool) {
	out := r.EffectiveOutputPath()
	dir := filepath.Dir(out)
	if dir == "." && !hasDirPrefix(out) {
		return "", false
	}
	return dir, true
}

// HasStart returns true if a seek offset was supplied
func (r ConversionRequest) HasStart() bool {
	return r.StartTime != ""
}

// HasDuration returns true if a duration was supplied
func (r ConversionRequest) HasDuration() bool {
	return r.EndTime != ""
}

func hasDirPrefix(p string) bool {
	return len(p) > 1 && p[0] == '.' && (p[1] == '/' || p[1] == filepath.Separator)
}
