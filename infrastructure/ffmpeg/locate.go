package ffmpeg

import (
	"os/exec"
	"path/filepath"
)

// Locate resolves the configured ffmpeg location once at startup.
// A bare command name is looked up in PATH; anything containing a path
// separator is returned unchanged. When the lookup fails the configured
// value is returned as-is so that the pre-flight check reports it missing.
func Locate(configured string) string {
	if configured == "" {
		configured = DefaultPath
	}
	if filepath.Base(configured) != configured {
		return configured
	}

	resolved, err := exec.LookPath(configured)
	if err != nil {
		return configured
	}
	return resolved
}
