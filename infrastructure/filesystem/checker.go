package filesystem

import (
	"os"

	"audio-converter/domain/audio"
)

// Checker implements audio.FileChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the path exists, whether file or directory
func (c *Checker) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Ensure Checker implements audio.FileChecker
var _ audio.FileChecker = (*Checker)(nil)
