package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChecker_Exists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(file, []byte("data"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", file, true},
		{"existing directory", dir, true},
		{"missing file", filepath.Join(dir, "missing.mp4"), false},
		{"missing directory", filepath.Join(dir, "nope", "clip.mp4"), false},
		{"empty path", "", false},
	}

	c := NewChecker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Exists(tt.path); got != tt.want {
				t.Errorf("Checker.Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
