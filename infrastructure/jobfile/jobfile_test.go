package jobfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
artist: The Band
format: aac
items:
  - source: /videos/a.mp4
    title: Opening
    start: "00:00:05"
    end: "00:03:00"
  - source: /videos/b.mkv
    artist: Guest
    format: flac
    output: /music/b.flac
`))
	require.NoError(t, err)
	require.Len(t, f.Items, 2)

	assert.Equal(t, Item{
		Source: "/videos/a.mp4",
		Title:  "Opening",
		Artist: "The Band",
		Start:  "00:00:05",
		End:    "00:03:00",
		Format: "aac",
	}, f.Items[0])

	assert.Equal(t, "Guest", f.Items[1].Artist)
	assert.Equal(t, "flac", f.Items[1].Format)
	assert.Equal(t, "/music/b.flac", f.Items[1].Output)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		errContains string
	}{
		{"empty items", "items: []", "no items"},
		{"no items key", "artist: x", "no items"},
		{"missing source", "items:\n  - title: x\n", "Source is required"},
		{"malformed", "items: [", "failed to parse job file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - source: a.mp4\n"), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a.mp4", f.Items[0].Source)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read job file")
}
