package tags

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Info holds the tags read back from an audio file
type Info struct {
	Title    string
	Artist   string
	Album    string
	Genre    string
	Year     int
	Comment  string
	Format   string
	FileType string
}

// Reader reads container tags from audio files
type Reader struct{}

// NewReader creates a new tag reader
func NewReader() *Reader {
	return &Reader{}
}

// Read opens path and parses its tags
func (r *Reader) Read(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	return &Info{
		Title:    metadata.Title(),
		Artist:   metadata.Artist(),
		Album:    metadata.Album(),
		Genre:    metadata.Genre(),
		Year:     metadata.Year(),
		Comment:  metadata.Comment(),
		Format:   string(metadata.Format()),
		FileType: string(metadata.FileType()),
	}, nil
}

// Mismatch compares written tags against the expected title and artist.
// It returns a description of each difference, or nil when both match.
func (i *Info) Mismatch(title, artist string) []string {
	var diffs []string
	if strings.TrimSpace(i.Title) != strings.TrimSpace(title) {
		diffs = append(diffs, fmt.Sprintf("title is %q, expected %q", i.Title, title))
	}
	if strings.TrimSpace(i.Artist) != strings.TrimSpace(artist) {
		diffs = append(diffs, fmt.Sprintf("artist is %q, expected %q", i.Artist, artist))
	}
	return diffs
}
