// Package jobfile reads batch conversion job files.
//
// A job file is YAML:
//
//	artist: Default Artist     # applied to items without an artist
//	format: mp3                # applied to items without a format
//	items:
//	  - source: /videos/a.mp4
//	    title: Opening
//	    start: "00:00:05"
//	    end: "00:03:00"        # duration from start, not an end timestamp
//	  - source: /videos/b.mkv
//	    output: /music/b.flac
//	    format: flac
package jobfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrNoItems is returned when a job file lists nothing to convert
var ErrNoItems = errors.New("job file contains no items")

// File is a parsed job file
type File struct {
	Artist string `yaml:"artist"`
	Format string `yaml:"format"`
	Items  []Item `yaml:"items" validate:"dive"`
}

// Item is one source to convert
type Item struct {
	Source string `yaml:"source" validate:"required"`
	Title  string `yaml:"title"`
	Artist string `yaml:"artist"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

var validate = validator.New()

// Load reads and validates a job file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Parse(data)
}

// Parse decodes job file contents and applies file-level defaults to items
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	if len(f.Items) == 0 {
		return nil, ErrNoItems
	}

	if err := validate.Struct(&f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid job file: %s is %s", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid job file: %w", err)
	}

	for i := range f.Items {
		if f.Items[i].Artist == "" {
			f.Items[i].Artist = f.Artist
		}
		if f.Items[i].Format == "" {
			f.Items[i].Format = f.Format
		}
	}

	return &f, nil
}
