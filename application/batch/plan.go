package batch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"audio-converter/domain/audio"

	"github.com/google/uuid"
)

// Trim applied to entries without explicit markers when Defaults.DefaultTrim is set
const (
	DefaultStart    = "00:00:00"
	DefaultDuration = "00:03:00"
)

var (
	// ErrMissingTags is returned when an entry has no title or artist
	ErrMissingTags = errors.New("title and artist are required")

	// ErrDuplicateOutput is returned when two entries would write the same file
	ErrDuplicateOutput = errors.New("output path used by more than one item")
)

// Entry is one requested conversion before defaults are applied
type Entry struct {
	Source string
	Title  string
	Artist string
	Start  string
	End    string // duration from Start
	Format string
	Output string
}

// Defaults fill in whatever an Entry leaves empty
type Defaults struct {
	OutputDir   string
	Audio       audio.AudioEncodingConfig
	DefaultTrim bool
}

// Plan turns entries into pending items. Every entry is checked before any
// item is returned, so a bad entry rejects the whole batch.
func Plan(entries []Entry, defaults Defaults) ([]*Item, error) {
	items := make([]*Item, 0, len(entries))
	seen := make(map[string]int, len(entries))

	for i, e := range entries {
		req := buildRequest(e, defaults)

		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Artist) == "" {
			return nil, fmt.Errorf("item %d (%s): %w", i+1, filepath.Base(e.Source), ErrMissingTags)
		}

		out := filepath.Clean(req.EffectiveOutputPath())
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("items %d and %d: %w: %s", prev, i+1, ErrDuplicateOutput, out)
		}
		seen[out] = i + 1

		items = append(items, &Item{
			ID:      uuid.NewString(),
			Request: req,
			Status:  StatusPending,
		})
	}

	return items, nil
}

func buildRequest(e Entry, d Defaults) audio.ConversionRequest {
	title := e.Title
	if title == "" {
		title = stem(e.Source)
	}

	enc := d.Audio
	if e.Format != "" {
		enc.Format = strings.ToLower(e.Format)
	}

	if e.Output == "" {
		e.Output = OutputPathFor(e.Source, title, enc.Format, d.OutputDir)
	}

	req := audio.ConversionRequest{
		SourcePath:     e.Source,
		OutputFilename: FallbackFilename(e.Source),
		OutputPath:     e.Output,
		Title:          title,
		Artist:         e.Artist,
		StartTime:      e.Start,
		EndTime:        e.End,
		Audio:          enc,
	}

	if d.DefaultTrim {
		if req.StartTime == "" {
			req.StartTime = DefaultStart
		}
		if req.EndTime == "" {
			req.EndTime = DefaultDuration
		}
	}

	return req
}

// OutputPathFor names the output of a conversion with no explicit target:
// <dir>/<title>.<format> when dir is set, else the source path with its
// extension swapped. Path separators in the title are replaced so the file
// always lands directly in dir.
func OutputPathFor(source, title, format, dir string) string {
	if title == "" {
		title = stem(source)
	}
	if dir != "" {
		return filepath.Join(dir, safeName(title)+"."+format)
	}
	return replaceExt(source, format)
}

// FallbackFilename is the OutputFilename used when no output path is set
func FallbackFilename(source string) string {
	return replaceExt(source, audio.FormatMP3)
}

var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

func safeName(title string) string {
	return separatorReplacer.Replace(title)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
