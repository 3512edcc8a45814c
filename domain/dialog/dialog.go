package dialog

import "strings"

// Severity is the kind of a modal notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity maps a severity tag, defaulting to info for anything unrecognised
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return SeverityWarning
	case "error":
		return SeverityError
	default:
		return SeverityInfo
	}
}

// Filter is a named group of file extensions shown by a picker.
// Filters are presentation only and are not enforced.
type Filter struct {
	Name       string
	Extensions []string
}

// Common filters for source and output selection
var (
	VideoFilter = Filter{Name: "Video", Extensions: []string{"mp4", "mkv", "avi", "mov"}}
	AudioFilter = Filter{Name: "Audio", Extensions: []string{"mp3", "wav", "flac"}}
)

// FilePicker selects a single existing file.
// The bool is false when the user cancels.
type FilePicker interface {
	PickFile(filters ...Filter) (string, bool, error)
}

// FolderPicker selects an output directory
type FolderPicker interface {
	PickFolder() (string, bool, error)
}

// SavePicker selects a destination path for a new file
type SavePicker interface {
	PickSavePath(filters ...Filter) (string, bool, error)
}

// Notifier shows a blocking message and reports whether it was acknowledged
type Notifier interface {
	Notify(message, title string, severity Severity) (bool, error)
}
