package prompt

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"audio-converter/domain/audio"
	"audio-converter/domain/dialog"
)

// Dialogs implements the dialog ports on top of terminal prompts.
// An empty answer or an interrupt counts as the user cancelling.
type Dialogs struct {
	prompter    Prompter
	fileChecker audio.FileChecker
	out         io.Writer
}

// NewDialogs creates terminal-backed pickers and notifier
func NewDialogs(prompter Prompter, fileChecker audio.FileChecker, out io.Writer) *Dialogs {
	return &Dialogs{
		prompter:    prompter,
		fileChecker: fileChecker,
		out:         out,
	}
}

// PickFile asks for an existing file, re-asking until one is found or the user gives up
func (d *Dialogs) PickFile(filters ...dialog.Filter) (string, bool, error) {
	message := "Source file" + describeFilters(filters) + ":"
	for {
		path, ok, err := d.askPath(message)
		if !ok || err != nil {
			return "", ok, err
		}
		if d.fileChecker.Exists(path) {
			return path, true, nil
		}
		fmt.Fprintf(d.out, "File not found: %s\n", path)
	}
}

// PickFolder asks for an existing directory
func (d *Dialogs) PickFolder() (string, bool, error) {
	for {
		path, ok, err := d.askPath("Output folder:")
		if !ok || err != nil {
			return "", ok, err
		}
		if d.fileChecker.Exists(path) {
			return path, true, nil
		}
		fmt.Fprintf(d.out, "Folder not found: %s\n", path)
	}
}

// PickSavePath asks for a destination path; the file need not exist yet
func (d *Dialogs) PickSavePath(filters ...dialog.Filter) (string, bool, error) {
	return d.askPath("Save as" + describeFilters(filters) + ":")
}

// Notify prints the message and waits for the user to acknowledge it
func (d *Dialogs) Notify(message, title string, severity dialog.Severity) (bool, error) {
	fmt.Fprintf(d.out, "[%s] %s\n%s\n", strings.ToUpper(string(severity)), title, message)
	ok, err := d.prompter.Confirm("OK", true)
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	return ok, err
}

func (d *Dialogs) askPath(message string) (string, bool, error) {
	answer, err := d.prompter.InputPath(message)
	if errors.Is(err, ErrCancelled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false, nil
	}

	abs, err := filepath.Abs(answer)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve path %q: %w", answer, err)
	}
	return abs, true, nil
}

func describeFilters(filters []dialog.Filter) string {
	if len(filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Name, strings.Join(f.Extensions, ", ")))
	}
	return " (" + strings.Join(parts, "; ") + ")"
}

// Ensure Dialogs implements every dialog port
var (
	_ dialog.FilePicker   = (*Dialogs)(nil)
	_ dialog.FolderPicker = (*Dialogs)(nil)
	_ dialog.SavePicker   = (*Dialogs)(nil)
	_ dialog.Notifier     = (*Dialogs)(nil)
)
