package prompt

import (
	"bytes"
	"errors"
	"testing"

	"audio-converter/domain/dialog"
)

// mockPrompter returns queued answers in order
type mockPrompter struct {
	inputs   []string
	confirms []bool
	err      error
	messages []string
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	return m.InputPath(message)
}

func (m *mockPrompter) InputPath(message string) (string, error) {
	m.messages = append(m.messages, message)
	if m.err != nil {
		return "", m.err
	}
	if len(m.inputs) == 0 {
		return "", nil
	}
	answer := m.inputs[0]
	m.inputs = m.inputs[1:]
	return answer, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.messages = append(m.messages, message)
	if m.err != nil {
		return false, m.err
	}
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	answer := m.confirms[0]
	m.confirms = m.confirms[1:]
	return answer, nil
}

// mockFileChecker simulates file existence
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

func TestDialogs_PickFile(t *testing.T) {
	t.Run("re-asks until the file exists", func(t *testing.T) {
		p := &mockPrompter{inputs: []string{"/videos/missing.mp4", "/videos/clip.mp4"}}
		var out bytes.Buffer
		d := NewDialogs(p, &mockFileChecker{existingFiles: map[string]bool{"/videos/clip.mp4": true}}, &out)

		path, ok, err := d.PickFile(dialog.VideoFilter)
		if err != nil || !ok {
			t.Fatalf("PickFile() = (%q, %v, %v)", path, ok, err)
		}
		if path != "/videos/clip.mp4" {
			t.Errorf("PickFile() path = %q", path)
		}
		if !bytes.Contains(out.Bytes(), []byte("File not found: /videos/missing.mp4")) {
			t.Errorf("expected not-found notice, got %q", out.String())
		}
		if want := "Source file (Video: mp4, mkv, avi, mov):"; p.messages[0] != want {
			t.Errorf("prompt message = %q, want %q", p.messages[0], want)
		}
	})

	t.Run("empty answer cancels", func(t *testing.T) {
		d := NewDialogs(&mockPrompter{}, &mockFileChecker{}, &bytes.Buffer{})
		_, ok, err := d.PickFile()
		if ok || err != nil {
			t.Errorf("PickFile() ok = %v, err = %v; want cancelled", ok, err)
		}
	})

	t.Run("interrupt cancels", func(t *testing.T) {
		d := NewDialogs(&mockPrompter{err: ErrCancelled}, &mockFileChecker{}, &bytes.Buffer{})
		_, ok, err := d.PickFile()
		if ok || err != nil {
			t.Errorf("PickFile() ok = %v, err = %v; want cancelled", ok, err)
		}
	})

	t.Run("other errors propagate", func(t *testing.T) {
		boom := errors.New("no tty")
		d := NewDialogs(&mockPrompter{err: boom}, &mockFileChecker{}, &bytes.Buffer{})
		if _, _, err := d.PickFile(); !errors.Is(err, boom) {
			t.Errorf("PickFile() err = %v, want %v", err, boom)
		}
	})
}

func TestDialogs_PickFolder(t *testing.T) {
	d := NewDialogs(&mockPrompter{inputs: []string{"/music"}}, &mockFileChecker{existingFiles: map[string]bool{"/music": true}}, &bytes.Buffer{})
	path, ok, err := d.PickFolder()
	if err != nil || !ok || path != "/music" {
		t.Errorf("PickFolder() = (%q, %v, %v)", path, ok, err)
	}
}

func TestDialogs_PickSavePath(t *testing.T) {
	d := NewDialogs(&mockPrompter{inputs: []string{"  /music/new.mp3  "}}, &mockFileChecker{}, &bytes.Buffer{})
	path, ok, err := d.PickSavePath(dialog.AudioFilter)
	if err != nil || !ok || path != "/music/new.mp3" {
		t.Errorf("PickSavePath() = (%q, %v, %v)", path, ok, err)
	}
}

func TestDialogs_Notify(t *testing.T) {
	var out bytes.Buffer
	d := NewDialogs(&mockPrompter{confirms: []bool{true}}, &mockFileChecker{}, &out)

	ok, err := d.Notify("ffmpeg exited with status 1", "Conversion failed", dialog.SeverityError)
	if err != nil || !ok {
		t.Fatalf("Notify() = (%v, %v)", ok, err)
	}
	want := "[ERROR] Conversion failed\nffmpeg exited with status 1\n"
	if out.String() != want {
		t.Errorf("Notify() output = %q, want %q", out.String(), want)
	}

	d = NewDialogs(&mockPrompter{err: ErrCancelled}, &mockFileChecker{}, &bytes.Buffer{})
	ok, err = d.Notify("msg", "title", dialog.SeverityInfo)
	if ok || err != nil {
		t.Errorf("Notify() interrupted = (%v, %v), want (false, nil)", ok, err)
	}
}
