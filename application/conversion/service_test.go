package conversion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"audio-converter/domain/audio"
)

// --- Mock implementations for testing ---

// mockFileChecker implements audio.FileChecker for testing
type mockFileChecker struct {
	existingFiles map[string]bool
	checked       []string
}

func (m *mockFileChecker) Exists(path string) bool {
	m.checked = append(m.checked, path)
	return m.existingFiles[path]
}

// mockTranscoder implements audio.Transcoder for testing
type mockTranscoder struct {
	calls []audio.ConversionRequest
	err   error
}

func (m *mockTranscoder) Transcode(ctx context.Context, req audio.ConversionRequest) error {
	m.calls = append(m.calls, req)
	return m.err
}

const toolPath = "/usr/local/bin/ffmpeg"

func validRequest() audio.ConversionRequest {
	return audio.ConversionRequest{
		SourcePath:     "/videos/show.mov",
		OutputFilename: "/videos/show.mp3",
		OutputPath:     "/music/show.mp3",
		Title:          "Show",
		Artist:         "Host",
		Audio:          audio.AudioEncodingConfig{Format: "mp3", Bitrate: "192k", SampleRate: "44100", Channels: 2},
	}
}

func allPresent() *mockFileChecker {
	return &mockFileChecker{existingFiles: map[string]bool{
		"/videos/show.mov": true,
		"/music":           true,
		toolPath:           true,
	}}
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		missing []string
		modify  func(r *audio.ConversionRequest)
		wantErr error
	}{
		{
			name:    "all preconditions met",
			wantErr: nil,
		},
		{
			name:    "missing source",
			missing: []string{"/videos/show.mov"},
			wantErr: audio.ErrSourceNotFound,
		},
		{
			name:    "missing output directory",
			missing: []string{"/music"},
			wantErr: audio.ErrOutputDirMissing,
		},
		{
			name:    "missing tool",
			missing: []string{toolPath},
			wantErr: audio.ErrToolNotFound,
		},
		{
			name:    "source checked before output directory and tool",
			missing: []string{"/videos/show.mov", "/music", toolPath},
			wantErr: audio.ErrSourceNotFound,
		},
		{
			name:    "output directory checked before tool",
			missing: []string{"/music", toolPath},
			wantErr: audio.ErrOutputDirMissing,
		},
		{
			name: "bare output filename skips directory check",
			modify: func(r *audio.ConversionRequest) {
				r.OutputPath = ""
				r.OutputFilename = "show.mp3"
			},
			missing: []string{"/music"},
			wantErr: nil,
		},
		{
			name: "fallback filename directory is checked",
			modify: func(r *audio.ConversionRequest) {
				r.OutputPath = ""
			},
			wantErr: audio.ErrOutputDirMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := allPresent()
			for _, p := range tt.missing {
				delete(checker.existingFiles, p)
			}
			req := validRequest()
			if tt.modify != nil {
				tt.modify(&req)
			}

			err := NewValidator(checker, toolPath).Validate(req)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ShortCircuits(t *testing.T) {
	checker := allPresent()
	delete(checker.existingFiles, "/videos/show.mov")

	_ = NewValidator(checker, toolPath).Validate(validRequest())

	if len(checker.checked) != 1 {
		t.Errorf("expected only the source to be checked, got %v", checker.checked)
	}
}

func TestValidator_ErrorMessages(t *testing.T) {
	checker := allPresent()
	delete(checker.existingFiles, "/music")

	err := NewValidator(checker, toolPath).Validate(validRequest())
	want := "output directory does not exist: /music"
	if err == nil || err.Error() != want {
		t.Errorf("Validate() error = %v, want %q", err, want)
	}
}

func TestService_Convert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		transcoder := &mockTranscoder{}
		svc := NewService(transcoder, allPresent(), toolPath, nil)

		outcome := svc.Convert(context.Background(), validRequest())

		if !outcome.Success {
			t.Fatalf("expected success, got %v", outcome.Err)
		}
		if outcome.OutputPath != "/music/show.mp3" {
			t.Errorf("OutputPath = %q, want %q", outcome.OutputPath, "/music/show.mp3")
		}
		if len(transcoder.calls) != 1 {
			t.Errorf("expected 1 transcode call, got %d", len(transcoder.calls))
		}
	})

	t.Run("missing source never reaches transcoder", func(t *testing.T) {
		transcoder := &mockTranscoder{}
		checker := allPresent()
		delete(checker.existingFiles, "/videos/show.mov")
		svc := NewService(transcoder, checker, toolPath, nil)

		outcome := svc.Convert(context.Background(), validRequest())

		if outcome.Success {
			t.Fatal("expected failure")
		}
		if !errors.Is(outcome.Err, audio.ErrSourceNotFound) {
			t.Errorf("expected ErrSourceNotFound, got %v", outcome.Err)
		}
		if len(transcoder.calls) != 0 {
			t.Error("transcoder should not be called")
		}
	})

	t.Run("missing output directory never reaches transcoder", func(t *testing.T) {
		transcoder := &mockTranscoder{}
		checker := allPresent()
		delete(checker.existingFiles, "/music")
		svc := NewService(transcoder, checker, toolPath, nil)

		outcome := svc.Convert(context.Background(), validRequest())

		if !errors.Is(outcome.Err, audio.ErrOutputDirMissing) {
			t.Errorf("expected ErrOutputDirMissing, got %v", outcome.Err)
		}
		if len(transcoder.calls) != 0 {
			t.Error("transcoder should not be called")
		}
	})

	t.Run("execution failure message is stderr", func(t *testing.T) {
		transcoder := &mockTranscoder{err: &audio.ExecutionError{Stderr: "Unknown encoder 'libmp3lame'", ExitCode: 1}}
		svc := NewService(transcoder, allPresent(), toolPath, nil)

		outcome := svc.Convert(context.Background(), validRequest())

		if outcome.Success {
			t.Fatal("expected failure")
		}
		if got := outcome.Message(); got != "Unknown encoder 'libmp3lame'" {
			t.Errorf("Message() = %q, want stderr verbatim", got)
		}
	})

	t.Run("launch failure", func(t *testing.T) {
		transcoder := &mockTranscoder{err: fmt.Errorf("%w: exec format error", audio.ErrToolLaunchFailed)}
		svc := NewService(transcoder, allPresent(), toolPath, nil)

		outcome := svc.Convert(context.Background(), validRequest())

		if !errors.Is(outcome.Err, audio.ErrToolLaunchFailed) {
			t.Errorf("expected ErrToolLaunchFailed, got %v", outcome.Err)
		}
	})

	t.Run("request passed through unchanged", func(t *testing.T) {
		transcoder := &mockTranscoder{}
		svc := NewService(transcoder, allPresent(), toolPath, nil)
		req := validRequest()
		req.StartTime = "00:00:10"
		req.EndTime = "00:01:00"
		req.Metadata = &audio.TrackMetadata{Title: "Show", Artist: "Host", Album: "Pilot"}

		svc.Convert(context.Background(), req)

		if got := transcoder.calls[0]; got.StartTime != "00:00:10" || got.EndTime != "00:01:00" || got.Metadata.Album != "Pilot" {
			t.Errorf("request modified before transcode: %+v", got)
		}
	})
}
