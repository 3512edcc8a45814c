package config

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func newTestManager(t *testing.T) (*ConfigManager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	if err := Save(cfg, path); err != nil {
		t.Fatalf("failed to save initial config: %v", err)
	}
	return NewConfigManager(cfg, path), path
}

func TestConfigManager_AddPreset(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		preset      PresetConfig
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid preset",
			key:    "Podcast",
			preset: PresetConfig{Format: "MP3", Bitrate: "96k", Channels: 1},
		},
		{
			name:        "empty name",
			key:         "  ",
			preset:      PresetConfig{Format: "mp3"},
			wantErr:     true,
			errContains: "preset name is required",
		},
		{
			name:        "name with space",
			key:         "hi fi",
			preset:      PresetConfig{Format: "flac"},
			wantErr:     true,
			errContains: "must not contain whitespace",
		},
		{
			name:        "missing format",
			key:         "empty",
			preset:      PresetConfig{Bitrate: "128k"},
			wantErr:     true,
			errContains: "preset format is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, _ := newTestManager(t)
			err := mgr.AddPreset(tt.key, tt.preset)

			if tt.wantErr {
				if err == nil {
					t.Fatal("AddPreset() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("AddPreset() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddPreset() unexpected error: %v", err)
			}
		})
	}
}

func TestConfigManager_PresetLifecycle(t *testing.T) {
	mgr, path := newTestManager(t)

	if err := mgr.AddPreset("Podcast", PresetConfig{Format: "MP3", Bitrate: "96k"}); err != nil {
		t.Fatalf("AddPreset() unexpected error: %v", err)
	}

	if err := mgr.AddPreset("podcast", PresetConfig{Format: "aac"}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("AddPreset() duplicate error = %v, want ErrDuplicateKey", err)
	}

	got, err := mgr.GetPreset("PODCAST")
	if err != nil {
		t.Fatalf("GetPreset() unexpected error: %v", err)
	}
	if got.Format != "mp3" || got.Bitrate != "96k" {
		t.Errorf("GetPreset() = %+v", got)
	}

	if err := mgr.UpdatePreset("podcast", PresetConfig{Channels: 1}); err != nil {
		t.Fatalf("UpdatePreset() unexpected error: %v", err)
	}

	// persisted to disk
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if p := loaded.Presets["podcast"]; p.Channels != 1 || p.Bitrate != "96k" {
		t.Errorf("persisted preset = %+v", p)
	}

	if err := mgr.AddPreset("hq", PresetConfig{Format: "flac"}); err != nil {
		t.Fatalf("AddPreset() unexpected error: %v", err)
	}
	presets := mgr.ListPresets()
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	if len(presets) != 2 || presets[0].Name != "hq" || presets[1].Name != "podcast" {
		t.Errorf("ListPresets() = %+v", presets)
	}

	if err := mgr.RemovePreset("hq"); err != nil {
		t.Fatalf("RemovePreset() unexpected error: %v", err)
	}
	if _, err := mgr.GetPreset("hq"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("GetPreset() after remove error = %v, want ErrPresetNotFound", err)
	}
}

func TestConfigManager_NotFound(t *testing.T) {
	mgr, _ := newTestManager(t)

	if err := mgr.RemovePreset("ghost"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("RemovePreset() error = %v, want ErrPresetNotFound", err)
	}
	if err := mgr.UpdatePreset("ghost", PresetConfig{Format: "mp3"}); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("UpdatePreset() error = %v, want ErrPresetNotFound", err)
	}
}
