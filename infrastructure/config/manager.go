package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors for config management
var (
	ErrPresetNotFound  = errors.New("preset not found")
	ErrDuplicateKey    = errors.New("key already exists")
	ErrInvalidPresetID = errors.New("preset name must not contain whitespace or path separators")
)

// ConfigManager provides CRUD operations for config entries
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Preset represents a named preset entry
type Preset struct {
	Name string
	PresetConfig
}

func normalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", fmt.Errorf("preset name is required")
	}
	if strings.ContainsAny(key, " \t/\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPresetID, key)
	}
	return key, nil
}

// AddPreset adds a new preset to config
func (m *ConfigManager) AddPreset(name string, preset PresetConfig) error {
	key, err := normalizeKey(name)
	if err != nil {
		return err
	}

	preset.Format = strings.ToLower(strings.TrimSpace(preset.Format))
	if preset.Format == "" {
		return fmt.Errorf("preset format is required")
	}

	if m.config.Presets == nil {
		m.config.Presets = make(map[string]PresetConfig)
	}

	if _, exists := m.config.Presets[key]; exists {
		return fmt.Errorf("%w: preset %q", ErrDuplicateKey, key)
	}

	m.config.Presets[key] = preset
	return m.save()
}

// ListPresets returns all presets
func (m *ConfigManager) ListPresets() []Preset {
	result := make([]Preset, 0, len(m.config.Presets))
	for key, pc := range m.config.Presets {
		result = append(result, Preset{Name: key, PresetConfig: pc})
	}
	return result
}

// GetPreset gets a preset by name (case-insensitive)
func (m *ConfigManager) GetPreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if pc, exists := m.config.Presets[key]; exists {
		return Preset{Name: key, PresetConfig: pc}, nil
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, key)
}

// RemovePreset removes a preset by name
func (m *ConfigManager) RemovePreset(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, exists := m.config.Presets[key]; !exists {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, key)
	}

	delete(m.config.Presets, key)
	return m.save()
}

// UpdatePreset overwrites the non-empty fields of an existing preset
func (m *ConfigManager) UpdatePreset(name string, changes PresetConfig) error {
	key := strings.ToLower(strings.TrimSpace(name))
	current, exists := m.config.Presets[key]
	if !exists {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, key)
	}

	if f := strings.ToLower(strings.TrimSpace(changes.Format)); f != "" {
		current.Format = f
	}
	if changes.Bitrate != "" {
		current.Bitrate = changes.Bitrate
	}
	if changes.SampleRate != "" {
		current.SampleRate = changes.SampleRate
	}
	if changes.Channels != 0 {
		current.Channels = changes.Channels
	}

	m.config.Presets[key] = current
	return m.save()
}

func (m *ConfigManager) save() error {
	if err := m.config.Validate(); err != nil {
		return err
	}
	return Save(m.config, m.configPath)
}

// SuggestAddPresetCommand returns the command that would create a missing preset
func SuggestAddPresetCommand(name string) string {
	return fmt.Sprintf("audio-converter preset add %s --format mp3 --bitrate 320k", name)
}
