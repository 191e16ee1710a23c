// Package settings manages the game settings file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Settings is the persisted game configuration.
type Settings struct {
	MasterVolume     int    `json:"master_volume"`
	SoundEffects     int    `json:"sound_effects"`
	MusicVolume      int    `json:"music_volume"`
	Luminosity       int    `json:"luminosity"`
	TextSize         string `json:"text_size"`
	HintsEnabled     bool   `json:"hints_enabled"`
	Difficulty       string `json:"difficulty"`
	TextSpeed        string `json:"text_speed"`
	AutoScroll       bool   `json:"auto_scroll"`
	ShowCommandHints bool   `json:"show_command_hints"`
	EducationalMode  bool   `json:"educational_mode"`
}

// Defaults returns the out-of-the-box configuration.
func Defaults() Settings {
	return Settings{
		MasterVolume:     70,
		SoundEffects:     85,
		MusicVolume:      60,
		Luminosity:       80,
		TextSize:         "medium",
		HintsEnabled:     true,
		Difficulty:       "normal",
		TextSpeed:        "normal",
		AutoScroll:       true,
		ShowCommandHints: true,
		EducationalMode:  true,
	}
}

// HintCooldown returns the delay between hints for the difficulty.
func (s Settings) HintCooldown() time.Duration {
	switch s.Difficulty {
	case "easy":
		return 10 * time.Second
	case "hard":
		return 60 * time.Second
	default:
		return 30 * time.Second
	}
}

// MaxHints returns the hint budget per mission for the difficulty.
func (s Settings) MaxHints() int {
	switch s.Difficulty {
	case "easy":
		return 999
	case "hard":
		return 3
	default:
		return 5
	}
}

// TypingDelay returns the per-character delay for narrative text.
func (s Settings) TypingDelay() time.Duration {
	switch s.TextSpeed {
	case "slow":
		return 50 * time.Millisecond
	case "fast":
		return 0
	default:
		return 20 * time.Millisecond
	}
}

// DefaultPath resolves the settings file location, honoring
// CYBERHERO_DATA_DIR like the profile store does.
func DefaultPath() string {
	if dir := os.Getenv("CYBERHERO_DATA_DIR"); dir != "" {
		return filepath.Join(dir, "settings.json")
	}
	return filepath.Join(xdg.ConfigHome, "cyberhero", "settings.json")
}

// Load reads the settings file, merging its content over the defaults.
// A missing or unreadable file falls back to defaults; that is never fatal.
func Load(path string) Settings {
	s := Defaults()

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s
	}
	if err != nil {
		log.Warn("cannot read settings, using defaults", "path", path, "err", err)
		return s
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Warn("cannot parse settings, using defaults", "path", path, "err", err)
		return Defaults()
	}
	return s
}

// Save writes the settings file, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: cannot create config dir: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("settings: cannot write %s: %w", path, err)
	}
	return nil
}
