package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// overridable in tests
var timeNow = func() time.Time { return time.Now().UTC() }

// EnvDataDir overrides the profile directory when set.
const EnvDataDir = "CYBERHERO_DATA_DIR"

// ErrNotFound is returned when no profile exists for a nickname.
var ErrNotFound = errors.New("profile: not found")

// Manager loads and saves profiles in a single directory.
type Manager struct {
	dir string
}

// NewManager resolves the profile directory: CYBERHERO_DATA_DIR when set,
// the XDG data home otherwise.
func NewManager() (*Manager, error) {
	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, "cyberhero", "profiles")
	}
	return NewManagerAt(dir)
}

// NewManagerAt uses an explicit directory, creating it if needed.
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("profile: cannot create data dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the resolved profile directory.
func (m *Manager) Dir() string { return m.dir }

func (m *Manager) path(nickname string) string {
	return filepath.Join(m.dir, SanitizeNickname(nickname)+"_profile.json")
}

// Save writes the profile, stamping saved_at.
func (m *Manager) Save(p *Profile) error {
	if SanitizeNickname(p.Nickname) == "" {
		return fmt.Errorf("profile: nickname %q sanitizes to nothing", p.Nickname)
	}
	p.SavedAt = timeNow()

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("profile: cannot encode %s: %w", p.Nickname, err)
	}
	if err := os.WriteFile(m.path(p.Nickname), raw, 0o644); err != nil {
		return fmt.Errorf("profile: cannot write %s: %w", p.Nickname, err)
	}
	return nil
}

// Load reads the profile for a nickname.
func (m *Manager) Load(nickname string) (*Profile, error) {
	raw, err := os.ReadFile(m.path(nickname))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("profile: cannot read %s: %w", nickname, err)
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("profile: cannot parse %s: %w", nickname, err)
	}
	return &p, nil
}

// Exists reports whether a profile is saved for the nickname.
func (m *Manager) Exists(nickname string) bool {
	_, err := os.Stat(m.path(nickname))
	return err == nil
}

// Delete removes a saved profile.
func (m *Manager) Delete(nickname string) error {
	err := os.Remove(m.path(nickname))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("profile: cannot delete %s: %w", nickname, err)
	}
	return nil
}

// List returns every readable profile, most recently saved first.
// Unreadable files are skipped with a warning.
func (m *Manager) List() ([]*Profile, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("profile: cannot list data dir: %w", err)
	}

	var profiles []*Profile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_profile.json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			log.Warn("skipping unreadable profile", "file", entry.Name(), "err", err)
			continue
		}
		var p Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			log.Warn("skipping corrupt profile", "file", entry.Name(), "err", err)
			continue
		}
		profiles = append(profiles, &p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].SavedAt.After(profiles[j].SavedAt)
	})
	return profiles, nil
}
