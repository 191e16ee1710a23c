package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/cyberhero-game/cyberhero/internal/settings"
)

type settingRow struct {
	label string
	get   func(s settings.Settings) string
	step  func(s settings.Settings, delta int) settings.Settings
}

func volumeRow(label string, get func(*settings.Settings) *int) settingRow {
	return settingRow{
		label: label,
		get: func(s settings.Settings) string {
			return fmt.Sprintf("%d%%", *get(&s))
		},
		step: func(s settings.Settings, delta int) settings.Settings {
			v := get(&s)
			*v = clamp(*v+delta*5, 0, 100)
			return s
		},
	}
}

func cycleRow(label string, options []string, get func(*settings.Settings) *string) settingRow {
	return settingRow{
		label: label,
		get: func(s settings.Settings) string {
			return *get(&s)
		},
		step: func(s settings.Settings, delta int) settings.Settings {
			v := get(&s)
			idx := 0
			for i, o := range options {
				if o == *v {
					idx = i
					break
				}
			}
			*v = options[(idx+delta+len(options))%len(options)]
			return s
		},
	}
}

func boolRow(label string, get func(*settings.Settings) *bool) settingRow {
	return settingRow{
		label: label,
		get: func(s settings.Settings) string {
			if *get(&s) {
				return "oui"
			}
			return "non"
		},
		step: func(s settings.Settings, delta int) settings.Settings {
			v := get(&s)
			*v = !*v
			return s
		},
	}
}

var settingRows = []settingRow{
	volumeRow("Volume general", func(s *settings.Settings) *int { return &s.MasterVolume }),
	volumeRow("Effets sonores", func(s *settings.Settings) *int { return &s.SoundEffects }),
	volumeRow("Musique", func(s *settings.Settings) *int { return &s.MusicVolume }),
	volumeRow("Luminosite", func(s *settings.Settings) *int { return &s.Luminosity }),
	cycleRow("Taille du texte", []string{"small", "medium", "large"}, func(s *settings.Settings) *string { return &s.TextSize }),
	cycleRow("Difficulte", []string{"easy", "normal", "hard"}, func(s *settings.Settings) *string { return &s.Difficulty }),
	cycleRow("Vitesse du texte", []string{"slow", "normal", "fast"}, func(s *settings.Settings) *string { return &s.TextSpeed }),
	boolRow("Indices", func(s *settings.Settings) *bool { return &s.HintsEnabled }),
	boolRow("Suggestions de commandes", func(s *settings.Settings) *bool { return &s.ShowCommandHints }),
	boolRow("Defilement automatique", func(s *settings.Settings) *bool { return &s.AutoScroll }),
	boolRow("Mode pedagogique", func(s *settings.Settings) *bool { return &s.EducationalMode }),
}

// SettingsModel edits the game settings and saves them on exit.
type SettingsModel struct {
	game   *Game
	path   string
	width  int
	height int

	cursor    int
	keyMapper *KeyMapper
	closed    bool
}

// NewSettingsModel creates the settings screen.
func NewSettingsModel(game *Game, path string, width, height int) SettingsModel {
	return SettingsModel{
		game:      game,
		path:      path,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			if err := settings.Save(m.path, m.game.Settings); err != nil {
				log.Warn("cannot save settings", "err", err)
			}
			if m.game.Exec != nil {
				m.game.Exec.Educational = m.game.Settings.EducationalMode
			}
			m.closed = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(settingRows)-1 {
				m.cursor++
			}
		case MenuActionLeft:
			m.game.Settings = settingRows[m.cursor].step(m.game.Settings, -1)
		case MenuActionRight, MenuActionSelect:
			m.game.Settings = settingRows[m.cursor].step(m.game.Settings, 1)
		}
	}
	return m, nil
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Parametres"))
	b.WriteString("\n\n")

	for i, row := range settingRows {
		line := fmt.Sprintf("  %-26s < %s >", row.label, row.get(m.game.Settings))
		if i == m.cursor {
			line = selectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Gauche/Droite : modifier  |  Esc : sauvegarder et revenir"))
	return b.String()
}

// Closed reports whether the player left the settings screen.
func (m SettingsModel) Closed() bool { return m.closed }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
