package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/profile"
)

var menuEntries = []string{"Nouvelle partie", "Charger une partie", "Parametres", "Quitter"}

// hackerTypes are the forum account flavors. Cosmetic, but the forum
// displays them and the save files carry them.
var hackerTypes = []struct {
	ID    string
	Label string
	Blurb string
}{
	{"white_hat", "White Hat", "Protege les systemes et previent leurs proprietaires."},
	{"grey_hat", "Grey Hat", "Explore d'abord, demande la permission ensuite."},
	{"black_hat", "Black Hat", "Aucune regle. Heureusement, ce n'est qu'un jeu."},
}

const avatarCount = 6

func hackerTypeLabel(id string) string {
	for _, t := range hackerTypes {
		if t.ID == id {
			return t.Label
		}
	}
	return "-"
}

// MenuModel is the Bubble Tea model for the title screen: main entries,
// the forum registration steps and the saved-profile picker.
type MenuModel struct {
	game   *Game
	width  int
	height int

	mode         string // "main", "nickname", "identity", "persona", "load"
	cursor       int
	nickname     textinput.Model
	hackerCursor int
	avatarID     int
	bio          textinput.Model
	saved        []*profile.Profile
	errorText    string

	keyMapper *KeyMapper
	quitting  bool
	done      bool // a profile is attached, move to the desktop
	settings  bool // open the settings screen
}

// NewMenuModel creates the title screen model.
func NewMenuModel(game *Game, width, height int) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "pseudo"
	ti.CharLimit = 24
	ti.Width = 24

	bio := textinput.New()
	bio.Placeholder = "bio (optionnel)"
	bio.CharLimit = 200
	bio.Width = 40

	return MenuModel{
		game:      game,
		width:     width,
		height:    height,
		mode:      "main",
		nickname:  ti,
		avatarID:  1,
		bio:       bio,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the title screen.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case "nickname":
		return m.handleNicknameKey(msg)
	case "persona":
		return m.handlePersonaKey(msg)
	}

	action := m.keyMapper.MapKeyToMenuAction(msg)
	switch m.mode {
	case "main":
		return m.handleMainKey(action)
	case "identity":
		return m.handleIdentityKey(action)
	case "load":
		return m.handleLoadKey(action)
	}
	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.mode = "nickname"
			m.errorText = ""
			m.nickname.Focus()
			return m, textinput.Blink
		case 1:
			saved, err := m.game.Profiles.List()
			if err != nil {
				m.errorText = err.Error()
				return m, nil
			}
			if len(saved) == 0 {
				m.errorText = "Aucune partie sauvegardee."
				return m, nil
			}
			m.saved = saved
			m.cursor = 0
			m.mode = "load"
		case 2:
			m.settings = true
			return m, nil
		case 3:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) handleNicknameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.mode = "main"
		m.errorText = ""
		return m, nil
	case "enter":
		nick := strings.TrimSpace(m.nickname.Value())
		if profile.SanitizeNickname(nick) == "" {
			m.errorText = "Pseudo invalide : lettres, chiffres, '-' et '_' uniquement."
			return m, nil
		}
		if m.game.Profiles.Exists(nick) {
			m.errorText = "Ce pseudo existe deja. Charge la partie ou choisis-en un autre."
			return m, nil
		}
		m.mode = "identity"
		m.errorText = ""
		m.hackerCursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.nickname, cmd = m.nickname.Update(msg)
	return m, cmd
}

func (m MenuModel) handleIdentityKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.mode = "nickname"
		m.nickname.Focus()
		return m, textinput.Blink
	case MenuActionUp:
		if m.hackerCursor > 0 {
			m.hackerCursor--
		}
	case MenuActionDown:
		if m.hackerCursor < len(hackerTypes)-1 {
			m.hackerCursor++
		}
	case MenuActionSelect:
		m.mode = "persona"
		m.bio.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// handlePersonaKey runs the last registration step: up/down cycles the
// avatar while the bio field keeps every printable key.
func (m MenuModel) handlePersonaKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.mode = "identity"
		return m, nil
	case "up":
		m.avatarID--
		if m.avatarID < 1 {
			m.avatarID = avatarCount
		}
		return m, nil
	case "down":
		m.avatarID++
		if m.avatarID > avatarCount {
			m.avatarID = 1
		}
		return m, nil
	case "enter":
		p := profile.New(strings.TrimSpace(m.nickname.Value()))
		p.HackerType = hackerTypes[m.hackerCursor].ID
		p.AvatarID = m.avatarID
		p.Bio = strings.TrimSpace(m.bio.Value())
		if err := m.game.Profiles.Save(p); err != nil {
			m.errorText = err.Error()
			return m, nil
		}
		if err := m.game.AttachProfile(p); err != nil {
			m.errorText = err.Error()
			return m, nil
		}
		m.done = true
		return m, nil
	}

	var cmd tea.Cmd
	m.bio, cmd = m.bio.Update(msg)
	return m, cmd
}

func (m MenuModel) handleLoadKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.mode = "main"
		m.cursor = 1
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.saved)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if err := m.game.AttachProfile(m.saved[m.cursor]); err != nil {
			m.errorText = err.Error()
			return m, nil
		}
		m.done = true
	}
	return m, nil
}

// View renders the title screen.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("C Y B E R H E R O"), m.width))
	b.WriteString("\n\n")

	switch m.mode {
	case "main":
		b.WriteString(centerText(subtleStyle.Render("L'ecole du paquet"), m.width))
		b.WriteString("\n\n")
		for i, entry := range menuEntries {
			line := "  " + entry
			if i == m.cursor {
				line = selectedStyle.Render("> " + entry)
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	case "nickname":
		b.WriteString(centerText("Choisis ton pseudo :", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.nickname.View(), m.width))
		b.WriteString("\n")
	case "identity":
		b.WriteString(centerText("Quel genre de hacker es-tu ?", m.width))
		b.WriteString("\n\n")
		for i, t := range hackerTypes {
			line := fmt.Sprintf("  %-10s %s", t.Label, t.Blurb)
			if i == m.hackerCursor {
				line = selectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	case "persona":
		b.WriteString(centerText("Complete ton profil de forum :", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(fmt.Sprintf("Avatar : < hacker_%d > (haut/bas pour changer)", m.avatarID), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.bio.View(), m.width))
		b.WriteString("\n")
	case "load":
		b.WriteString(centerText("Parties sauvegardees :", m.width))
		b.WriteString("\n\n")
		for i, p := range m.saved {
			line := fmt.Sprintf("  %-16s %-9s %s, %d XP", p.Nickname, hackerTypeLabel(p.HackerType), p.Progress.Level, p.Progress.XP)
			if i == m.cursor {
				line = selectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	}

	if m.errorText != "" {
		b.WriteString("\n")
		b.WriteString(centerText(errStyle.Render(m.errorText), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Fleches : naviguer  |  Entree : valider  |  Esc : retour  |  Q : quitter"
	b.WriteString(centerText(subtleStyle.Render(controls), m.width))
	return b.String()
}

// Done reports whether a profile was attached.
func (m MenuModel) Done() bool { return m.done }

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// WantsSettings reports whether the settings entry was chosen.
func (m MenuModel) WantsSettings() bool { return m.settings }

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
