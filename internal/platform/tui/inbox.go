package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/content"
)

// InboxModel is the mail client: the professor's messages with a
// reading pane. Read flags persist on the profile.
type InboxModel struct {
	game   *Game
	width  int
	height int

	emails  []content.Email
	cursor  int
	reading bool
	pane    viewport.Model

	keyMapper *KeyMapper
	closed    bool
}

// NewInboxModel creates the inbox app.
func NewInboxModel(game *Game, width, height int) InboxModel {
	return InboxModel{
		game:      game,
		width:     width,
		height:    height,
		emails:    game.Emails(),
		pane:      viewport.New(width, max(4, height-4)),
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the inbox model.
func (m InboxModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the inbox.
func (m InboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pane.Width = msg.Width
		m.pane.Height = max(4, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m InboxModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.reading {
		switch action {
		case MenuActionBack, MenuActionQuit:
			m.reading = false
		case MenuActionUp:
			m.pane.ScrollUp(1)
		case MenuActionDown:
			m.pane.ScrollDown(1)
		}
		return m, nil
	}

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.closed = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.emails)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor < len(m.emails) {
			e := m.emails[m.cursor]
			m.game.Profile.MarkEmailRead(e.ID)
			m.pane.SetContent(renderEmail(e))
			m.pane.GotoTop()
			m.reading = true
		}
	}
	return m, nil
}

func renderEmail(e content.Email) string {
	var b strings.Builder
	fmt.Fprintf(&b, "De     : %s\n", e.Sender)
	fmt.Fprintf(&b, "Objet  : %s\n", e.Subject)
	for _, a := range e.Attachments {
		fmt.Fprintf(&b, "Piece jointe : %s\n", a)
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(e.Body, "\n"))
	return b.String()
}

// View renders the inbox.
func (m InboxModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Messagerie"))
	b.WriteString("\n\n")

	if m.reading {
		b.WriteString(m.pane.View())
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("Esc : retour a la liste"))
		return b.String()
	}

	if len(m.emails) == 0 {
		b.WriteString(subtleStyle.Render("Aucun message."))
		b.WriteString("\n")
	}
	for i, e := range m.emails {
		mark := "*"
		if m.game.Profile.HasReadEmail(e.ID) {
			mark = " "
		}
		line := fmt.Sprintf("  %s %-28s %s", mark, e.Subject, subtleStyle.Render(e.Sender))
		if i == m.cursor {
			line = selectedStyle.Render("> ") + strings.TrimPrefix(line, "  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Entree : lire  |  Esc : bureau"))
	return b.String()
}

// Closed reports whether the player left the inbox.
func (m InboxModel) Closed() bool { return m.closed }
