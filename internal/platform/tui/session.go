package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/mission"
)

func appOpenedEvent(id string) mission.Event {
	return mission.Event{Type: mission.EventAppOpened, Value: id}
}

// typeTickMsg advances the completion screen typewriter by one character.
type typeTickMsg struct{}

func typeTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return typeTickMsg{} })
}

type screen int

const (
	screenMenu screen = iota
	screenSettings
	screenDesktop
	screenTerminal
	screenSniffer
	screenPcap
	screenBrowser
	screenInbox
	screenComplete
)

// SessionModel manages the full game flow: title screen -> desktop -> apps.
// This is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	game         *Game
	settingsPath string
	width        int
	height       int

	screen   screen
	menu     MenuModel
	settings SettingsModel
	desktop  DesktopModel
	terminal TerminalModel
	sniffer  SnifferModel
	pcap     PcapModel
	browser  BrowserModel
	inbox    InboxModel

	completeShown int // runes of the completion screen revealed so far
	completeDone  bool

	quitting bool
}

// NewSessionModel creates a session starting at the title screen.
func NewSessionModel(game *Game, settingsPath string, width, height int) SessionModel {
	return SessionModel{
		game:         game,
		settingsPath: settingsPath,
		width:        width,
		height:       height,
		screen:       screenMenu,
		menu:         NewMenuModel(game, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}
	if _, ok := msg.(typeTickMsg); ok {
		return m.updateTypeTick()
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenSettings:
		return m.updateSettings(msg)
	case screenDesktop:
		return m.updateDesktop(msg)
	case screenComplete:
		return m.updateComplete(msg)
	default:
		return m.updateApp(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.menu.Update(msg)
	if menu, ok := model.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsSettings():
		m.settings = NewSettingsModel(m.game, m.settingsPath, m.width, m.height)
		m.screen = screenSettings
		m.menu = NewMenuModel(m.game, m.width, m.height)
		return m, m.settings.Init()
	case m.menu.Done():
		m.desktop = NewDesktopModel(m.game, m.width, m.height)
		m.screen = screenDesktop
		return m, m.desktop.Init()
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.settings.Update(msg)
	if s, ok := model.(SettingsModel); ok {
		m.settings = s
	}
	if m.settings.Closed() {
		if m.game.Profile != nil {
			m.screen = screenDesktop
			m.desktop = NewDesktopModel(m.game, m.width, m.height)
		} else {
			m.screen = screenMenu
			m.menu = NewMenuModel(m.game, m.width, m.height)
		}
	}
	return m, cmd
}

func (m SessionModel) updateDesktop(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "n" {
		m.desktop.DismissNotification()
		return m, nil
	}

	model, cmd := m.desktop.Update(msg)
	if d, ok := model.(DesktopModel); ok {
		m.desktop = d
	}

	if m.desktop.BackToMenu() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.game, m.width, m.height)
		return m, m.menu.Init()
	}

	if opened := m.desktop.Opened(); opened != "" {
		m.desktop.ClearOpened()
		return m.openApp(opened)
	}
	return m, cmd
}

func (m SessionModel) openApp(id AppID) (tea.Model, tea.Cmd) {
	switch id {
	case AppTerminal:
		m.terminal = NewTerminalModel(m.game, m.width, m.height)
		m.screen = screenTerminal
		return m, m.terminal.Init()
	case AppSniffer:
		m.sniffer = NewSnifferModel(m.game, m.width, m.height)
		m.screen = screenSniffer
		m.game.Dispatch(appOpenedEvent("wireshark"))
		return m, m.sniffer.Init()
	case AppPcap:
		m.pcap = NewPcapModel(m.game, m.width, m.height)
		m.screen = screenPcap
		m.game.Dispatch(appOpenedEvent("pcap_analyzer"))
		return m, m.pcap.Init()
	case AppBrowser:
		m.browser = NewBrowserModel(m.game, m.width, m.height)
		m.screen = screenBrowser
		return m, m.browser.Init()
	case AppInbox:
		m.inbox = NewInboxModel(m.game, m.width, m.height)
		m.screen = screenInbox
		return m, m.inbox.Init()
	case AppSettings:
		m.settings = NewSettingsModel(m.game, m.settingsPath, m.width, m.height)
		m.screen = screenSettings
		return m, m.settings.Init()
	}
	return m, nil
}

func (m SessionModel) updateApp(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var closed bool

	switch m.screen {
	case screenTerminal:
		model, c := m.terminal.Update(msg)
		if t, ok := model.(TerminalModel); ok {
			m.terminal = t
		}
		cmd, closed = c, m.terminal.Closed()
	case screenSniffer:
		model, c := m.sniffer.Update(msg)
		if s, ok := model.(SnifferModel); ok {
			m.sniffer = s
		}
		cmd, closed = c, m.sniffer.Closed()
	case screenPcap:
		model, c := m.pcap.Update(msg)
		if p, ok := model.(PcapModel); ok {
			m.pcap = p
		}
		cmd, closed = c, m.pcap.Closed()
	case screenBrowser:
		model, c := m.browser.Update(msg)
		if b, ok := model.(BrowserModel); ok {
			m.browser = b
		}
		cmd, closed = c, m.browser.Closed()
	case screenInbox:
		model, c := m.inbox.Update(msg)
		if i, ok := model.(InboxModel); ok {
			m.inbox = i
		}
		cmd, closed = c, m.inbox.Closed()
	}

	if m.game.LastCompleted != "" {
		m.screen = screenComplete
		m.completeShown = 0
		m.completeDone = m.game.Settings.TypingDelay() == 0
		if m.completeDone {
			return m, nil
		}
		return m, typeTick(m.game.Settings.TypingDelay())
	}
	if closed {
		m.screen = screenDesktop
		m.desktop = NewDesktopModel(m.game, m.width, m.height)
		return m, m.desktop.Init()
	}
	return m, cmd
}

func (m SessionModel) updateTypeTick() (tea.Model, tea.Cmd) {
	if m.screen != screenComplete || m.completeDone {
		return m, nil
	}
	m.completeShown++
	if m.completeShown >= len([]rune(m.completeBody())) {
		m.completeDone = true
		return m, nil
	}
	return m, typeTick(m.game.Settings.TypingDelay())
}

func (m SessionModel) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		if !m.completeDone {
			// First key skips the animation.
			m.completeDone = true
			return m, nil
		}
		m.game.LastCompleted = ""
		m.screen = screenDesktop
		m.desktop = NewDesktopModel(m.game, m.width, m.height)
		return m, m.desktop.Init()
	}
	return m, nil
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenMenu:
		return m.menu.View()
	case screenSettings:
		return m.settings.View()
	case screenDesktop:
		return m.desktop.View()
	case screenTerminal:
		return m.terminal.View()
	case screenSniffer:
		return m.sniffer.View()
	case screenPcap:
		return m.pcap.View()
	case screenBrowser:
		return m.browser.View()
	case screenInbox:
		return m.inbox.View()
	case screenComplete:
		return m.completeView()
	}
	return ""
}

func (m SessionModel) completeView() string {
	body := m.completeBody()
	if !m.completeDone {
		if r := []rune(body); m.completeShown < len(r) {
			return string(r[:m.completeShown])
		}
	}
	return body
}

func (m SessionModel) completeBody() string {
	tracker, ok := m.game.Missions[m.game.LastCompleted]
	if !ok {
		return ""
	}
	r := tracker.Rewards()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("MISSION ACCOMPLIE"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(tracker.Title(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("+%d XP", r.XP), m.width))
	b.WriteString("\n")
	if r.Credits > 0 {
		b.WriteString(centerText(fmt.Sprintf("+%d credits", r.Credits), m.width))
		b.WriteString("\n")
	}
	if r.Badge != "" {
		b.WriteString(centerText("Badge : "+r.Badge, m.width))
		b.WriteString("\n")
	}
	if r.Level != "" {
		b.WriteString(centerText("Reputation : "+r.Level, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render("Appuie sur une touche pour continuer"), m.width))
	return b.String()
}

// RunLocal starts the session in the local terminal.
func RunLocal(game *Game, settingsPath string, width, height int) error {
	model := NewSessionModel(game, settingsPath, width, height)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: session failed: %w", err)
	}
	return nil
}
