package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// AppID identifies a desktop application.
type AppID string

// Desktop applications.
const (
	AppTerminal AppID = "terminal"
	AppSniffer  AppID = "wireshark"
	AppPcap     AppID = "pcap_analyzer"
	AppBrowser  AppID = "browser"
	AppInbox    AppID = "inbox"
	AppSettings AppID = "settings"
)

type desktopIcon struct {
	id    AppID
	label string
	tool  string // market tool required to open, empty when built in
}

var desktopIcons = []desktopIcon{
	{id: AppTerminal, label: "Terminal"},
	{id: AppSniffer, label: "Net Scanner", tool: "wireshark"},
	{id: AppPcap, label: "Packet Lab", tool: "pcap_analyzer"},
	{id: AppBrowser, label: "Navigateur"},
	{id: AppInbox, label: "Messagerie"},
	{id: AppSettings, label: "Parametres"},
}

// DesktopModel is the simulated desktop: app icons, a notification banner
// and the mission objectives HUD.
type DesktopModel struct {
	game   *Game
	width  int
	height int

	cursor    int
	showHUD   bool
	banner    string
	keyMapper *KeyMapper

	opened   AppID // set when the player opens an app
	quitting bool
}

// NewDesktopModel creates the desktop.
func NewDesktopModel(game *Game, width, height int) DesktopModel {
	return DesktopModel{
		game:      game,
		width:     width,
		height:    height,
		showHUD:   true,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the desktop model.
func (m DesktopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the desktop.
func (m DesktopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m DesktopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "o":
		m.showHUD = !m.showHUD
		return m, nil
	case "?":
		m.banner = m.hintBanner()
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, nil
	case MenuActionUp, MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown, MenuActionRight:
		if m.cursor < len(desktopIcons)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		icon := desktopIcons[m.cursor]
		if icon.tool != "" && !m.game.Profile.HasTool(icon.tool) {
			m.banner = fmt.Sprintf("%s n'est pas installe. Le marche du forum le propose.", icon.label)
			return m, nil
		}
		m.opened = icon.id
	}
	return m, nil
}

// hintBanner spends one hint on the first incomplete objective.
func (m DesktopModel) hintBanner() string {
	cur := m.game.CurrentMission()
	if cur == nil {
		return "Aucune mission en cours."
	}
	for _, o := range cur.Objectives() {
		if o.Completed {
			continue
		}
		if !m.game.UseHint(cur.ID()) {
			return "Plus d'indices disponibles pour cette mission."
		}
		return "Indice : " + cur.Hint(o.ID)
	}
	return "Tous les objectifs sont remplis. Soumets le rapport !"
}

// View renders the desktop.
func (m DesktopModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf(" %s  |  %s  |  %d XP  |  %d credits ",
		m.game.Profile.Nickname, m.game.Profile.Progress.Level,
		m.game.Profile.Progress.XP, m.game.Profile.Progress.Credits)
	b.WriteString(bannerStyle.Render(header))
	b.WriteString("\n\n")

	if n, ok := m.game.Notify.Peek(); ok {
		b.WriteString(warnStyle.Render(fmt.Sprintf(" [%s] %s : %s ", n.Kind, n.Title, n.Message)))
		b.WriteString("\n\n")
	} else if m.banner != "" {
		b.WriteString(warnStyle.Render(" " + m.banner + " "))
		b.WriteString("\n\n")
	}

	for i, icon := range desktopIcons {
		label := icon.label
		if icon.tool != "" && !m.game.Profile.HasTool(icon.tool) {
			label += " (verrouille)"
		}
		line := "   [ " + label + " ]"
		if i == m.cursor {
			line = selectedStyle.Render(" > [ " + label + " ]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.showHUD {
		b.WriteString("\n")
		b.WriteString(m.renderHUD())
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Fleches : naviguer  |  Entree : ouvrir  |  O : objectifs  |  ? : indice  |  Q : menu"))
	return b.String()
}

func (m DesktopModel) renderHUD() string {
	cur := m.game.CurrentMission()
	if cur == nil {
		return okStyle.Render("Toutes les missions sont terminees. Bravo !")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d%%)\n", titleStyle.Render(cur.Title()), cur.CompletionPercent())
	for _, o := range cur.Objectives() {
		mark := "[ ]"
		if o.Completed {
			mark = okStyle.Render("[x]")
		}
		line := fmt.Sprintf("  %s %s", mark, o.Title)
		if o.Target > 0 {
			line += fmt.Sprintf(" (%d/%d)", o.Progress, o.Target)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return paneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Opened returns the app the player opened, empty when none.
func (m DesktopModel) Opened() AppID { return m.opened }

// ClearOpened resets the opened marker after the session switched apps.
func (m *DesktopModel) ClearOpened() { m.opened = "" }

// DismissNotification pops the banner notification, if any.
func (m *DesktopModel) DismissNotification() {
	m.game.Notify.Pop()
	m.banner = ""
}

// BackToMenu reports whether the player left the desktop.
func (m DesktopModel) BackToMenu() bool { return m.quitting }
