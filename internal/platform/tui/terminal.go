package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/mission"
	"github.com/cyberhero-game/cyberhero/internal/shell"
)

// TerminalModel is the in-game terminal emulator: a scrollback viewport
// over the command executor, with history navigation and the recon report.
type TerminalModel struct {
	game   *Game
	width  int
	height int

	scrollback viewport.Model
	prompt     textinput.Model
	lines      []string

	form       ReportForm
	formActive bool

	closed bool
}

// NewTerminalModel creates the terminal app.
func NewTerminalModel(game *Game, width, height int) TerminalModel {
	ti := textinput.New()
	ti.Prompt = "$ "
	ti.CharLimit = 120
	ti.Focus()

	vp := viewport.New(width, max(4, height-4))

	m := TerminalModel{
		game:       game,
		width:      width,
		height:     height,
		scrollback: vp,
		prompt:     ti,
		lines:      strings.Split(shell.Banner, "\n"),
	}
	m.refresh()
	return m
}

// Init initializes the terminal model.
func (m TerminalModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the terminal.
func (m TerminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.formActive {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollback.Width = msg.Width
		m.scrollback.Height = max(4, msg.Height-4)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m TerminalModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	if m.form.Passed() {
		m.game.SettleMission("mission1")
	}
	if m.form.Closed() || m.form.Passed() {
		m.formActive = false
		m.prompt.Focus()
	}
	return m, cmd
}

func (m TerminalModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closed = true
		return m, nil
	case "ctrl+r":
		return m.openReport(), nil
	case "up":
		if line, ok := m.game.Exec.State.History.Prev(); ok {
			m.prompt.SetValue(line)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "down":
		if line, ok := m.game.Exec.State.History.Next(); ok {
			m.prompt.SetValue(line)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "pgup":
		m.scrollback.HalfViewUp()
		return m, nil
	case "pgdown":
		m.scrollback.HalfViewDown()
		return m, nil
	case "enter":
		return m.run(m.prompt.Value()), nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m TerminalModel) run(line string) TerminalModel {
	m.prompt.SetValue("")
	line = strings.TrimSpace(line)
	if line == "" {
		return m
	}

	res := m.game.Exec.Execute(line)
	switch {
	case res.Quit:
		m.closed = true
		return m
	case res.Clear:
		m.lines = nil
	default:
		m.lines = append(m.lines, "$ "+line)
		if res.Output != "" {
			m.lines = append(m.lines, strings.Split(res.Output, "\n")...)
		}
		m.lines = append(m.lines, "")
	}

	m.game.Dispatch(mission.Event{Type: mission.EventTerminalUpdate})
	m.refresh()
	return m
}

func (m *TerminalModel) refresh() {
	m.scrollback.SetContent(strings.Join(m.lines, "\n"))
	if m.game.Settings.AutoScroll {
		m.scrollback.GotoBottom()
	}
}

func (m TerminalModel) openReport() TerminalModel {
	recon, ok := m.game.Missions["mission1"].(*mission.Recon)
	if !ok {
		return m
	}
	m.form = NewReportForm("Rapport de reconnaissance", recon.ReportFields(), recon.ValidateReport)
	m.formActive = true
	m.prompt.Blur()
	return m
}

// View renders the terminal.
func (m TerminalModel) View() string {
	if m.formActive {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.scrollback.View())
	b.WriteString("\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n")
	hints := "Esc : bureau  |  Ctrl+R : rapport  |  PgUp/PgDn : defiler"
	if m.game.Settings.ShowCommandHints {
		if sugg := shell.Suggest(m.prompt.Value(), shell.KnownCommands); len(sugg) > 0 {
			hints = "? " + strings.Join(sugg, "  ")
		}
	}
	b.WriteString(subtleStyle.Render(hints))
	return b.String()
}

// Closed reports whether the player left the terminal.
func (m TerminalModel) Closed() bool { return m.closed }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
