package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/mission"
)

// PcapModel is the hex analyzer: the annotated dump of the forensics
// capture plus the expertise report form.
type PcapModel struct {
	game   *Game
	width  int
	height int

	dump     viewport.Model
	showNote bool

	form       ReportForm
	formActive bool

	closed bool
}

// NewPcapModel creates the PCAP analyzer over the Mission 3 file.
func NewPcapModel(game *Game, width, height int) PcapModel {
	vp := viewport.New(width, max(4, height-5))

	m := PcapModel{
		game:     game,
		width:    width,
		height:   height,
		dump:     vp,
		showNote: true,
	}
	m.refresh()
	return m
}

func (m *PcapModel) refresh() {
	var b strings.Builder
	for _, l := range m.game.Env.Pcap.Dump() {
		line := fmt.Sprintf("%04x  %-49s  %-18s", l.Offset, l.Hex, l.ASCII)
		switch l.Section {
		case "pcap_header":
			line = subtleStyle.Render(line)
		case "packet_header":
			line = warnStyle.Render(line)
		}
		b.WriteString(line)
		if m.showNote && l.Note != "" {
			b.WriteString("  ")
			b.WriteString(subtleStyle.Render("; " + l.Note))
		}
		b.WriteString("\n")
	}
	m.dump.SetContent(b.String())
}

// Init initializes the analyzer model.
func (m PcapModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the analyzer.
func (m PcapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.formActive {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dump.Width = msg.Width
		m.dump.Height = max(4, msg.Height-5)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.closed = true
			return m, nil
		case "a":
			m.showNote = !m.showNote
			m.refresh()
			return m, nil
		case "ctrl+r":
			forensics, ok := m.game.Missions["mission3"].(*mission.Forensics)
			if ok {
				m.form = NewReportForm("Rapport d'expertise", forensics.ReportFields(), forensics.ValidateReport)
				m.formActive = true
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.dump, cmd = m.dump.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PcapModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	if m.form.Passed() {
		m.game.SettleMission("mission3")
	}
	if m.form.Closed() || m.form.Passed() {
		m.formActive = false
	}
	return m, cmd
}

// View renders the analyzer.
func (m PcapModel) View() string {
	if m.formActive {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Packet Lab - suspicious_packet.pcap"))
	fmt.Fprintf(&b, "  %s\n", subtleStyle.Render(fmt.Sprintf("trame de %d octets", m.game.Env.Pcap.FrameLength())))
	b.WriteString(m.dump.View())
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("A : annotations  |  Ctrl+R : rapport  |  Fleches : defiler  |  Esc : bureau"))
	return b.String()
}

// Closed reports whether the player left the analyzer.
func (m PcapModel) Closed() bool { return m.closed }
