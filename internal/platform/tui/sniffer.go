package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/capture"
	"github.com/cyberhero-game/cyberhero/internal/mission"
)

// SnifferModel is the packet analyzer: a filterable table over the
// intrusion capture with a detail pane and threat flagging.
type SnifferModel struct {
	game   *Game
	width  int
	height int

	table    table.Model
	filter   textinput.Model
	visible  []capture.Record
	detail   *capture.Record
	status   string
	inFilter bool

	form       ReportForm
	formActive bool

	closed bool
}

// NewSnifferModel creates the sniffer app over the Mission 2 capture.
func NewSnifferModel(game *Game, width, height int) SnifferModel {
	ti := textinput.New()
	ti.Placeholder = "filtre (protocole, adresse, 'suspicious')"
	ti.CharLimit = 40
	ti.Width = 40

	columns := []table.Column{
		{Title: "ID", Width: 9},
		{Title: "Heure", Width: 9},
		{Title: "Source", Width: 20},
		{Title: "Destination", Width: 20},
		{Title: "Proto", Width: 6},
		{Title: "Taille", Width: 7},
		{Title: "Info", Width: 30},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(4, height-8)),
	)

	m := SnifferModel{
		game:   game,
		width:  width,
		height: height,
		table:  t,
		filter: ti,
	}
	m.applyFilter("")
	return m
}

func (m *SnifferModel) applyFilter(query string) {
	m.visible = m.game.Env.Capture.Filter(query)
	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		src := r.SrcIP
		dst := r.DstIP
		if r.SrcPort > 0 {
			src += ":" + strconv.Itoa(r.SrcPort)
		}
		if r.DstPort > 0 {
			dst += ":" + strconv.Itoa(r.DstPort)
		}
		rows[i] = table.Row{r.ID, r.Timestamp, src, dst, r.Protocol, strconv.Itoa(r.Length), r.Info}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
	m.detail = nil
}

// Init initializes the sniffer model.
func (m SnifferModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sniffer.
func (m SnifferModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.formActive {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(4, msg.Height-8))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m SnifferModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	if m.form.Passed() {
		m.game.SettleMission("mission2")
	}
	if m.form.Closed() || m.form.Passed() {
		m.formActive = false
	}
	return m, cmd
}

func (m SnifferModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inFilter {
		switch msg.String() {
		case "enter", "esc":
			m.inFilter = false
			m.filter.Blur()
			m.applyFilter(m.filter.Value())
			if strings.TrimSpace(strings.ToLower(m.filter.Value())) == capture.IntruderIP {
				m.game.Dispatch(mission.Event{Type: mission.EventSuspiciousIP, Value: capture.IntruderIP})
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.closed = true
		return m, nil
	case "/":
		m.inFilter = true
		m.filter.Focus()
		return m, textinput.Blink
	case "enter":
		if cur := m.table.Cursor(); cur >= 0 && cur < len(m.visible) {
			r := m.visible[cur]
			m.detail = &r
		}
		return m, nil
	case "f":
		return m.flagSelected(), nil
	case "ctrl+r":
		intrusion, ok := m.game.Missions["mission2"].(*mission.Intrusion)
		if ok {
			m.form = NewReportForm("Rapport d'incident", intrusion.ReportFields(), intrusion.ValidateReport)
			m.formActive = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// flagSelected marks the selected packet as a recognized threat.
func (m SnifferModel) flagSelected() SnifferModel {
	cur := m.table.Cursor()
	if cur < 0 || cur >= len(m.visible) {
		return m
	}
	r := m.visible[cur]
	if !r.Suspicious {
		m.status = fmt.Sprintf("%s : trafic normal, rien a signaler.", r.ID)
		return m
	}
	m.game.Dispatch(mission.Event{Type: mission.EventSuspiciousIP, Value: r.SrcIP})
	m.game.Dispatch(mission.Event{Type: mission.EventThreatIdentified, Value: r.Threat})
	m.status = fmt.Sprintf("%s : menace '%s' consignee.", r.ID, r.Threat)
	return m
}

// View renders the sniffer.
func (m SnifferModel) View() string {
	if m.formActive {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Net Scanner - capture_reseau.pcap"))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.detail != nil {
		r := m.detail
		var d strings.Builder
		fmt.Fprintf(&d, "%s  %s -> %s  %s, %d octets\n", r.ID, r.SrcIP, r.DstIP, r.Protocol, r.Length)
		fmt.Fprintf(&d, "%s", r.Info)
		if r.Suspicious {
			d.WriteString("  ")
			d.WriteString(errStyle.Render("[SUSPECT: " + r.Threat + "]"))
		}
		b.WriteString(paneStyle.Render(d.String()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(subtleStyle.Render("/ : filtrer  |  Entree : detail  |  F : signaler  |  Ctrl+R : rapport  |  Esc : bureau"))
	return b.String()
}

// Closed reports whether the player left the sniffer.
func (m SnifferModel) Closed() bool { return m.closed }
