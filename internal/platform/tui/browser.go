package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/content"
)

var browserTabs = []string{"Accueil", "Categories", "Marche"}

// BrowserModel is the forum browser: welcome page, discussion categories
// and the tool market.
type BrowserModel struct {
	game   *Game
	width  int
	height int

	tab      int
	cursor   int
	thread   *content.Thread
	page     viewport.Model
	status   string
	statusOK bool

	keyMapper *KeyMapper
	closed    bool
}

// NewBrowserModel creates the browser app.
func NewBrowserModel(game *Game, width, height int) BrowserModel {
	vp := viewport.New(width, max(4, height-6))
	m := BrowserModel{
		game:      game,
		width:     width,
		height:    height,
		page:      vp,
		keyMapper: NewKeyMapper(),
	}
	m.refresh()
	return m
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.page.Width = msg.Width
		m.page.Height = max(4, msg.Height-6)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.closed = true
		return m, nil
	case MenuActionBack:
		if m.thread != nil {
			m.thread = nil
			m.refresh()
			return m, nil
		}
		m.closed = true
		return m, nil
	case MenuActionLeft:
		if m.tab > 0 {
			m.tab--
			m.cursor = 0
			m.thread = nil
			m.status = ""
			m.refresh()
		}
		return m, nil
	case MenuActionRight:
		if m.tab < len(browserTabs)-1 {
			m.tab++
			m.cursor = 0
			m.thread = nil
			m.status = ""
			m.refresh()
		}
		return m, nil
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.refresh()
		} else {
			m.page.ScrollUp(1)
		}
		return m, nil
	case MenuActionDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
			m.refresh()
		} else {
			m.page.ScrollDown(1)
		}
		return m, nil
	case MenuActionSelect:
		return m.selectItem(), nil
	}
	return m, nil
}

func (m BrowserModel) itemCount() int {
	switch m.tab {
	case 1:
		if m.thread != nil {
			return 0
		}
		count := 0
		for _, c := range m.game.Library.Categories {
			count += len(c.Threads)
		}
		return count
	case 2:
		return len(m.game.Library.Tools)
	}
	return 0
}

func (m BrowserModel) selectItem() BrowserModel {
	switch m.tab {
	case 1:
		if m.thread != nil {
			return m
		}
		i := 0
		for _, c := range m.game.Library.Categories {
			for ti := range c.Threads {
				if i == m.cursor {
					t := c.Threads[ti]
					m.thread = &t
					m.refresh()
					return m
				}
				i++
			}
		}
	case 2:
		if m.cursor < len(m.game.Library.Tools) {
			tool := m.game.Library.Tools[m.cursor]
			if err := m.game.DownloadTool(tool.ID); err != nil {
				m.status = err.Error()
				m.statusOK = false
			} else {
				m.status = tool.Name + " installe sur le bureau."
				m.statusOK = true
			}
		}
	}
	return m
}

func (m *BrowserModel) refresh() {
	switch m.tab {
	case 0:
		m.page.SetContent(m.game.Library.Welcome)
	case 1:
		if m.thread != nil {
			m.page.SetContent(renderThread(*m.thread))
		} else {
			m.page.SetContent(m.renderCategories())
		}
	case 2:
		m.page.SetContent(m.renderMarket())
	}
	m.page.GotoTop()
}

func (m BrowserModel) renderCategories() string {
	var b strings.Builder
	i := 0
	for _, c := range m.game.Library.Categories {
		fmt.Fprintf(&b, "%s - %s\n", titleStyle.Render(c.Title), subtleStyle.Render(c.Description))
		for _, t := range c.Threads {
			line := fmt.Sprintf("    %s (par %s, %d reponses)", t.Title, t.Author, len(t.Replies))
			if i == m.cursor {
				line = selectedStyle.Render("  > " + strings.TrimSpace(line))
			}
			b.WriteString(line)
			b.WriteString("\n")
			i++
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderThread(t content.Thread) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", titleStyle.Render(t.Title), subtleStyle.Render("ouvert par "+t.Author))
	for _, r := range t.Replies {
		fmt.Fprintf(&b, "%s :\n%s\n", selectedStyle.Render(r.Author), strings.TrimRight(r.Body, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m BrowserModel) renderMarket() string {
	var b strings.Builder
	completed := m.game.Profile.Progress.MissionsCompleted
	for i, tool := range m.game.Library.Tools {
		price := "gratuit"
		if tool.Price > 0 {
			price = fmt.Sprintf("%d credits", tool.Price)
		}
		state := ""
		switch {
		case m.game.Profile.HasTool(tool.ID):
			state = okStyle.Render(" [installe]")
		case !tool.Available(completed):
			state = subtleStyle.Render(" [indisponible]")
		}
		line := fmt.Sprintf("  %-18s %-12s%s", tool.Name, price, state)
		if i == m.cursor {
			line = selectedStyle.Render("> ") + strings.TrimPrefix(line, "  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("    " + strings.TrimSpace(tool.Description)))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Solde : %d credits\n", m.game.Profile.Progress.Credits)
	return b.String()
}

// View renders the browser.
func (m BrowserModel) View() string {
	var b strings.Builder
	for i, tab := range browserTabs {
		label := "  " + tab + "  "
		if i == m.tab {
			label = bannerStyle.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n\n")
	b.WriteString(m.page.View())
	b.WriteString("\n")

	if m.status != "" {
		if m.statusOK {
			b.WriteString(okStyle.Render(m.status))
		} else {
			b.WriteString(errStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(subtleStyle.Render("Gauche/Droite : onglets  |  Entree : ouvrir/acheter  |  Esc : retour"))
	return b.String()
}

// Closed reports whether the player left the browser.
func (m BrowserModel) Closed() bool { return m.closed }
