package tui

import (
	"strings"
	"testing"
)

// completedSession builds a session sitting in the sniffer right after
// mission 2 settled, the state that triggers the completion screen.
func completedSession(t *testing.T) (SessionModel, *Game) {
	t.Helper()
	game := newTestGame(t)
	attach(t, game, "neo")
	completeIntrusion(t, game)
	if !game.SettleMission("mission2") {
		t.Fatal("mission2 should settle")
	}

	m := NewSessionModel(game, "", 80, 24)
	m.screen = screenSniffer
	m.sniffer = NewSnifferModel(game, 80, 24)
	return m, game
}

func TestCompletionTypewriterReveals(t *testing.T) {
	m, _ := completedSession(t)

	model, cmd := m.Update(typed("x"))
	m = model.(SessionModel)
	if m.screen != screenComplete {
		t.Fatalf("screen = %d, expected completion screen", m.screen)
	}
	if cmd == nil {
		t.Fatal("normal text speed should schedule the first tick")
	}
	if m.View() != "" {
		t.Errorf("nothing should be revealed yet:\n%s", m.View())
	}

	full := m.completeBody()
	for i := 0; i <= len([]rune(full)) && !m.completeDone; i++ {
		model, _ = m.Update(typeTickMsg{})
		m = model.(SessionModel)
	}
	if !m.completeDone {
		t.Fatal("typewriter never finished")
	}
	if m.View() != full {
		t.Error("finished view should show the whole screen")
	}
	if !strings.Contains(full, "MISSION ACCOMPLIE") {
		t.Errorf("completion screen missing banner:\n%s", full)
	}
}

func TestCompletionTypewriterSkipAndDismiss(t *testing.T) {
	m, game := completedSession(t)

	model, _ := m.Update(typed("x"))
	m = model.(SessionModel)

	// Mid-animation, the first key reveals everything.
	model, _ = m.Update(typed("x"))
	m = model.(SessionModel)
	if !m.completeDone || m.screen != screenComplete {
		t.Fatalf("key should skip the animation, done=%v screen=%d", m.completeDone, m.screen)
	}

	model, _ = m.Update(typed("x"))
	m = model.(SessionModel)
	if m.screen != screenDesktop || game.LastCompleted != "" {
		t.Errorf("second key should dismiss, screen=%d last=%q", m.screen, game.LastCompleted)
	}
}

func TestCompletionTypewriterFastSpeed(t *testing.T) {
	m, game := completedSession(t)
	game.Settings.TextSpeed = "fast"

	model, cmd := m.Update(typed("x"))
	m = model.(SessionModel)
	if !m.completeDone {
		t.Fatal("fast speed should reveal instantly")
	}
	if cmd != nil {
		t.Error("fast speed should not schedule ticks")
	}
	if m.View() != m.completeBody() {
		t.Error("fast speed view should be complete immediately")
	}
}
