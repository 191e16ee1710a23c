package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberhero-game/cyberhero/internal/profile"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func drive(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T, expected MenuModel", next)
		}
	}
	return m
}

func TestMenuRegistrationFlow(t *testing.T) {
	game := newTestGame(t)
	m := NewMenuModel(game, 80, 24)

	m = drive(t, m, keyEnter) // Nouvelle partie
	if m.mode != "nickname" {
		t.Fatalf("mode = %q, expected nickname", m.mode)
	}

	m = drive(t, m, typed("trinity"), keyEnter)
	if m.mode != "identity" {
		t.Fatalf("mode = %q, expected identity", m.mode)
	}
	view := m.View()
	if !strings.Contains(view, "White Hat") || !strings.Contains(view, "Black Hat") {
		t.Errorf("identity screen missing hacker types:\n%s", view)
	}

	m = drive(t, m, keyDown, keyEnter) // grey hat
	if m.mode != "persona" {
		t.Fatalf("mode = %q, expected persona", m.mode)
	}

	m = drive(t, m, keyDown, keyDown) // avatar 3
	m = drive(t, m, typed("paquets un jour, paquets toujours"), keyEnter)
	if !m.Done() {
		t.Fatal("registration should attach the new profile")
	}

	p, err := game.Profiles.Load("trinity")
	if err != nil {
		t.Fatalf("Load(trinity): %v", err)
	}
	if p.HackerType != "grey_hat" {
		t.Errorf("hacker type = %q, expected grey_hat", p.HackerType)
	}
	if p.AvatarID != 3 {
		t.Errorf("avatar = %d, expected 3", p.AvatarID)
	}
	if p.Bio != "paquets un jour, paquets toujours" {
		t.Errorf("bio = %q", p.Bio)
	}
	if p.Progress.Credits != profile.StartingCredits {
		t.Errorf("credits = %d, expected %d", p.Progress.Credits, profile.StartingCredits)
	}
}

func TestMenuNicknameValidation(t *testing.T) {
	game := newTestGame(t)
	if err := game.Profiles.Save(profile.New("neo")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewMenuModel(game, 80, 24)
	m = drive(t, m, keyEnter)

	m = drive(t, m, typed("neo"), keyEnter)
	if m.mode != "nickname" || !strings.Contains(m.errorText, "existe deja") {
		t.Errorf("duplicate nickname not rejected: mode=%q err=%q", m.mode, m.errorText)
	}

	m.nickname.SetValue("!!!")
	m = drive(t, m, keyEnter)
	if m.mode != "nickname" || !strings.Contains(m.errorText, "invalide") {
		t.Errorf("bad nickname not rejected: mode=%q err=%q", m.mode, m.errorText)
	}
}

func TestMenuAvatarCycleWraps(t *testing.T) {
	game := newTestGame(t)
	m := NewMenuModel(game, 80, 24)
	m = drive(t, m, keyEnter, typed("morpheus"), keyEnter, keyEnter)
	if m.mode != "persona" {
		t.Fatalf("mode = %q, expected persona", m.mode)
	}

	m = drive(t, m, keyUp)
	if m.avatarID != avatarCount {
		t.Errorf("avatar = %d, expected wrap to %d", m.avatarID, avatarCount)
	}
	m = drive(t, m, keyDown)
	if m.avatarID != 1 {
		t.Errorf("avatar = %d, expected wrap back to 1", m.avatarID)
	}

	m = drive(t, m, keyEsc)
	if m.mode != "identity" {
		t.Errorf("esc should return to identity, got %q", m.mode)
	}
}
