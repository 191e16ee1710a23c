package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeNickname(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Zero", "zero"},
		{"Zero Cool!", "zerocool"},
		{"l33t_h4x0r", "l33t_h4x0r"},
		{"  spaced-out  ", "spaced-out"},
		{"../../etc/passwd", "etcpasswd"},
		{"日本語", ""},
	}
	for _, tc := range tests {
		if got := SanitizeNickname(tc.in); got != tc.want {
			t.Errorf("SanitizeNickname(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestNewProfileDefaults(t *testing.T) {
	p := New("Zero")
	if p.Progress.Level != "Script Kiddie" {
		t.Errorf("level = %q", p.Progress.Level)
	}
	if p.Progress.Credits != StartingCredits {
		t.Errorf("credits = %d, expected the %d signing bonus", p.Progress.Credits, StartingCredits)
	}
	if !p.HasUnlocked("mission1") || p.HasUnlocked("mission2") {
		t.Errorf("unlocked = %v", p.Progress.UnlockedMissions)
	}
}

func TestCompleteMission(t *testing.T) {
	p := New("Zero")
	p.CompleteMission("mission1", 500, 100, "", "Network Defender", "mission2")

	if p.Progress.XP != 500 || p.Progress.Credits != StartingCredits+100 {
		t.Errorf("xp/credits = %d/%d", p.Progress.XP, p.Progress.Credits)
	}
	if p.Progress.Level != "Script Kiddie" {
		t.Errorf("empty level overwrote current: %q", p.Progress.Level)
	}
	if !p.HasCompleted("mission1") || !p.HasUnlocked("mission2") {
		t.Error("completion or unlock not recorded")
	}
	if p.Progress.CurrentStage != "mission2" {
		t.Errorf("current stage = %q", p.Progress.CurrentStage)
	}

	// Replaying grants nothing.
	p.CompleteMission("mission1", 500, 100, "", "Network Defender", "mission2")
	if p.Progress.XP != 500 {
		t.Errorf("replay granted xp: %d", p.Progress.XP)
	}
	if len(p.Progress.Badges) != 1 {
		t.Errorf("badges = %v", p.Progress.Badges)
	}

	p.CompleteMission("mission2", 300, 0, "Respectable", "Packet Detective", "mission3")
	if p.Progress.Level != "Respectable" {
		t.Errorf("level = %q", p.Progress.Level)
	}
}

func TestSpendCredits(t *testing.T) {
	p := New("Zero")
	p.Progress.Credits = 100
	if p.SpendCredits(150) {
		t.Error("overspend allowed")
	}
	if !p.SpendCredits(100) || p.Progress.Credits != 0 {
		t.Errorf("spend failed, credits = %d", p.Progress.Credits)
	}
}

func TestToolsAndEmails(t *testing.T) {
	p := New("Zero")
	p.AddTool("wireshark")
	p.AddTool("wireshark")
	if len(p.DownloadedTools) != 1 || !p.HasTool("wireshark") {
		t.Errorf("tools = %v", p.DownloadedTools)
	}

	p.MarkEmailRead("prof_001_welcome")
	p.MarkEmailRead("prof_001_welcome")
	if len(p.ReadEmails) != 1 || !p.HasReadEmail("prof_001_welcome") {
		t.Errorf("read emails = %v", p.ReadEmails)
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt: %v", err)
	}

	p := New("Zero Cool")
	p.Progress.XP = 500
	if err := m.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !m.Exists("Zero Cool") {
		t.Error("Exists = false after save")
	}

	got, err := m.Load("Zero Cool")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Nickname != "Zero Cool" || got.Progress.XP != 500 {
		t.Errorf("loaded profile = %+v", got)
	}

	if err := m.Delete("Zero Cool"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Load("Zero Cool"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete = %v, expected ErrNotFound", err)
	}
	if err := m.Delete("Zero Cool"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, expected ErrNotFound", err)
	}
}

func TestSaveRejectsEmptySanitizedNickname(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt: %v", err)
	}
	if err := m.Save(New("!!!")); err == nil {
		t.Error("expected error for unsanitizable nickname")
	}
}

func TestListSortsAndSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManagerAt(dir)
	if err != nil {
		t.Fatalf("NewManagerAt: %v", err)
	}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, nick := range []string{"older", "newer"} {
		stamp := base.Add(time.Duration(i) * time.Hour)
		timeNow = func() time.Time { return stamp }
		if err := m.Save(New(nick)); err != nil {
			t.Fatalf("Save(%s): %v", nick, err)
		}
	}
	timeNow = func() time.Time { return time.Now().UTC() }

	// A corrupt file must be skipped, not fail the listing.
	corrupt := filepath.Join(dir, "broken_profile.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	profiles, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("listed %d profiles, expected 2", len(profiles))
	}
	if profiles[0].Nickname != "newer" || profiles[1].Nickname != "older" {
		t.Errorf("order = %s, %s", profiles[0].Nickname, profiles[1].Nickname)
	}
}

func TestManagerEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Dir() != dir {
		t.Errorf("dir = %s, expected %s", m.Dir(), dir)
	}
}
