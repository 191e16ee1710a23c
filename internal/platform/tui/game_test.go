package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/cyberhero-game/cyberhero/internal/capture"
	"github.com/cyberhero-game/cyberhero/internal/mission"
	"github.com/cyberhero-game/cyberhero/internal/profile"
	"github.com/cyberhero-game/cyberhero/internal/settings"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	manager, err := profile.NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt: %v", err)
	}
	game, err := NewGame(manager, settings.Defaults(), nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return game
}

func attach(t *testing.T, game *Game, nickname string) *profile.Profile {
	t.Helper()
	p := profile.New(nickname)
	if err := game.AttachProfile(p); err != nil {
		t.Fatalf("AttachProfile: %v", err)
	}
	return p
}

func TestAttachProfileBuildsWorld(t *testing.T) {
	game := newTestGame(t)
	attach(t, game, "neo")

	if game.Exec == nil || game.Env == nil {
		t.Fatal("executor and environment should be built")
	}
	if len(game.Missions) != 3 {
		t.Fatalf("missions = %d, want 3", len(game.Missions))
	}
	cur := game.CurrentMission()
	if cur == nil || cur.ID() != "mission1" {
		t.Errorf("current mission = %v, want mission1", cur)
	}
	if _, ok := game.Notify.Peek(); !ok {
		t.Error("welcome notification should be queued")
	}
}

func TestSeedForIsStable(t *testing.T) {
	if seedFor("neo") != seedFor("neo") {
		t.Error("same nickname should give the same seed")
	}
	if seedFor("neo") == seedFor("trinity") {
		t.Error("different nicknames should give different seeds")
	}
}

// completeIntrusion drives the Mission 2 tracker to completion directly.
func completeIntrusion(t *testing.T, game *Game) {
	t.Helper()
	m := game.Missions["mission2"]
	m.Handle(mission.Event{Type: mission.EventToolDownloaded, Value: "wireshark"})
	m.Handle(mission.Event{Type: mission.EventAppOpened, Value: "wireshark"})
	m.Handle(mission.Event{Type: mission.EventSuspiciousIP, Value: capture.IntruderIP})
	for _, threat := range game.Env.Capture.ThreatTypes() {
		m.Handle(mission.Event{Type: mission.EventThreatIdentified, Value: threat})
	}
	intrusion := m.(*mission.Intrusion)
	intrusion.ValidateReport(map[string]string{
		"suspicious_ip": capture.IntruderIP,
		"threat_count":  "5",
		"exfil_server":  capture.ExfilServerIP,
	})
	if !m.Completed() {
		t.Fatal("intrusion mission should be complete")
	}
}

func TestSettleMission(t *testing.T) {
	game := newTestGame(t)
	p := attach(t, game, "neo")
	completeIntrusion(t, game)

	if !game.SettleMission("mission2") {
		t.Fatal("first settle should report completion")
	}
	if game.SettleMission("mission2") {
		t.Error("second settle should be a no-op")
	}

	if p.Progress.XP != 300 {
		t.Errorf("XP = %d, want 300", p.Progress.XP)
	}
	if !p.HasUnlocked("mission3") {
		t.Error("mission3 should be unlocked")
	}
	if game.LastCompleted != "mission2" {
		t.Errorf("LastCompleted = %q, want mission2", game.LastCompleted)
	}
	if !game.Profiles.Exists("neo") {
		t.Error("profile should be saved")
	}
}

func TestSettleMissionRequiresCompletion(t *testing.T) {
	game := newTestGame(t)
	attach(t, game, "neo")

	if game.SettleMission("mission1") {
		t.Error("unfinished mission should not settle")
	}
}

func TestDownloadTool(t *testing.T) {
	game := newTestGame(t)
	p := attach(t, game, "neo")

	if err := game.DownloadTool("wireshark"); err == nil {
		t.Error("wireshark should be locked before mission1")
	}

	p.CompleteMission("mission1", 500, 0, "", "Network Defender", "mission2")
	if err := game.DownloadTool("wireshark"); err != nil {
		t.Fatalf("DownloadTool(wireshark): %v", err)
	}
	if !p.HasTool("wireshark") {
		t.Error("wireshark should be installed")
	}
	if err := game.DownloadTool("wireshark"); err == nil {
		t.Error("second download should fail")
	}

	// Download objective reaches the intrusion tracker.
	obj := game.Missions["mission2"].Objectives()[0]
	if obj.ID != "download_wireshark" || !obj.Completed {
		t.Errorf("download objective not completed: %+v", obj)
	}

	p.CompleteMission("mission2", 300, 0, "Respectable", "Packet Detective", "mission3")
	if err := game.DownloadTool("pcap_analyzer"); err != nil {
		t.Fatalf("DownloadTool(pcap_analyzer): %v", err)
	}
	if p.Progress.Credits != profile.StartingCredits-150 {
		t.Errorf("credits = %d, want %d", p.Progress.Credits, profile.StartingCredits-150)
	}

	p.Progress.Credits = 0
	if err := game.DownloadTool("wireshark2"); err == nil {
		t.Error("unknown tool should fail")
	}
}

// The reward chain alone must leave every market tool affordable: no
// mission before mission3 pays credits, so the signing bonus carries
// the 150-credit analyzer purchase.
func TestEconomyReachesMission3(t *testing.T) {
	game := newTestGame(t)
	p := attach(t, game, "neo")

	for _, id := range []string{"mission1", "mission2"} {
		r := game.Missions[id].Rewards()
		p.CompleteMission(id, r.XP, r.Credits, r.Level, r.Badge, r.Unlocks)
	}
	if err := game.DownloadTool("wireshark"); err != nil {
		t.Fatalf("DownloadTool(wireshark): %v", err)
	}
	if err := game.DownloadTool("pcap_analyzer"); err != nil {
		t.Fatalf("pcap_analyzer must be purchasable from mission rewards alone: %v", err)
	}
	if p.Progress.Credits < 0 {
		t.Errorf("credits went negative: %d", p.Progress.Credits)
	}
}

func TestUseHintBudget(t *testing.T) {
	clock := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return clock }
	defer func() { timeNow = time.Now }()

	game := newTestGame(t)
	game.Settings.Difficulty = "hard" // 3 hints
	attach(t, game, "neo")

	for i := 0; i < 3; i++ {
		if !game.UseHint("mission1") {
			t.Fatalf("hint %d should be allowed", i+1)
		}
		clock = clock.Add(game.Settings.HintCooldown())
	}
	if game.UseHint("mission1") {
		t.Error("fourth hint should be denied")
	}

	game.Settings.HintsEnabled = false
	if game.UseHint("mission2") {
		t.Error("hints disabled should deny everything")
	}
}

func TestUseHintCooldown(t *testing.T) {
	clock := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return clock }
	defer func() { timeNow = time.Now }()

	game := newTestGame(t)
	attach(t, game, "neo")

	if !game.UseHint("mission1") {
		t.Fatal("first hint should be allowed")
	}
	clock = clock.Add(game.Settings.HintCooldown() - time.Second)
	if game.UseHint("mission1") {
		t.Error("hint inside the cooldown window should be denied")
	}
	if !game.UseHint("mission2") {
		t.Error("cooldown is per mission, mission2 should be unaffected")
	}
	clock = clock.Add(time.Second)
	if !game.UseHint("mission1") {
		t.Error("hint after the cooldown should be allowed")
	}
}

func TestEmailsArePersonalized(t *testing.T) {
	game := newTestGame(t)
	attach(t, game, "neo")

	emails := game.Emails()
	if len(emails) == 0 {
		t.Fatal("welcome email should be visible")
	}
	found := false
	for _, e := range emails {
		if strings.Contains(e.Body, "neo") {
			found = true
		}
		if strings.Contains(e.Body, "{nickname}") {
			t.Errorf("email %s not personalized", e.ID)
		}
	}
	if !found {
		t.Error("no email mentions the nickname")
	}
}
