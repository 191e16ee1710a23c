// Package tui provides the terminal UI: the desktop, the in-game
// applications and SSH serving via Wish.
package tui

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cyberhero-game/cyberhero/internal/capture"
	"github.com/cyberhero-game/cyberhero/internal/content"
	"github.com/cyberhero-game/cyberhero/internal/mission"
	"github.com/cyberhero-game/cyberhero/internal/netsim"
	"github.com/cyberhero-game/cyberhero/internal/notify"
	"github.com/cyberhero-game/cyberhero/internal/profile"
	"github.com/cyberhero-game/cyberhero/internal/settings"
	"github.com/cyberhero-game/cyberhero/internal/shell"
	"github.com/cyberhero-game/cyberhero/internal/storage"
)

// Game bundles the state shared by every screen of one play session.
type Game struct {
	Profiles *profile.Manager
	Profile  *profile.Profile
	Settings settings.Settings
	Store    *storage.Store // nil when score persistence is unavailable
	Library  *content.Library
	Notify   *notify.Queue

	Env      *mission.Env
	Exec     *shell.Executor
	Missions map[string]mission.Mission

	// LastCompleted is set by SettleMission and consumed by the session
	// to show the completion screen.
	LastCompleted string

	startedAt map[string]time.Time
	hintsUsed map[string]int
	lastHint  map[string]time.Time
}

var timeNow = time.Now

// NewGame loads the narrative content and wires the shared state.
// The profile is attached later, once the player picked or created one.
func NewGame(profiles *profile.Manager, cfg settings.Settings, store *storage.Store) (*Game, error) {
	lib, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("tui: cannot load content: %w", err)
	}
	return &Game{
		Profiles:  profiles,
		Settings:  cfg,
		Store:     store,
		Library:   lib,
		Notify:    &notify.Queue{},
		startedAt: map[string]time.Time{},
		hintsUsed: map[string]int{},
		lastHint:  map[string]time.Time{},
	}, nil
}

// seedFor derives a stable per-player seed so a player resuming the game
// sees the same audit network.
func seedFor(nickname string) int64 {
	h := fnv.New64a()
	h.Write([]byte(nickname))
	return int64(h.Sum64())
}

// AttachProfile binds a profile and builds its simulated world.
func (g *Game) AttachProfile(p *profile.Profile) error {
	g.Profile = p

	net := netsim.New(p.Nickname)
	gen := netsim.NewGenerator(seedFor(p.Nickname))
	audit := gen.AuditNetwork()
	packets := gen.Packets(audit, 20)
	g.Exec = shell.NewExecutor(net, audit, packets)
	g.Exec.Educational = g.Settings.EducationalMode

	pcap, err := capture.NewForensicsPcap()
	if err != nil {
		return fmt.Errorf("tui: cannot build forensics capture: %w", err)
	}
	g.Env = &mission.Env{
		Net:     net,
		Audit:   audit,
		Shell:   g.Exec.State,
		Capture: capture.NewIntrusionCapture(seedFor(p.Nickname)),
		Pcap:    pcap,
	}

	g.Missions = map[string]mission.Mission{}
	for _, info := range mission.List() {
		m, err := mission.Create(info.ID)
		if err != nil {
			return err
		}
		m.Reset(g.Env)
		g.Missions[info.ID] = m
	}

	g.Notify.Push(notify.KindEmail, "Nouveau message", "Le Professeur vous a ecrit")
	return nil
}

// CurrentMission returns the tracker for the profile's current stage,
// nil when every mission is done.
func (g *Game) CurrentMission() mission.Mission {
	if g.Profile == nil {
		return nil
	}
	for _, info := range mission.List() {
		if g.Profile.HasUnlocked(info.ID) && !g.Profile.HasCompleted(info.ID) {
			return g.Missions[info.ID]
		}
	}
	return nil
}

// Dispatch forwards a gameplay event to every unlocked, unfinished mission
// and settles any completion it triggered.
func (g *Game) Dispatch(ev mission.Event) {
	if g.Profile == nil {
		return
	}
	for id, m := range g.Missions {
		if !g.Profile.HasUnlocked(id) || g.Profile.HasCompleted(id) {
			continue
		}
		if _, ok := g.startedAt[id]; !ok {
			g.startedAt[id] = time.Now()
		}
		m.Handle(ev)
	}
}

// UseHint counts a hint against the mission budget; false when the
// budget is exhausted or the difficulty cooldown has not elapsed.
func (g *Game) UseHint(missionID string) bool {
	if !g.Settings.HintsEnabled {
		return false
	}
	if g.hintsUsed[missionID] >= g.Settings.MaxHints() {
		return false
	}
	now := timeNow()
	if last, ok := g.lastHint[missionID]; ok && now.Sub(last) < g.Settings.HintCooldown() {
		return false
	}
	g.hintsUsed[missionID]++
	g.lastHint[missionID] = now
	return true
}

// SettleMission applies rewards and persists state once a mission's
// objectives are all complete. Returns true when it just completed.
func (g *Game) SettleMission(id string) bool {
	m, ok := g.Missions[id]
	if !ok || !m.Completed() || g.Profile.HasCompleted(id) {
		return false
	}

	r := m.Rewards()
	g.Profile.CompleteMission(id, r.XP, r.Credits, r.Level, r.Badge, r.Unlocks)

	if g.Store != nil {
		duration := 0
		if start, ok := g.startedAt[id]; ok {
			duration = int(time.Since(start).Seconds())
		}
		if _, err := g.Store.SaveCompletion(g.Profile.Nickname, id, r.XP, duration, g.hintsUsed[id]); err != nil {
			log.Warn("cannot record completion", "mission", id, "err", err)
		}
	}
	if err := g.Profiles.Save(g.Profile); err != nil {
		log.Warn("cannot save profile", "nickname", g.Profile.Nickname, "err", err)
	}

	g.LastCompleted = id
	g.Notify.Push(notify.KindMission, "Mission accomplie", m.Title())
	if r.Unlocks != "" && mission.Exists(r.Unlocks) {
		g.Notify.Push(notify.KindEmail, "Nouveau message", "Le Professeur vous a ecrit")
	}
	return true
}

// DownloadTool buys and installs a market tool onto the profile.
func (g *Game) DownloadTool(id string) error {
	tool, ok := g.Library.ToolByID(id)
	if !ok {
		return fmt.Errorf("tui: unknown tool %q", id)
	}
	if !tool.Available(g.Profile.Progress.MissionsCompleted) {
		return fmt.Errorf("tui: %s requires completing %s first", tool.Name, tool.RequiresMission)
	}
	if g.Profile.HasTool(id) {
		return fmt.Errorf("tui: %s is already installed", tool.Name)
	}
	if !g.Profile.SpendCredits(tool.Price) {
		return fmt.Errorf("tui: not enough credits for %s (%d needed)", tool.Name, tool.Price)
	}

	g.Profile.AddTool(id)
	g.Dispatch(mission.Event{Type: mission.EventToolDownloaded, Value: id})
	g.Notify.Push(notify.KindDownload, "Telechargement", tool.Name+" installe")
	if err := g.Profiles.Save(g.Profile); err != nil {
		log.Warn("cannot save profile", "nickname", g.Profile.Nickname, "err", err)
	}
	return nil
}

// Emails returns the inbox content for the current profile, personalized.
func (g *Game) Emails() []content.Email {
	if g.Profile == nil {
		return nil
	}
	visible := g.Library.AvailableEmails(g.Profile.Progress.UnlockedMissions, g.Profile.Progress.MissionsCompleted)
	out := make([]content.Email, len(visible))
	for i, e := range visible {
		out[i] = e.Personalize(g.Profile.Nickname)
	}
	return out
}
