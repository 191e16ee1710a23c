// Package profile persists player profiles as one JSON file per nickname.
package profile

import (
	"strings"
	"time"
)

// Progress tracks everything the player has earned.
type Progress struct {
	XP                int      `json:"xp"`
	Credits           int      `json:"credits"`
	Level             string   `json:"level"`
	Badges            []string `json:"badges"`
	MissionsCompleted []string `json:"missions_completed"`
	UnlockedMissions  []string `json:"unlocked_missions"`
	CurrentStage      string   `json:"current_stage"`
}

// Profile is one saved player.
type Profile struct {
	Nickname        string    `json:"nickname"`
	HackerType      string    `json:"hacker_type"`
	Bio             string    `json:"bio"`
	AvatarID        int       `json:"avatar_id"`
	CreatedAt       time.Time `json:"created_at"`
	SavedAt         time.Time `json:"saved_at"`
	DownloadedTools []string  `json:"downloaded_tools"`
	ReadEmails      []string  `json:"read_emails"`
	Progress        Progress  `json:"progress"`
}

// StartingCredits is the forum signing bonus every new account gets.
// It must cover every tool the market sells before missions start
// paying out, or the campaign cannot be finished.
const StartingCredits = 2500

// New creates a fresh profile with the first mission unlocked.
func New(nickname string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		Nickname:  nickname,
		CreatedAt: now,
		SavedAt:   now,
		Progress: Progress{
			Credits:          StartingCredits,
			Level:            "Script Kiddie",
			UnlockedMissions: []string{"mission1"},
			CurrentStage:     "mission1",
		},
	}
}

// HasTool reports whether the tool has been downloaded.
func (p *Profile) HasTool(id string) bool {
	return contains(p.DownloadedTools, id)
}

// AddTool records a downloaded tool once.
func (p *Profile) AddTool(id string) {
	if !p.HasTool(id) {
		p.DownloadedTools = append(p.DownloadedTools, id)
	}
}

// HasCompleted reports whether the mission is done.
func (p *Profile) HasCompleted(missionID string) bool {
	return contains(p.Progress.MissionsCompleted, missionID)
}

// HasUnlocked reports whether the mission is playable.
func (p *Profile) HasUnlocked(missionID string) bool {
	return contains(p.Progress.UnlockedMissions, missionID)
}

// MarkEmailRead records a read email once.
func (p *Profile) MarkEmailRead(id string) {
	if !contains(p.ReadEmails, id) {
		p.ReadEmails = append(p.ReadEmails, id)
	}
}

// HasReadEmail reports whether the email was opened before.
func (p *Profile) HasReadEmail(id string) bool {
	return contains(p.ReadEmails, id)
}

// CompleteMission records a mission completion and applies its rewards:
// xp and credits are added, a non-empty level replaces the current one,
// the badge is granted and the next mission unlocked. Completing the same
// mission twice grants nothing.
func (p *Profile) CompleteMission(missionID string, xp, credits int, level, badge, unlocks string) {
	if p.HasCompleted(missionID) {
		return
	}
	p.Progress.MissionsCompleted = append(p.Progress.MissionsCompleted, missionID)
	p.Progress.XP += xp
	p.Progress.Credits += credits
	if level != "" {
		p.Progress.Level = level
	}
	if badge != "" && !contains(p.Progress.Badges, badge) {
		p.Progress.Badges = append(p.Progress.Badges, badge)
	}
	if unlocks != "" && !p.HasUnlocked(unlocks) {
		p.Progress.UnlockedMissions = append(p.Progress.UnlockedMissions, unlocks)
		p.Progress.CurrentStage = unlocks
	}
}

// SpendCredits deducts the amount, false when the balance is short.
func (p *Profile) SpendCredits(amount int) bool {
	if amount > p.Progress.Credits {
		return false
	}
	p.Progress.Credits -= amount
	return true
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

// SanitizeNickname keeps alphanumerics, '_' and '-', lowercased. Used for
// profile filenames.
func SanitizeNickname(nickname string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(nickname)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
