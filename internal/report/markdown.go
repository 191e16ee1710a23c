// Package report renders player progress as shareable documents:
// a Markdown progress report and a PDF completion certificate.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/cyberhero-game/cyberhero/internal/mission"
	"github.com/cyberhero-game/cyberhero/internal/profile"
	"github.com/cyberhero-game/cyberhero/internal/storage"
)

// WriteProgress writes a Markdown progress report for one player.
// The completions slice may be nil when no records database is available.
func WriteProgress(w io.Writer, p *profile.Profile, completions []storage.CompletionEntry) error {
	md := markdown.NewMarkdown(w)

	md.H1("Rapport de progression - " + p.Nickname)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Profil", "Valeur"},
		Rows: [][]string{
			{"Pseudo", "`" + p.Nickname + "`"},
			{"Reputation", p.Progress.Level},
			{"XP", strconv.Itoa(p.Progress.XP)},
			{"Credits", strconv.Itoa(p.Progress.Credits)},
			{"Compte cree le", p.CreatedAt.Format("02/01/2006")},
		},
	})
	md.PlainText("")

	md.H2("Missions")
	md.PlainText("")
	rows := make([][]string, 0, len(mission.List()))
	for _, info := range mission.List() {
		status := "verrouillee"
		switch {
		case p.HasCompleted(info.ID):
			status = "accomplie"
		case p.HasUnlocked(info.ID):
			status = "en cours"
		}
		rows = append(rows, []string{info.ID, info.Title, status})
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Mission", "Statut"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(p.Progress.Badges) > 0 {
		md.H2("Badges")
		md.PlainText("")
		md.BulletList(p.Progress.Badges...)
		md.PlainText("")
	}

	if len(completions) > 0 {
		md.H2("Historique")
		md.PlainText("")
		hist := make([][]string, 0, len(completions))
		for _, c := range completions {
			hist = append(hist, []string{
				c.MissionID,
				strconv.Itoa(c.XP),
				formatDuration(c.DurationSecs),
				strconv.Itoa(c.HintsUsed),
				c.CompletedAt.Format("02/01/2006 15:04"),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Mission", "XP", "Duree", "Indices", "Date"},
			Rows:   hist,
		})
		md.PlainText("")
	}

	return md.Build()
}

func formatDuration(secs int) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
