// Package content holds the narrative data: the professor's emails, the
// underground forum and its tool market. The data ships as embedded YAML.
package content

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yml
var dataFS embed.FS

// Email is one message in the player's inbox.
type Email struct {
	ID          string   `yaml:"id"`
	Sender      string   `yaml:"sender"`
	Subject     string   `yaml:"subject"`
	Body        string   `yaml:"body"`
	Mission     string   `yaml:"mission"` // mission this email briefs, if any
	After       string   `yaml:"after"`   // mission whose completion unlocks it
	Attachments []string `yaml:"attachments"`
}

// Reply is one answer inside a forum thread.
type Reply struct {
	Author string `yaml:"author"`
	Body   string `yaml:"body"`
}

// Thread is a forum discussion.
type Thread struct {
	ID      string  `yaml:"id"`
	Title   string  `yaml:"title"`
	Author  string  `yaml:"author"`
	Replies []Reply `yaml:"replies"`
}

// Category groups forum threads.
type Category struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Threads     []Thread `yaml:"threads"`
}

// Tool is a market item the player can download.
type Tool struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Price           int    `yaml:"price"`
	RequiresMission string `yaml:"requires_mission"`
	Description     string `yaml:"description"`
}

// Library is the loaded narrative content.
type Library struct {
	Emails     []Email
	Welcome    string
	Categories []Category
	Tools      []Tool
}

type emailsFile struct {
	Emails []Email `yaml:"emails"`
}

type forumFile struct {
	Welcome    string     `yaml:"welcome"`
	Categories []Category `yaml:"categories"`
}

type marketFile struct {
	Tools []Tool `yaml:"tools"`
}

// Load parses the embedded content files.
func Load() (*Library, error) {
	var emails emailsFile
	if err := parseFile("data/emails.yml", &emails); err != nil {
		return nil, err
	}
	var forum forumFile
	if err := parseFile("data/forum.yml", &forum); err != nil {
		return nil, err
	}
	var market marketFile
	if err := parseFile("data/market.yml", &market); err != nil {
		return nil, err
	}

	return &Library{
		Emails:     emails.Emails,
		Welcome:    forum.Welcome,
		Categories: forum.Categories,
		Tools:      market.Tools,
	}, nil
}

func parseFile(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("content: cannot read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("content: cannot parse %s: %w", name, err)
	}
	return nil
}

// Personalize substitutes the player nickname into an email.
func (e Email) Personalize(nickname string) Email {
	e.Subject = strings.ReplaceAll(e.Subject, "{nickname}", nickname)
	e.Body = strings.ReplaceAll(e.Body, "{nickname}", nickname)
	return e
}

// EmailByID looks an email up, false when absent.
func (l *Library) EmailByID(id string) (Email, bool) {
	for _, e := range l.Emails {
		if e.ID == id {
			return e, true
		}
	}
	return Email{}, false
}

// AvailableEmails returns the emails visible given the completed missions,
// in narrative order. Briefing emails appear once their mission is unlocked;
// success emails appear once their mission is completed.
func (l *Library) AvailableEmails(unlocked, completed []string) []Email {
	unlockedSet := toSet(unlocked)
	completedSet := toSet(completed)

	var out []Email
	for _, e := range l.Emails {
		switch {
		case e.After != "":
			if completedSet[e.After] {
				out = append(out, e)
			}
		case e.Mission != "":
			if unlockedSet[e.Mission] {
				out = append(out, e)
			}
		default:
			out = append(out, e)
		}
	}
	return out
}

// ToolByID looks a market tool up, false when absent.
func (l *Library) ToolByID(id string) (Tool, bool) {
	for _, t := range l.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// Available reports whether the tool is purchasable given the completed
// missions.
func (t Tool) Available(completed []string) bool {
	if t.RequiresMission == "" {
		return true
	}
	return toSet(completed)[t.RequiresMission]
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
