// Package mission provides a global registry for mission trackers.
// Missions register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package mission

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cyberhero-game/cyberhero/internal/capture"
	"github.com/cyberhero-game/cyberhero/internal/netsim"
	"github.com/cyberhero-game/cyberhero/internal/shell"
)

// Objective is one step of a mission shown in the HUD.
type Objective struct {
	ID          string
	Title       string
	Description string
	Hint        string
	Required    bool
	Completed   bool
	Progress    int
	Target      int // 0 when the objective is a simple checkbox
}

// Rewards is what completing a mission grants the player.
type Rewards struct {
	XP      int
	Credits int
	Level   string // new reputation level, empty to keep the current one
	Badge   string
	Unlocks string // mission ID unlocked next
}

// Event types the platform feeds into missions.
const (
	EventToolDownloaded   = "tool_downloaded"   // value: tool ID
	EventAppOpened        = "app_opened"        // value: app ID
	EventSuspiciousIP     = "suspicious_ip"     // value: the IP the player flagged
	EventThreatIdentified = "threat_identified" // value: threat type
	EventFieldDecoded     = "field_decoded"     // value: report field name
	EventTerminalUpdate   = "terminal_update"   // no value; mission re-reads Env
)

// Event is one gameplay fact pushed from the platform into a mission.
type Event struct {
	Type  string
	Value string
}

// Env is the simulated world a mission validates against.
type Env struct {
	Net     *netsim.Network
	Audit   *netsim.AuditNetwork
	Shell   *shell.State
	Capture *capture.Capture
	Pcap    *capture.Pcap
}

// Mission is the interface all mission trackers implement.
// Trackers contain pure logic with no UI dependencies; the platform pushes
// events in and renders objectives out.
type Mission interface {
	// ID returns the mission identifier (e.g. "mission1").
	ID() string

	// Title returns the display name.
	Title() string

	// Briefing returns the professor's mission description.
	Briefing() string

	// Reset binds the mission to a fresh environment and clears progress.
	Reset(env *Env)

	// Handle consumes one gameplay event and updates objective state.
	Handle(ev Event)

	// Objectives returns the current objective list, in display order.
	Objectives() []Objective

	// ReportFields returns the field names of the completion report.
	ReportFields() []string

	// ValidateReport checks the submitted report fields; all required
	// fields valid completes the report objective.
	ValidateReport(submitted map[string]string) map[string]bool

	// Completed reports whether every required objective is done.
	Completed() bool

	// CompletionPercent returns required-objective completion in 0..100.
	CompletionPercent() int

	// Rewards returns what completion grants.
	Rewards() Rewards

	// Hint returns the hint for an objective, empty when unknown.
	Hint(objectiveID string) string
}

// Info contains metadata about a registered mission.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new instance of a mission.
type Factory func() Mission

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mission factory to the registry.
// Typically called from a mission's init() function.
// Panics if a mission with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("mission: %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered missions, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a mission by its ID.
func Create(id string) (Mission, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("mission: unknown mission %q", id)
	}
	return f(), nil
}

// Exists checks if a mission with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// base carries the bookkeeping shared by every tracker.
type base struct {
	id         string
	title      string
	briefing   string
	objectives []*Objective
	rewards    Rewards
	env        *Env
}

func (b *base) ID() string       { return b.id }
func (b *base) Title() string    { return b.title }
func (b *base) Briefing() string { return b.briefing }
func (b *base) Rewards() Rewards { return b.rewards }

func (b *base) Objectives() []Objective {
	out := make([]Objective, len(b.objectives))
	for i, o := range b.objectives {
		out[i] = *o
	}
	return out
}

func (b *base) objective(id string) *Objective {
	for _, o := range b.objectives {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (b *base) complete(id string) {
	if o := b.objective(id); o != nil {
		o.Completed = true
	}
}

func (b *base) Completed() bool {
	for _, o := range b.objectives {
		if o.Required && !o.Completed {
			return false
		}
	}
	return true
}

func (b *base) CompletionPercent() int {
	var required, done int
	for _, o := range b.objectives {
		if !o.Required {
			continue
		}
		required++
		if o.Completed {
			done++
		}
	}
	if required == 0 {
		return 100
	}
	return done * 100 / required
}

func (b *base) Hint(objectiveID string) string {
	if o := b.objective(objectiveID); o != nil {
		return o.Hint
	}
	return ""
}
