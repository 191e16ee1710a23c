// Package shell implements the in-game terminal: a small command parser,
// the command executor that drives the network-defense mission, and the
// canned nmap simulator.
package shell

import (
	"sort"
	"strings"
)

// Command is one parsed input line.
type Command struct {
	Name    string
	Args    []string
	Options map[string]string // "-p" -> "80", "--verbose" -> ""
}

// Parse tokenizes an input line into command, positional args and options.
// An option token starting with "-" consumes the following token as its
// value when that token is not itself an option.
func Parse(line string) Command {
	fields := strings.Fields(line)
	cmd := Command{Options: map[string]string{}}
	if len(fields) == 0 {
		return cmd
	}
	cmd.Name = strings.ToLower(fields[0])

	rest := fields[1:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if strings.HasPrefix(tok, "-") && tok != "-" {
			value := ""
			if i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
				value = rest[i+1]
				i++
			}
			cmd.Options[tok] = value
			continue
		}
		cmd.Args = append(cmd.Args, tok)
	}
	return cmd
}

// HasOption reports whether any of the given flags was passed.
func (c Command) HasOption(flags ...string) bool {
	for _, f := range flags {
		if _, ok := c.Options[f]; ok {
			return true
		}
	}
	return false
}

// Option returns the value of the first present flag.
func (c Command) Option(flags ...string) string {
	for _, f := range flags {
		if v, ok := c.Options[f]; ok {
			return v
		}
	}
	return ""
}

// History is a terminal input history with up/down navigation.
type History struct {
	entries []string
	cursor  int
}

// Add appends a line and resets the cursor past the end.
func (h *History) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
}

// Prev moves one step back and returns that entry.
func (h *History) Prev() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves one step forward; past the newest entry it returns an empty
// line so the prompt clears.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

// Entries returns the recorded lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded lines.
func (h *History) Len() int { return len(h.entries) }

// Suggest returns the known commands starting with the given prefix, sorted.
func Suggest(prefix string, known []string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}
	var out []string
	for _, k := range known {
		if strings.HasPrefix(k, prefix) && k != prefix {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
