package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Human labels for report fields, shared by every mission form.
var fieldLabels = map[string]string{
	"ip_address":    "Adresse IP",
	"mac_address":   "Adresse MAC",
	"subnet_mask":   "Masque de sous-reseau",
	"gateway":       "Passerelle",
	"device_count":  "Nombre d'appareils",
	"router_name":   "Nom du routeur",
	"suspicious_ip": "IP de l'intrus",
	"threat_count":  "Nombre de menaces",
	"exfil_server":  "Serveur d'exfiltration",
	"dest_mac":      "MAC destination",
	"src_mac":       "MAC source",
	"src_ip":        "IP source",
	"dest_ip":       "IP destination",
	"protocol":      "Protocole",
	"packet_length": "Taille du paquet",
}

// ReportForm is a reusable mission report: one text input per field,
// validated live against the mission's expected answers.
type ReportForm struct {
	title    string
	fields   []string
	inputs   []textinput.Model
	results  map[string]bool
	focus    int
	validate func(map[string]string) map[string]bool

	submitted bool
	passed    bool
	closed    bool
}

// NewReportForm builds a form for the given fields.
func NewReportForm(title string, fields []string, validate func(map[string]string) map[string]bool) ReportForm {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[f]
		ti.CharLimit = 40
		ti.Width = 28
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return ReportForm{
		title:    title,
		fields:   fields,
		inputs:   inputs,
		results:  map[string]bool{},
		validate: validate,
	}
}

// Update handles key input for the form.
func (f ReportForm) Update(msg tea.Msg) (ReportForm, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch key.String() {
	case "esc":
		f.closed = true
		return f, nil
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.inputs)
		return f.refocus(), nil
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
		return f.refocus(), nil
	case "enter":
		return f.submit(), nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f ReportForm) refocus() ReportForm {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return f
}

func (f ReportForm) submit() ReportForm {
	submitted := make(map[string]string, len(f.fields))
	for i, field := range f.fields {
		submitted[field] = f.inputs[i].Value()
	}
	f.results = f.validate(submitted)
	f.submitted = true

	f.passed = true
	for _, field := range f.fields {
		if !f.results[field] {
			f.passed = false
			break
		}
	}
	return f
}

// View renders the form.
func (f ReportForm) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")

	for i, field := range f.fields {
		label := fmt.Sprintf("%-24s", fieldLabels[field])
		mark := "   "
		if f.submitted {
			if f.results[field] {
				mark = okStyle.Render(" ok")
			} else {
				mark = errStyle.Render(" !!")
			}
		}
		b.WriteString(fmt.Sprintf("  %s %s%s\n", label, f.inputs[i].View(), mark))
	}

	b.WriteString("\n")
	if f.submitted && f.passed {
		b.WriteString(okStyle.Render("Rapport valide !"))
	} else if f.submitted {
		b.WriteString(errStyle.Render("Certains champs sont incorrects. Corrige et soumets a nouveau."))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Tab : champ suivant  |  Entree : soumettre  |  Esc : fermer"))
	return paneStyle.Render(b.String())
}

// Passed reports whether the last submission validated every field.
func (f ReportForm) Passed() bool { return f.submitted && f.passed }

// Closed reports whether the player dismissed the form.
func (f ReportForm) Closed() bool { return f.closed }
