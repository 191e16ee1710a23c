package mission

import (
	"strconv"
	"strings"

	"github.com/cyberhero-game/cyberhero/internal/capture"
)

func init() {
	Register("mission2", func() Mission { return NewIntrusion() })
}

// Intrusion is Mission 2: find the intruder in a packet capture.
type Intrusion struct {
	base
	threats    map[string]bool
	reportDone map[string]bool
}

// NewIntrusion returns a fresh Mission 2 tracker.
func NewIntrusion() *Intrusion {
	m := &Intrusion{threats: map[string]bool{}, reportDone: map[string]bool{}}
	m.id = "mission2"
	m.title = "Detection d'Intrusion"
	m.briefing = "Le professeur a capture le trafic du reseau pendant l'attaque. " +
		"Telecharge Wireshark sur le marche, ouvre la capture, trouve l'adresse " +
		"de l'intrus et identifie chacune de ses cinq actions malveillantes."
	m.rewards = Rewards{XP: 300, Level: "Respectable", Badge: "Packet Detective", Unlocks: "mission3"}
	m.objectives = []*Objective{
		{ID: "download_wireshark", Title: "Telecharger Wireshark", Description: "Recuperer l'outil sur le marche du forum", Required: true,
			Hint: "L'onglet Marche du navigateur propose Wireshark gratuitement."},
		{ID: "open_wireshark", Title: "Ouvrir la capture", Description: "Lancer l'analyseur de paquets", Required: true,
			Hint: "L'icone Net Scanner du bureau ouvre la capture du professeur."},
		{ID: "find_suspicious_ip", Title: "Trouver l'intrus", Description: "Identifier l'adresse IP source des paquets suspects", Required: true,
			Hint: "Filtre sur 'suspicious' : une seule adresse revient toujours."},
		{ID: "identify_threats", Title: "Identifier les menaces", Description: "Qualifier les 5 actions de l'attaquant", Required: true, Target: 5,
			Hint: "Ouvre chaque paquet suspect : scan, decouverte, exploitation, exfiltration..."},
		{ID: "complete_report", Title: "Rapport d'incident", Description: "Remplir le rapport d'analyse", Required: true,
			Hint: "L'adresse de l'intrus, le nombre de menaces et le serveur d'exfiltration."},
	}
	return m
}

// Reset binds the tracker to a fresh environment.
func (m *Intrusion) Reset(env *Env) {
	m.env = env
	m.threats = map[string]bool{}
	m.reportDone = map[string]bool{}
	for _, o := range m.objectives {
		o.Completed = false
		o.Progress = 0
	}
}

// Handle consumes sniffer and market events.
func (m *Intrusion) Handle(ev Event) {
	switch ev.Type {
	case EventToolDownloaded:
		if ev.Value == "wireshark" {
			m.complete("download_wireshark")
		}
	case EventAppOpened:
		if ev.Value == "wireshark" {
			m.complete("open_wireshark")
		}
	case EventSuspiciousIP:
		if ev.Value == capture.IntruderIP {
			m.complete("find_suspicious_ip")
		}
	case EventThreatIdentified:
		if !validThreat(ev.Value) {
			return
		}
		m.threats[ev.Value] = true
		o := m.objective("identify_threats")
		o.Progress = len(m.threats)
		if o.Progress >= o.Target {
			o.Completed = true
		}
	}
}

func validThreat(t string) bool {
	switch t {
	case capture.ThreatTelnetScan, capture.ThreatPortScan, capture.ThreatDiscovery,
		capture.ThreatPrinterExploit, capture.ThreatExfiltration:
		return true
	}
	return false
}

var intrusionReportFields = []string{"suspicious_ip", "threat_count", "exfil_server"}

// ReportFields returns the incident report field names in form order.
func (m *Intrusion) ReportFields() []string { return intrusionReportFields }

// ValidateReport checks the incident report answers.
func (m *Intrusion) ValidateReport(submitted map[string]string) map[string]bool {
	results := make(map[string]bool, len(submitted))
	for field, value := range submitted {
		value = strings.TrimSpace(value)
		switch field {
		case "suspicious_ip":
			results[field] = value == capture.IntruderIP
		case "threat_count":
			n, err := strconv.Atoi(value)
			results[field] = err == nil && n == 5
		case "exfil_server":
			results[field] = value == capture.ExfilServerIP
		}
		if results[field] {
			m.reportDone[field] = true
		}
	}
	if len(m.reportDone) == len(intrusionReportFields) {
		m.complete("complete_report")
	}
	return results
}
