package mission

import "github.com/cyberhero-game/cyberhero/internal/netsim"

func init() {
	Register("mission1", func() Mission { return NewRecon() })
}

// Recon is Mission 1: map the home network, then lock it down.
type Recon struct {
	base
	reportDone map[string]bool
}

// NewRecon returns a fresh Mission 1 tracker.
func NewRecon() *Recon {
	m := &Recon{reportDone: map[string]bool{}}
	m.id = "mission1"
	m.title = "Reconnaissance Reseau"
	m.briefing = "Un appareil inconnu s'est invite sur le reseau de la maison. " +
		"Cartographie le reseau avec le terminal, identifie chaque appareil, " +
		"puis bloque les services dangereux et isole l'intrus. Termine par un " +
		"audit et remplis le rapport de reconnaissance."
	m.rewards = Rewards{XP: 500, Badge: "Network Defender", Unlocks: "mission2"}
	m.objectives = []*Objective{
		{ID: "scan_network", Title: "Scanner le reseau", Description: "Lancer 'scan network' dans le terminal", Required: true,
			Hint: "La commande 'scan network' liste tous les appareils connectes."},
		{ID: "identify_devices", Title: "Identifier les appareils", Description: "Decouvrir les 5 appareils du reseau", Required: true, Target: 5,
			Hint: "Chaque appareil trouve par le scan compte. 'show devices' les resume."},
		{ID: "find_risky_ports", Title: "Trouver les ports a risque", Description: "Reperer les services dangereux exposes", Required: true,
			Hint: "Telnet (port 23) transmet tout en clair. Le scan le signale."},
		{ID: "block_risky_ports", Title: "Bloquer les ports a risque", Description: "Fermer chaque port dangereux avec 'block port'", Required: true,
			Hint: "'block port 23' ajoute une regle pare-feu sur tout le reseau."},
		{ID: "isolate_threats", Title: "Isoler les intrus", Description: "Isoler chaque appareil non identifie", Required: true,
			Hint: "'isolate device <MAC>' coupe un appareil du reseau."},
		{ID: "final_audit", Title: "Audit final", Description: "Obtenir le verdict RESEAU SECURISE", Required: true,
			Hint: "'audit system' verifie qu'il ne reste aucune menace."},
		{ID: "complete_report", Title: "Rapport de reconnaissance", Description: "Remplir le rapport avec les informations relevees", Required: true,
			Hint: "Tout est dans 'ipconfig /all' et 'arp -a'."},
	}
	return m
}

// Reset binds the tracker to a fresh environment.
func (m *Recon) Reset(env *Env) {
	m.env = env
	m.reportDone = map[string]bool{}
	for _, o := range m.objectives {
		o.Completed = false
		o.Progress = 0
	}
}

// Handle re-reads the terminal state on every terminal update.
func (m *Recon) Handle(ev Event) {
	if ev.Type != EventTerminalUpdate || m.env == nil || m.env.Shell == nil || m.env.Audit == nil {
		return
	}
	st := m.env.Shell

	if st.NetworkScanned {
		m.complete("scan_network")
	}

	devices := m.objective("identify_devices")
	devices.Progress = len(st.DiscoveredDevices)
	if devices.Progress >= devices.Target {
		devices.Completed = true
	}

	if st.NetworkScanned && len(m.env.Audit.RiskyPorts) > 0 {
		m.complete("find_risky_ports")
	}

	blocked := true
	for _, r := range m.env.Audit.RiskyPorts {
		if !st.BlockedPorts[r.Port] {
			blocked = false
			break
		}
	}
	if blocked && len(m.env.Audit.RiskyPorts) > 0 {
		m.complete("block_risky_ports")
	}

	isolated := true
	for _, d := range m.env.Audit.UntrustedDevices {
		if !st.IsolatedDevices[netsim.NormalizeMAC(d.MAC)] {
			isolated = false
			break
		}
	}
	if isolated && len(m.env.Audit.UntrustedDevices) > 0 {
		m.complete("isolate_threats")
	}

	if blocked && isolated && ranAudit(st.History.Entries()) {
		m.complete("final_audit")
	}
}

func ranAudit(history []string) bool {
	for _, line := range history {
		if line == "audit system" {
			return true
		}
	}
	return false
}

var reconReportFields = []string{
	"ip_address", "mac_address", "subnet_mask", "gateway", "device_count", "router_name",
}

// ReportFields returns the recon report field names in form order.
func (m *Recon) ReportFields() []string { return reconReportFields }

// ValidateReport checks the answers against the home network scenario.
func (m *Recon) ValidateReport(submitted map[string]string) map[string]bool {
	results := m.env.Net.Validate(submitted)
	for field, ok := range results {
		if ok {
			m.reportDone[field] = true
		}
	}
	if len(m.reportDone) == len(reconReportFields) {
		m.complete("complete_report")
	}
	return results
}
