package mission

func init() {
	Register("mission3", func() Mission { return NewForensics() })
}

// Forensics is Mission 3: dissect a pcap file byte by byte.
type Forensics struct {
	base
	reportDone map[string]bool
}

var forensicsReportFields = []string{
	"dest_mac", "src_mac", "src_ip", "dest_ip", "protocol", "packet_length",
}

// NewForensics returns a fresh Mission 3 tracker.
func NewForensics() *Forensics {
	m := &Forensics{reportDone: map[string]bool{}}
	m.id = "mission3"
	m.title = "Autopsie d'un Paquet"
	m.briefing = "Un seul paquet, et tout ce qu'il faut savoir est dedans. " +
		"Telecharge l'analyseur PCAP, ouvre le fichier suspect et lis les " +
		"en-tetes directement dans l'hexadecimal : adresses MAC, adresses IP, " +
		"protocole. Remplis le rapport d'expertise."
	m.rewards = Rewards{XP: 500, Credits: 200, Level: "Membre de Confiance", Badge: "Packet Forensics Expert", Unlocks: "mission4"}
	m.objectives = []*Objective{
		{ID: "download_pcap_analyzer", Title: "Telecharger l'analyseur PCAP", Description: "Acheter l'outil sur le marche du forum", Required: true,
			Hint: "L'analyseur PCAP coute 150 credits sur le marche."},
		{ID: "open_pcap_analyzer", Title: "Ouvrir le fichier suspect", Description: "Charger suspicious_packet.pcap dans l'analyseur", Required: true,
			Hint: "Le fichier est en piece jointe du dernier email du professeur."},
		{ID: "decode_fields", Title: "Decoder les en-tetes", Description: "Extraire les 6 champs du paquet depuis l'hexadecimal", Required: true, Target: len(forensicsReportFields),
			Hint: "L'en-tete Ethernet commence juste apres les 16 octets d'en-tete d'enregistrement."},
		{ID: "complete_report", Title: "Rapport d'expertise", Description: "Soumettre les champs decodes", Required: true,
			Hint: "MAC destination d'abord : les 6 premiers octets de la trame."},
	}
	return m
}

// Reset binds the tracker to a fresh environment.
func (m *Forensics) Reset(env *Env) {
	m.env = env
	m.reportDone = map[string]bool{}
	for _, o := range m.objectives {
		o.Completed = false
		o.Progress = 0
	}
}

// Handle consumes analyzer and market events.
func (m *Forensics) Handle(ev Event) {
	switch ev.Type {
	case EventToolDownloaded:
		if ev.Value == "pcap_analyzer" {
			m.complete("download_pcap_analyzer")
		}
	case EventAppOpened:
		if ev.Value == "pcap_analyzer" {
			m.complete("open_pcap_analyzer")
		}
	case EventFieldDecoded:
		m.markField(ev.Value)
	}
}

func (m *Forensics) markField(field string) {
	for _, f := range forensicsReportFields {
		if f == field {
			m.reportDone[field] = true
		}
	}
	o := m.objective("decode_fields")
	o.Progress = len(m.reportDone)
	if o.Progress >= o.Target {
		o.Completed = true
	}
}

// ReportFields returns the expertise report field names in form order.
func (m *Forensics) ReportFields() []string { return forensicsReportFields }

// ValidateReport checks the answers against the pcap file contents.
func (m *Forensics) ValidateReport(submitted map[string]string) map[string]bool {
	results := m.env.Pcap.ValidateAnswers(submitted)
	for field, ok := range results {
		if ok {
			m.markField(field)
		}
	}
	if len(m.reportDone) == len(forensicsReportFields) {
		m.complete("complete_report")
	}
	return results
}
