// Package capture synthesizes the packet captures the missions are built
// around: the Mission 2 intrusion capture analysed in the sniffer, and the
// Mission 3 pcap file dissected byte by byte in the analyzer.
package capture

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Threat types present in the intrusion capture.
const (
	ThreatTelnetScan     = "telnet_scan"
	ThreatPortScan       = "port_scan"
	ThreatDiscovery      = "discovery"
	ThreatPrinterExploit = "printer_exploit"
	ThreatExfiltration   = "exfiltration"
)

// IntruderIP is the address behind every suspicious packet in the
// Mission 2 capture.
const IntruderIP = "192.168.1.66"

// ExfilServerIP is the external server the intruder exfiltrates to.
const ExfilServerIP = "185.234.72.100"

// Record is one packet row shown in the sniffer.
type Record struct {
	ID         string
	Timestamp  string
	SrcIP      string
	SrcPort    int
	DstIP      string
	DstPort    int
	Protocol   string
	Length     int
	Info       string
	Suspicious bool
	Threat     string // one of the Threat constants, empty for normal traffic
}

// Capture is the full Mission 2 packet list.
type Capture struct {
	Records []Record
}

var externalIPs = []string{"8.8.8.8", "142.250.74.110", "151.101.1.140", "104.16.123.96"}

var localIPs = []string{
	"192.168.1.120",
	"192.168.1.75",
	"192.168.1.155",
	"192.168.1.185",
	"192.168.1.220",
}

// suspicious packets are fixed; only their position among the normal
// traffic varies with the seed.
var suspiciousRecords = []Record{
	{
		SrcIP: IntruderIP, SrcPort: 54321, DstIP: "192.168.1.1", DstPort: 23,
		Protocol: "TCP", Length: 66,
		Info:       "SYN scan sur port Telnet",
		Suspicious: true, Threat: ThreatTelnetScan,
	},
	{
		SrcIP: IntruderIP, SrcPort: 54322, DstIP: "192.168.1.120", DstPort: 445,
		Protocol: "TCP", Length: 54,
		Info:       "Balayage de ports SMB",
		Suspicious: true, Threat: ThreatPortScan,
	},
	{
		SrcIP: IntruderIP, SrcPort: 0, DstIP: "192.168.1.255", DstPort: 0,
		Protocol: "ARP", Length: 342,
		Info:       "Broadcast de decouverte reseau",
		Suspicious: true, Threat: ThreatDiscovery,
	},
	{
		SrcIP: IntruderIP, SrcPort: 51234, DstIP: "192.168.1.220", DstPort: 9100,
		Protocol: "TCP", Length: 156,
		Info:       "Commandes PJL vers l'imprimante",
		Suspicious: true, Threat: ThreatPrinterExploit,
	},
	{
		SrcIP: IntruderIP, SrcPort: 443, DstIP: ExfilServerIP, DstPort: 4444,
		Protocol: "TCP", Length: 1248,
		Info:       "Exfiltration de donnees chiffrees",
		Suspicious: true, Threat: ThreatExfiltration,
	},
}

// NewIntrusionCapture builds the Mission 2 capture: seeded normal home
// traffic with the five fixed intruder packets interleaved.
func NewIntrusionCapture(seed int64) *Capture {
	rng := rand.New(rand.NewSource(seed))

	records := make([]Record, 0, 30)
	for i := 0; i < 25; i++ {
		records = append(records, normalRecord(rng))
	}
	records = append(records, suspiciousRecords...)

	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	for i := range records {
		records[i].ID = fmt.Sprintf("PKT_%04d", i+1)
		records[i].Timestamp = fmt.Sprintf("10:%02d:%02d", 15+i/60, i%60)
	}

	return &Capture{Records: records}
}

func normalRecord(rng *rand.Rand) Record {
	src := localIPs[rng.Intn(len(localIPs))]

	switch rng.Intn(4) {
	case 0: // DNS query
		return Record{
			SrcIP: src, SrcPort: 49152 + rng.Intn(16000), DstIP: "8.8.8.8", DstPort: 53,
			Protocol: "DNS", Length: 74 + rng.Intn(20),
			Info: "Standard query A www.google.com",
		}
	case 1: // HTTP request
		dst := externalIPs[rng.Intn(len(externalIPs))]
		return Record{
			SrcIP: src, SrcPort: 49152 + rng.Intn(16000), DstIP: dst, DstPort: 80,
			Protocol: "HTTP", Length: 200 + rng.Intn(400),
			Info: "GET / HTTP/1.1",
		}
	case 2: // ARP broadcast
		return Record{
			SrcIP: src, DstIP: "192.168.1.255",
			Protocol: "ARP", Length: 42,
			Info: "Who has 192.168.1.1?",
		}
	default: // TCP ack
		dst := externalIPs[rng.Intn(len(externalIPs))]
		return Record{
			SrcIP: src, SrcPort: 49152 + rng.Intn(16000), DstIP: dst, DstPort: 443,
			Protocol: "TCP", Length: 54 + rng.Intn(100),
			Info: "ACK",
		}
	}
}

// Filter returns the records matching the query. The query matches against
// protocol, addresses and info, case-insensitive; the keyword "suspicious"
// (or "suspect") selects the flagged packets. An empty query returns
// everything.
func (c *Capture) Filter(query string) []Record {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Records
	}
	if query == "suspicious" || query == "suspect" {
		return c.Suspicious()
	}

	var out []Record
	for _, r := range c.Records {
		if strings.Contains(strings.ToLower(r.Protocol), query) ||
			strings.Contains(r.SrcIP, query) ||
			strings.Contains(r.DstIP, query) ||
			strings.Contains(strings.ToLower(r.Info), query) {
			out = append(out, r)
		}
	}
	return out
}

// Suspicious returns only the intruder packets.
func (c *Capture) Suspicious() []Record {
	var out []Record
	for _, r := range c.Records {
		if r.Suspicious {
			out = append(out, r)
		}
	}
	return out
}

// ThreatTypes returns the distinct threat types in the capture, sorted.
func (c *Capture) ThreatTypes() []string {
	seen := make(map[string]bool)
	for _, r := range c.Records {
		if r.Threat != "" {
			seen[r.Threat] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ByID looks a record up by its packet ID.
func (c *Capture) ByID(id string) (Record, bool) {
	for _, r := range c.Records {
		if strings.EqualFold(r.ID, id) {
			return r, true
		}
	}
	return Record{}, false
}
