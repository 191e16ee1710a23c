package capture

import (
	"bytes"
	"strings"
	"testing"
)

func TestIntrusionCaptureShape(t *testing.T) {
	c := NewIntrusionCapture(42)

	if len(c.Records) != 30 {
		t.Fatalf("expected 30 records, got %d", len(c.Records))
	}

	sus := c.Suspicious()
	if len(sus) != 5 {
		t.Fatalf("expected 5 suspicious records, got %d", len(sus))
	}
	for _, r := range sus {
		if r.SrcIP != IntruderIP {
			t.Errorf("suspicious packet %s has src %s, expected %s", r.ID, r.SrcIP, IntruderIP)
		}
	}
}

func TestIntrusionCaptureDeterministic(t *testing.T) {
	a := NewIntrusionCapture(7)
	b := NewIntrusionCapture(7)
	for i := range a.Records {
		if a.Records[i] != b.Records[i] {
			t.Fatalf("record %d differs across same-seed runs", i)
		}
	}
}

func TestThreatTypes(t *testing.T) {
	c := NewIntrusionCapture(1)
	got := c.ThreatTypes()
	want := []string{
		ThreatDiscovery,
		ThreatExfiltration,
		ThreatPortScan,
		ThreatPrinterExploit,
		ThreatTelnetScan,
	}
	if len(got) != len(want) {
		t.Fatalf("threat types = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("threat type %d = %s, expected %s", i, got[i], want[i])
		}
	}
}

func TestFilter(t *testing.T) {
	c := NewIntrusionCapture(3)

	tests := []struct {
		name  string
		query string
		check func(t *testing.T, got []Record)
	}{
		{"empty returns all", "", func(t *testing.T, got []Record) {
			if len(got) != len(c.Records) {
				t.Errorf("got %d records, expected %d", len(got), len(c.Records))
			}
		}},
		{"suspicious keyword", "suspicious", func(t *testing.T, got []Record) {
			if len(got) != 5 {
				t.Errorf("got %d records, expected 5", len(got))
			}
		}},
		{"intruder ip", IntruderIP, func(t *testing.T, got []Record) {
			if len(got) != 5 {
				t.Errorf("got %d records, expected 5", len(got))
			}
			for _, r := range got {
				if r.SrcIP != IntruderIP && r.DstIP != IntruderIP {
					t.Errorf("record %s does not involve the intruder", r.ID)
				}
			}
		}},
		{"protocol case insensitive", "dns", func(t *testing.T, got []Record) {
			if len(got) == 0 {
				t.Fatal("expected some DNS records")
			}
			for _, r := range got {
				if r.Protocol != "DNS" {
					t.Errorf("record %s protocol %s, expected DNS", r.ID, r.Protocol)
				}
			}
		}},
		{"exfil target", ExfilServerIP, func(t *testing.T, got []Record) {
			if len(got) != 1 || got[0].Threat != ThreatExfiltration {
				t.Errorf("expected exactly the exfiltration record, got %v", got)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, c.Filter(tc.query))
		})
	}
}

func TestByID(t *testing.T) {
	c := NewIntrusionCapture(5)
	want := c.Records[3]
	got, ok := c.ByID(strings.ToLower(want.ID))
	if !ok || got.ID != want.ID {
		t.Fatalf("ByID(%s) = %v, %v", want.ID, got, ok)
	}
	if _, ok := c.ByID("PKT_9999"); ok {
		t.Error("expected lookup miss for unknown ID")
	}
}

func TestForensicsPcapFile(t *testing.T) {
	p, err := NewForensicsPcap()
	if err != nil {
		t.Fatalf("NewForensicsPcap: %v", err)
	}

	if p.FrameLength() != 66 {
		t.Errorf("frame length = %d, expected 66", p.FrameLength())
	}
	if len(p.Bytes()) != 24+16+66 {
		t.Errorf("file length = %d, expected 106", len(p.Bytes()))
	}

	// pcapgo writes the little-endian magic.
	if !bytes.Equal(p.Bytes()[:4], []byte{0xd4, 0xc3, 0xb2, 0xa1}) {
		t.Errorf("magic = % x", p.Bytes()[:4])
	}

	frame := p.Frame()
	if !bytes.Equal(frame[0:6], []byte{0x00, 0x1e, 0xec, 0x26, 0xd2, 0xac}) {
		t.Errorf("dst MAC bytes = % x", frame[0:6])
	}
	if !bytes.Equal(frame[6:12], []byte{0x26, 0x02, 0x06, 0x49, 0x6b, 0x31}) {
		t.Errorf("src MAC bytes = % x", frame[6:12])
	}
	// EtherType IPv4.
	if frame[12] != 0x08 || frame[13] != 0x00 {
		t.Errorf("ethertype = % x", frame[12:14])
	}
	// IPv4 protocol field.
	if frame[23] != 0x06 {
		t.Errorf("ip protocol = %#x, expected 0x06", frame[23])
	}
	if !bytes.Equal(frame[26:30], []byte{0x2e, 0x69, 0x63, 0xa3}) {
		t.Errorf("src IP bytes = % x", frame[26:30])
	}
	if !bytes.Equal(frame[30:34], []byte{0xc0, 0xa8, 0x04, 0x02}) {
		t.Errorf("dst IP bytes = % x", frame[30:34])
	}
}

func TestForensicsAnswers(t *testing.T) {
	p, err := NewForensicsPcap()
	if err != nil {
		t.Fatalf("NewForensicsPcap: %v", err)
	}

	answers := p.Answers()
	want := map[string]string{
		"dest_mac":      "00:1e:ec:26:d2:ac",
		"src_mac":       "26:02:06:49:6b:31",
		"src_ip":        "46.105.99.163",
		"dest_ip":       "192.168.4.2",
		"protocol":      "TCP",
		"link_type":     "Ethernet",
		"packet_length": "66",
		"timestamp":     "15/06/2024",
	}
	for k, v := range want {
		if answers[k] != v {
			t.Errorf("answers[%s] = %q, expected %q", k, answers[k], v)
		}
	}
}

func TestValidateAnswer(t *testing.T) {
	p, err := NewForensicsPcap()
	if err != nil {
		t.Fatalf("NewForensicsPcap: %v", err)
	}

	tests := []struct {
		name     string
		field    string
		value    string
		expected bool
	}{
		{"mac with dashes", "dest_mac", "00-1E-EC-26-D2-AC", true},
		{"mac with colons upper", "src_mac", "26:02:06:49:6B:31", true},
		{"wrong mac", "dest_mac", "ff:ff:ff:ff:ff:ff", false},
		{"src ip", "src_ip", "46.105.99.163", true},
		{"dest ip padded", "dest_ip", " 192.168.4.2 ", true},
		{"protocol lowercase", "protocol", "tcp", true},
		{"wrong protocol", "protocol", "UDP", false},
		{"length", "packet_length", "66", true},
		{"unknown field", "ttl", "128", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ValidateAnswer(tc.field, tc.value); got != tc.expected {
				t.Errorf("ValidateAnswer(%s, %q) = %v, expected %v", tc.field, tc.value, got, tc.expected)
			}
		})
	}
}

func TestDumpCoversWholeFile(t *testing.T) {
	p, err := NewForensicsPcap()
	if err != nil {
		t.Fatalf("NewForensicsPcap: %v", err)
	}

	lines := p.Dump()
	if len(lines) != 7 {
		t.Fatalf("expected 7 dump lines for a 106 byte file, got %d", len(lines))
	}
	if lines[0].Section != "pcap_header" {
		t.Errorf("line 0 section = %s", lines[0].Section)
	}
	if lines[2].Section != "packet_header" {
		t.Errorf("line 2 section = %s", lines[2].Section)
	}
	if lines[3].Section != "packet_data" {
		t.Errorf("line 3 section = %s", lines[3].Section)
	}
	if !strings.HasPrefix(lines[0].Hex, "d4 c3 b2 a1") {
		t.Errorf("line 0 hex = %s", lines[0].Hex)
	}
	for _, l := range lines {
		if l.Note == "" {
			t.Errorf("line %04x has no annotation", l.Offset)
		}
	}

	text := p.DumpText()
	if !strings.Contains(text, "0060") {
		t.Errorf("dump text missing final offset:\n%s", text)
	}
}

// Annotations must sit on the row holding the bytes they describe.
func TestDumpNotesMatchBytes(t *testing.T) {
	p, err := NewForensicsPcap()
	if err != nil {
		t.Fatalf("NewForensicsPcap: %v", err)
	}
	lines := p.Dump()

	// TTL 128 and protocol 06 are file bytes 62-63, on the 0x0030 row.
	ttlRow := lines[3]
	if ttlRow.Offset != 0x0030 {
		t.Fatalf("row 3 offset = %#04x", ttlRow.Offset)
	}
	if !strings.HasSuffix(ttlRow.Hex, "80 06") {
		t.Errorf("0x0030 row should end with TTL and protocol bytes: %s", ttlRow.Hex)
	}
	if !strings.Contains(ttlRow.Note, "TTL") || !strings.Contains(ttlRow.Note, "06") {
		t.Errorf("0x0030 note should describe TTL and protocol: %q", ttlRow.Note)
	}

	// Source IP 46.105.99.163 is file bytes 66-69, on the 0x0040 row.
	ipRow := lines[4]
	if !strings.Contains(ipRow.Hex, "2e 69 63 a3") {
		t.Errorf("0x0040 row should carry the source IP bytes: %s", ipRow.Hex)
	}
	if !strings.Contains(ipRow.Note, "IP") {
		t.Errorf("0x0040 note should describe the IP addresses: %q", ipRow.Note)
	}
	if strings.Contains(ipRow.Note, "TTL") {
		t.Errorf("TTL annotation belongs on the previous row: %q", ipRow.Note)
	}

	// The last row is payload only.
	if !strings.Contains(lines[6].ASCII, "200") {
		t.Errorf("payload row ASCII = %q", lines[6].ASCII)
	}
	if !strings.Contains(lines[6].Note, "payload") {
		t.Errorf("payload row note = %q", lines[6].Note)
	}
}
