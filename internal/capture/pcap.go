package capture

import (
	"bytes"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/cyberhero-game/cyberhero/internal/netsim"
)

// Fixed frame the forensics mission is validated against.
var (
	forensicsDstMAC = net.HardwareAddr{0x00, 0x1e, 0xec, 0x26, 0xd2, 0xac}
	forensicsSrcMAC = net.HardwareAddr{0x26, 0x02, 0x06, 0x49, 0x6b, 0x31}
	forensicsSrcIP  = net.IPv4(46, 105, 99, 163)
	forensicsDstIP  = net.IPv4(192, 168, 4, 2)
	forensicsTime   = time.Date(2024, time.June, 15, 14, 32, 8, 0, time.UTC)
)

// DumpLine is one 16-byte row of the annotated hex dump.
type DumpLine struct {
	Offset  int
	Hex     string
	ASCII   string
	Section string // "pcap_header", "packet_header" or "packet_data"
	Note    string
}

// Pcap is the Mission 3 capture file plus its dissection.
type Pcap struct {
	data  []byte // full file: global header, record header, frame
	frame []byte
}

// NewForensicsPcap serializes the fixed forensics frame into a complete
// pcap file.
func NewForensicsPcap() (*Pcap, error) {
	eth := layers.Ethernet{
		SrcMAC:       forensicsSrcMAC,
		DstMAC:       forensicsDstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      128,
		Id:       0x1a2b,
		Flags:    layers.IPv4DontFragment,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    forensicsSrcIP,
		DstIP:    forensicsDstIP,
	}
	tcp := layers.TCP{
		SrcPort: 443,
		DstPort: 52100,
		Seq:     0x3d24a9f1,
		Ack:     0x0000f5c2,
		ACK:     true,
		Window:  501,
	}
	if err := tcp.SetNetworkLayerForChecksum(&ip); err != nil {
		return nil, fmt.Errorf("capture: cannot bind checksum layer: %w", err)
	}

	// 14 + 20 + 20 + 12 payload bytes = 66 byte frame.
	payload := gopacket.Payload([]byte("HTTP/1.1 200"))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &ip, &tcp, payload); err != nil {
		return nil, fmt.Errorf("capture: cannot serialize frame: %w", err)
	}
	frame := buf.Bytes()

	var file bytes.Buffer
	w := pcapgo.NewWriter(&file)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("capture: cannot write pcap header: %w", err)
	}
	ci := gopacket.CaptureInfo{
		Timestamp:     forensicsTime,
		CaptureLength: len(frame),
		Length:        len(frame),
	}
	if err := w.WritePacket(ci, frame); err != nil {
		return nil, fmt.Errorf("capture: cannot write pcap record: %w", err)
	}

	return &Pcap{data: file.Bytes(), frame: frame}, nil
}

// Bytes returns the complete pcap file.
func (p *Pcap) Bytes() []byte { return p.data }

// Frame returns the captured frame without the pcap framing.
func (p *Pcap) Frame() []byte { return p.frame }

// FrameLength returns the captured frame length in bytes.
func (p *Pcap) FrameLength() int { return len(p.frame) }

const (
	globalHeaderLen = 24
	recordHeaderLen = 16
)

var dumpNotes = map[int]string{
	0x0000: "Magic number d4c3b2a1 + version 2.4",
	0x0010: "Snaplen, link type 1 (Ethernet), then record timestamp",
	0x0020: "Captured/original length, then destination MAC",
	0x0030: "Source MAC, EtherType 0800, IPv4 header up to TTL and protocol 06 (TCP)",
	0x0040: "Header checksum, source and destination IP, then TCP ports",
	0x0050: "Sequence and acknowledgment numbers, TCP flags, window",
	0x0060: "HTTP payload",
}

func sectionFor(offset int) string {
	switch {
	case offset < globalHeaderLen:
		return "pcap_header"
	case offset < globalHeaderLen+recordHeaderLen:
		return "packet_header"
	default:
		return "packet_data"
	}
}

// Dump renders the annotated hex dump of the whole file, 16 bytes per line.
func (p *Pcap) Dump() []DumpLine {
	var lines []DumpLine
	for off := 0; off < len(p.data); off += 16 {
		end := off + 16
		if end > len(p.data) {
			end = len(p.data)
		}
		chunk := p.data[off:end]

		var hexB, asciiB strings.Builder
		for i, b := range chunk {
			if i > 0 {
				hexB.WriteByte(' ')
				if i == 8 {
					hexB.WriteByte(' ')
				}
			}
			fmt.Fprintf(&hexB, "%02x", b)
			if b >= 0x20 && b < 0x7f {
				asciiB.WriteByte(b)
			} else {
				asciiB.WriteByte('.')
			}
		}

		lines = append(lines, DumpLine{
			Offset:  off,
			Hex:     hexB.String(),
			ASCII:   asciiB.String(),
			Section: sectionFor(off),
			Note:    dumpNotes[off],
		})
	}
	return lines
}

// DumpText renders the dump as plain text for the terminal.
func (p *Pcap) DumpText() string {
	var b strings.Builder
	for _, l := range p.Dump() {
		fmt.Fprintf(&b, "%04x  %-49s  %s\n", l.Offset, l.Hex, l.ASCII)
	}
	return b.String()
}

// Answers returns the canonical field values the analyzer report is
// checked against.
func (p *Pcap) Answers() map[string]string {
	return map[string]string{
		"dest_mac":      forensicsDstMAC.String(),
		"src_mac":       forensicsSrcMAC.String(),
		"src_ip":        forensicsSrcIP.String(),
		"dest_ip":       forensicsDstIP.String(),
		"protocol":      "TCP",
		"link_type":     "Ethernet",
		"packet_length": fmt.Sprintf("%d", len(p.frame)),
		"timestamp":     forensicsTime.Format("02/01/2006"),
	}
}

// ValidateAnswer checks one submitted field. MAC fields tolerate dash or
// colon separators; everything is case-insensitive.
func (p *Pcap) ValidateAnswer(field, value string) bool {
	expected, ok := p.Answers()[field]
	if !ok {
		return false
	}
	value = strings.TrimSpace(value)
	switch field {
	case "dest_mac", "src_mac":
		return netsim.NormalizeMAC(value) == netsim.NormalizeMAC(expected)
	default:
		return strings.EqualFold(value, expected)
	}
}

// ValidateAnswers checks every submitted field at once.
func (p *Pcap) ValidateAnswers(submitted map[string]string) map[string]bool {
	results := make(map[string]bool, len(submitted))
	for field, value := range submitted {
		results[field] = p.ValidateAnswer(field, value)
	}
	return results
}
