package netsim

import (
	"fmt"
	"math/rand"
	"sort"
)

// AuditDevice is a host produced for the Mission 1 security audit network.
type AuditDevice struct {
	Name      string
	IP        string
	MAC       string
	Type      string
	OpenPorts []int
	Trusted   bool
	Isolated  bool
}

// HasPort reports whether the device exposes the given port.
func (d AuditDevice) HasPort(port int) bool {
	for _, p := range d.OpenPorts {
		if p == port {
			return true
		}
	}
	return false
}

// RiskyPort is a dangerous exposed service found during generation.
type RiskyPort struct {
	Device  string
	IP      string
	Port    int
	Service string
}

// AuditNetwork is the generated Mission 1 scenario plus its vulnerability
// summary.
type AuditNetwork struct {
	ID               string
	Subnet           string
	Gateway          string
	Devices          []AuditDevice
	RiskyPorts       []RiskyPort
	UntrustedDevices []AuditDevice
}

// TelnetPort is the risky service the mission teaches the player to block.
const TelnetPort = 23

type deviceTemplate struct {
	name          string
	deviceType    string
	possiblePorts []int
	riskyPorts    []int
	trusted       bool
	hostID        int
}

var auditTemplates = []deviceTemplate{
	{name: "Router", deviceType: "router", possiblePorts: []int{22, 23, 80, 443, 8080}, riskyPorts: []int{23}, trusted: true, hostID: 1},
	{name: "PC-Principal", deviceType: "computer", possiblePorts: []int{22, 80, 443, 3389}, trusted: true, hostID: 10},
	{name: "Smartphone", deviceType: "mobile", possiblePorts: []int{443, 8080}, trusted: true, hostID: 20},
	{name: "Camera-IP", deviceType: "iot", possiblePorts: []int{23, 80, 554, 8080}, riskyPorts: []int{23}, trusted: true, hostID: 30},
	{name: "Device-Inconnu", deviceType: "unknown", possiblePorts: []int{23, 445, 3389}, riskyPorts: []int{23, 445}, trusted: false, hostID: 50},
}

// Generator produces seeded audit networks and display packets.
type Generator struct {
	rng  *rand.Rand
	base string
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		base: "192.168.1",
	}
}

func (g *Generator) mac() string {
	parts := make([]string, 6)
	for i := range parts {
		parts[i] = fmt.Sprintf("%02X", g.rng.Intn(256))
	}
	return parts[0] + ":" + parts[1] + ":" + parts[2] + ":" + parts[3] + ":" + parts[4] + ":" + parts[5]
}

func (g *Generator) device(t deviceTemplate) AuditDevice {
	// 2-3 ports from the template pool.
	n := 2 + g.rng.Intn(2)
	if n > len(t.possiblePorts) {
		n = len(t.possiblePorts)
	}
	perm := g.rng.Perm(len(t.possiblePorts))
	ports := make([]int, 0, n+1)
	for _, idx := range perm[:n] {
		ports = append(ports, t.possiblePorts[idx])
	}

	// Vulnerable templates usually end up with a risky port exposed.
	if len(t.riskyPorts) > 0 && g.rng.Float64() > 0.3 {
		risky := t.riskyPorts[g.rng.Intn(len(t.riskyPorts))]
		found := false
		for _, p := range ports {
			if p == risky {
				found = true
				break
			}
		}
		if !found {
			ports = append(ports, risky)
		}
	}
	sort.Ints(ports)

	return AuditDevice{
		Name:      t.name,
		IP:        fmt.Sprintf("%s.%d", g.base, t.hostID),
		MAC:       g.mac(),
		Type:      t.deviceType,
		OpenPorts: ports,
		Trusted:   t.trusted,
	}
}

// AuditNetwork generates the Mission 1 network: router, player PC, phone,
// IoT camera and an unknown device, plus the derived vulnerability summary.
func (g *Generator) AuditNetwork() *AuditNetwork {
	net := &AuditNetwork{
		ID:      fmt.Sprintf("net_%04d", 1000+g.rng.Intn(9000)),
		Subnet:  g.base + ".0/24",
		Gateway: g.base + ".1",
	}

	for _, t := range auditTemplates {
		net.Devices = append(net.Devices, g.device(t))
	}

	for _, d := range net.Devices {
		if d.HasPort(TelnetPort) {
			net.RiskyPorts = append(net.RiskyPorts, RiskyPort{
				Device:  d.Name,
				IP:      d.IP,
				Port:    TelnetPort,
				Service: "Telnet",
			})
		}
		if !d.Trusted {
			net.UntrustedDevices = append(net.UntrustedDevices, d)
		}
	}

	return net
}

// DisplayPacket is a lightly randomized packet shown in Packet Lab.
type DisplayPacket struct {
	ID         string
	Timestamp  string
	SrcIP      string
	SrcPort    int
	DstIP      string
	DstPort    int
	Protocol   string
	Length     int
	Payload    string
	Suspicious bool
}

// Packets generates count display packets between the audit network devices.
// Traffic touching an untrusted device is tagged suspicious.
func (g *Generator) Packets(net *AuditNetwork, count int) []DisplayPacket {
	protocols := []string{"TCP", "UDP", "ICMP"}
	packets := make([]DisplayPacket, 0, count)

	for i := 0; i < count; i++ {
		src := net.Devices[g.rng.Intn(len(net.Devices))]
		dst := src
		for dst.IP == src.IP {
			dst = net.Devices[g.rng.Intn(len(net.Devices))]
		}

		proto := protocols[g.rng.Intn(len(protocols))]
		var srcPort, dstPort int
		if proto != "ICMP" {
			if len(src.OpenPorts) > 0 {
				srcPort = src.OpenPorts[g.rng.Intn(len(src.OpenPorts))]
			} else {
				srcPort = 1024 + g.rng.Intn(64511)
			}
			if len(dst.OpenPorts) > 0 {
				dstPort = dst.OpenPorts[g.rng.Intn(len(dst.OpenPorts))]
			} else {
				dstPort = 1 + g.rng.Intn(1024)
			}
		}

		suspicious := !src.Trusted || !dst.Trusted
		payload := "NORMAL TRAFFIC"
		if suspicious {
			payload = "SCAN ATTEMPT"
			if dstPort == TelnetPort {
				payload = "LOGIN ATTEMPT: admin:admin"
			}
		}

		packets = append(packets, DisplayPacket{
			ID:         fmt.Sprintf("PKT_%04d", i),
			Timestamp:  fmt.Sprintf("2024-01-15 10:%02d:00", i),
			SrcIP:      src.IP,
			SrcPort:    srcPort,
			DstIP:      dst.IP,
			DstPort:    dstPort,
			Protocol:   proto,
			Length:     60 + g.rng.Intn(1441),
			Payload:    payload,
			Suspicious: suspicious,
		})
	}

	return packets
}
