package netsim

import (
	"strings"
	"testing"
)

func TestNewNetworkFixedValues(t *testing.T) {
	n := New("Alice")

	if n.Player.Hostname != "Alice-PC" {
		t.Errorf("player hostname = %q, expected Alice-PC", n.Player.Hostname)
	}
	if n.Player.IP != "192.168.1.120" {
		t.Errorf("player IP = %q", n.Player.IP)
	}
	if n.Router.IP != "192.168.1.1" {
		t.Errorf("router IP = %q", n.Router.IP)
	}
	if n.Info.TotalDevices != 6 {
		t.Errorf("total devices = %d, expected 6", n.Info.TotalDevices)
	}
}

func TestNewNetworkDefaultNickname(t *testing.T) {
	n := New("")
	if n.Player.Hostname != "Player-PC" {
		t.Errorf("hostname = %q, expected Player-PC", n.Player.Hostname)
	}
}

func TestCommandOutputsContainKeyFacts(t *testing.T) {
	n := New("Alice")

	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{"ipconfig /all", n.IPConfigAll(), []string{"192.168.1.120", "00:15:00-2B-3A-D4", "255.255.255.0", "192.168.1.1"}},
		{"ipconfig", n.IPConfig(), []string{"192.168.1.120", "255.255.255.0", "192.168.1.1"}},
		{"ifconfig", n.IfConfig(), []string{"192.168.1.120", "192.168.1.255"}},
		{"arp -a", n.ARPTable(), []string{"192.168.1.1", "00:17:9A:2B:3C:4D", "192.168.1.75", "192.168.1.255"}},
		{"route print", n.RouteTable(), []string{"0.0.0.0", "192.168.1.0", "192.168.1.120"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, want := range tc.want {
				if !strings.Contains(tc.output, want) {
					t.Errorf("output missing %q:\n%s", want, tc.output)
				}
			}
		})
	}
}

func TestARPListsAllDevices(t *testing.T) {
	n := New("Alice")
	out := n.ARPTable()
	for _, d := range n.Devices {
		if !strings.Contains(out, d.IP) {
			t.Errorf("arp output missing device %s (%s)", d.Hostname, d.IP)
		}
	}
}

func TestValidate(t *testing.T) {
	n := New("Alice")

	tests := []struct {
		name     string
		key      string
		value    string
		expected bool
	}{
		{"correct ip", "ip_address", "192.168.1.120", true},
		{"ip with spaces", "ip_address", "  192.168.1.120  ", true},
		{"wrong ip", "ip_address", "192.168.1.1", false},
		{"mac with colons", "mac_address", "00:15:00:2B:3A:D4", true},
		{"mac with dashes", "mac_address", "00-15-00-2b-3a-d4", true},
		{"wrong mac", "mac_address", "AA:BB:CC:DD:EE:FF", false},
		{"correct gateway", "gateway", "192.168.1.1", true},
		{"correct mask", "subnet_mask", "255.255.255.0", true},
		{"correct count", "device_count", "6", true},
		{"count not a number", "device_count", "six", false},
		{"wrong count", "device_count", "5", false},
		{"router name case insensitive", "router_name", "HOME", true},
		{"wrong router name", "router_name", "dlink", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := n.Validate(map[string]string{tc.key: tc.value})
			if results[tc.key] != tc.expected {
				t.Errorf("Validate(%s=%q) = %v, expected %v", tc.key, tc.value, results[tc.key], tc.expected)
			}
		})
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(42).AuditNetwork()
	b := NewGenerator(42).AuditNetwork()

	if len(a.Devices) != len(b.Devices) {
		t.Fatalf("device counts differ: %d vs %d", len(a.Devices), len(b.Devices))
	}
	for i := range a.Devices {
		if a.Devices[i].MAC != b.Devices[i].MAC {
			t.Errorf("device %d MAC differs across same-seed runs", i)
		}
		if len(a.Devices[i].OpenPorts) != len(b.Devices[i].OpenPorts) {
			t.Errorf("device %d port count differs across same-seed runs", i)
		}
	}
}

func TestAuditNetworkShape(t *testing.T) {
	net := NewGenerator(1).AuditNetwork()

	if len(net.Devices) != 5 {
		t.Fatalf("expected 5 devices, got %d", len(net.Devices))
	}

	wantIPs := map[string]string{
		"Router":         "192.168.1.1",
		"PC-Principal":   "192.168.1.10",
		"Smartphone":     "192.168.1.20",
		"Camera-IP":      "192.168.1.30",
		"Device-Inconnu": "192.168.1.50",
	}
	for _, d := range net.Devices {
		if want := wantIPs[d.Name]; d.IP != want {
			t.Errorf("%s IP = %s, expected %s", d.Name, d.IP, want)
		}
	}

	// The unknown device is always untrusted.
	if len(net.UntrustedDevices) == 0 {
		t.Fatal("expected at least one untrusted device")
	}
	for _, d := range net.UntrustedDevices {
		if d.Trusted {
			t.Errorf("untrusted list contains trusted device %s", d.Name)
		}
	}

	// Every risky-port finding must point at a device that exposes Telnet.
	byName := make(map[string]AuditDevice)
	for _, d := range net.Devices {
		byName[d.Name] = d
	}
	for _, r := range net.RiskyPorts {
		if r.Port != TelnetPort {
			t.Errorf("risky port %d, expected %d", r.Port, TelnetPort)
		}
		if !byName[r.Device].HasPort(TelnetPort) {
			t.Errorf("risky finding for %s but device has no telnet port", r.Device)
		}
	}
}

func TestGeneratedPortsSorted(t *testing.T) {
	net := NewGenerator(7).AuditNetwork()
	for _, d := range net.Devices {
		for i := 1; i < len(d.OpenPorts); i++ {
			if d.OpenPorts[i-1] > d.OpenPorts[i] {
				t.Errorf("%s ports not sorted: %v", d.Name, d.OpenPorts)
			}
		}
	}
}

func TestPackets(t *testing.T) {
	gen := NewGenerator(3)
	net := gen.AuditNetwork()
	packets := gen.Packets(net, 15)

	if len(packets) != 15 {
		t.Fatalf("expected 15 packets, got %d", len(packets))
	}

	trusted := make(map[string]bool)
	for _, d := range net.Devices {
		trusted[d.IP] = d.Trusted
	}

	for _, p := range packets {
		if p.SrcIP == p.DstIP {
			t.Errorf("packet %s has identical src and dst", p.ID)
		}
		wantSuspicious := !trusted[p.SrcIP] || !trusted[p.DstIP]
		if p.Suspicious != wantSuspicious {
			t.Errorf("packet %s suspicious = %v, expected %v", p.ID, p.Suspicious, wantSuspicious)
		}
		if p.Protocol == "ICMP" && (p.SrcPort != 0 || p.DstPort != 0) {
			t.Errorf("ICMP packet %s has ports set", p.ID)
		}
		if p.Length < 60 || p.Length > 1500 {
			t.Errorf("packet %s length %d out of range", p.ID, p.Length)
		}
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct{ in, want string }{
		{"00-15-00-2b-3a-d4", "00:15:00:2B:3A:D4"},
		{"  aa:bb:cc:dd:ee:ff ", "AA:BB:CC:DD:EE:FF"},
	}
	for _, tc := range tests {
		if got := NormalizeMAC(tc.in); got != tc.want {
			t.Errorf("NormalizeMAC(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
