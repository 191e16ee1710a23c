package mission

import (
	"strconv"
	"testing"

	"github.com/cyberhero-game/cyberhero/internal/capture"
	"github.com/cyberhero-game/cyberhero/internal/netsim"
	"github.com/cyberhero-game/cyberhero/internal/shell"
)

func TestRegistry(t *testing.T) {
	infos := List()
	if len(infos) != 3 {
		t.Fatalf("expected 3 registered missions, got %d", len(infos))
	}
	for i, want := range []string{"mission1", "mission2", "mission3"} {
		if infos[i].ID != want {
			t.Errorf("mission %d = %s, expected %s", i, infos[i].ID, want)
		}
		if !Exists(want) {
			t.Errorf("Exists(%s) = false", want)
		}
	}

	m, err := Create("mission1")
	if err != nil {
		t.Fatalf("Create(mission1): %v", err)
	}
	if m.ID() != "mission1" {
		t.Errorf("created mission ID = %s", m.ID())
	}

	if _, err := Create("mission99"); err == nil {
		t.Error("expected error for unknown mission")
	}
}

func newTestEnv(t *testing.T) (*Env, *shell.Executor) {
	t.Helper()
	gen := netsim.NewGenerator(42)
	audit := gen.AuditNetwork()
	exec := shell.NewExecutor(netsim.New("Alice"), audit, gen.Packets(audit, 10))
	pcap, err := capture.NewForensicsPcap()
	if err != nil {
		t.Fatalf("NewForensicsPcap: %v", err)
	}
	return &Env{
		Net:     exec.Net,
		Audit:   audit,
		Shell:   exec.State,
		Capture: capture.NewIntrusionCapture(1),
		Pcap:    pcap,
	}, exec
}

func TestReconProgress(t *testing.T) {
	env, exec := newTestEnv(t)
	m := NewRecon()
	m.Reset(env)

	if m.Completed() {
		t.Fatal("fresh mission already completed")
	}

	exec.Execute("scan network")
	m.Handle(Event{Type: EventTerminalUpdate})

	byID := objectivesByID(m)
	if !byID["scan_network"].Completed {
		t.Error("scan_network not completed after scan")
	}
	if !byID["identify_devices"].Completed || byID["identify_devices"].Progress != 5 {
		t.Errorf("identify_devices = %+v", byID["identify_devices"])
	}
	if !byID["find_risky_ports"].Completed {
		t.Error("find_risky_ports not completed after scan")
	}
	if byID["block_risky_ports"].Completed {
		t.Error("block_risky_ports completed too early")
	}

	for _, r := range env.Audit.RiskyPorts {
		exec.Execute("block port " + strconv.Itoa(r.Port))
	}
	for _, d := range env.Audit.UntrustedDevices {
		exec.Execute("isolate device " + d.MAC)
	}
	exec.Execute("audit system")
	m.Handle(Event{Type: EventTerminalUpdate})

	byID = objectivesByID(m)
	for _, id := range []string{"block_risky_ports", "isolate_threats", "final_audit"} {
		if !byID[id].Completed {
			t.Errorf("%s not completed after remediation", id)
		}
	}
	if m.Completed() {
		t.Error("mission completed before the report")
	}

	results := m.ValidateReport(map[string]string{
		"ip_address":   "192.168.1.120",
		"mac_address":  "00-15-00-2b-3a-d4",
		"subnet_mask":  "255.255.255.0",
		"gateway":      "192.168.1.1",
		"device_count": "6",
		"router_name":  "home",
	})
	for field, ok := range results {
		if !ok {
			t.Errorf("report field %s rejected", field)
		}
	}
	if !m.Completed() {
		t.Error("mission not completed after a full valid report")
	}
	if m.CompletionPercent() != 100 {
		t.Errorf("completion = %d%%", m.CompletionPercent())
	}
}

func TestReconReportAcceptsPartialRetries(t *testing.T) {
	env, exec := newTestEnv(t)
	m := NewRecon()
	m.Reset(env)
	_ = exec

	first := m.ValidateReport(map[string]string{"ip_address": "192.168.1.120", "gateway": "wrong"})
	if !first["ip_address"] || first["gateway"] {
		t.Fatalf("unexpected first pass: %v", first)
	}

	// A later submission only needs to fix the wrong fields.
	m.ValidateReport(map[string]string{
		"mac_address": "00:15:00:2B:3A:D4", "subnet_mask": "255.255.255.0",
		"gateway": "192.168.1.1", "device_count": "6", "router_name": "HOME",
	})
	if !objectivesByID(m)["complete_report"].Completed {
		t.Error("complete_report not set after all fields eventually valid")
	}
}

func TestIntrusionProgress(t *testing.T) {
	env, _ := newTestEnv(t)
	m := NewIntrusion()
	m.Reset(env)

	m.Handle(Event{Type: EventToolDownloaded, Value: "wireshark"})
	m.Handle(Event{Type: EventAppOpened, Value: "wireshark"})
	m.Handle(Event{Type: EventSuspiciousIP, Value: "192.168.1.75"}) // wrong guess
	if objectivesByID(m)["find_suspicious_ip"].Completed {
		t.Error("wrong IP accepted")
	}
	m.Handle(Event{Type: EventSuspiciousIP, Value: capture.IntruderIP})

	for _, threat := range env.Capture.ThreatTypes() {
		m.Handle(Event{Type: EventThreatIdentified, Value: threat})
	}
	m.Handle(Event{Type: EventThreatIdentified, Value: "made_up_threat"})

	byID := objectivesByID(m)
	if !byID["find_suspicious_ip"].Completed {
		t.Error("find_suspicious_ip not completed")
	}
	if !byID["identify_threats"].Completed || byID["identify_threats"].Progress != 5 {
		t.Errorf("identify_threats = %+v", byID["identify_threats"])
	}

	results := m.ValidateReport(map[string]string{
		"suspicious_ip": capture.IntruderIP,
		"threat_count":  "5",
		"exfil_server":  capture.ExfilServerIP,
	})
	for field, ok := range results {
		if !ok {
			t.Errorf("report field %s rejected", field)
		}
	}
	if !m.Completed() {
		t.Error("mission not completed")
	}
	r := m.Rewards()
	if r.XP != 300 || r.Badge != "Packet Detective" || r.Unlocks != "mission3" {
		t.Errorf("rewards = %+v", r)
	}
}

func TestForensicsProgress(t *testing.T) {
	env, _ := newTestEnv(t)
	m := NewForensics()
	m.Reset(env)

	m.Handle(Event{Type: EventToolDownloaded, Value: "pcap_analyzer"})
	m.Handle(Event{Type: EventAppOpened, Value: "pcap_analyzer"})

	results := m.ValidateReport(map[string]string{
		"dest_mac":      "00-1E-EC-26-D2-AC",
		"src_mac":       "26:02:06:49:6b:31",
		"src_ip":        "46.105.99.163",
		"dest_ip":       "192.168.4.2",
		"protocol":      "tcp",
		"packet_length": "66",
	})
	for field, ok := range results {
		if !ok {
			t.Errorf("report field %s rejected", field)
		}
	}

	byID := objectivesByID(m)
	if !byID["decode_fields"].Completed || byID["decode_fields"].Progress != 6 {
		t.Errorf("decode_fields = %+v", byID["decode_fields"])
	}
	if !m.Completed() {
		t.Error("mission not completed")
	}
	r := m.Rewards()
	if r.XP != 500 || r.Credits != 200 || r.Level != "Membre de Confiance" {
		t.Errorf("rewards = %+v", r)
	}
}

func TestResetClearsProgress(t *testing.T) {
	env, _ := newTestEnv(t)
	m := NewIntrusion()
	m.Reset(env)
	m.Handle(Event{Type: EventToolDownloaded, Value: "wireshark"})
	if !objectivesByID(m)["download_wireshark"].Completed {
		t.Fatal("setup failed")
	}

	m.Reset(env)
	if objectivesByID(m)["download_wireshark"].Completed {
		t.Error("Reset kept objective state")
	}
	if m.CompletionPercent() != 0 {
		t.Errorf("completion after reset = %d%%", m.CompletionPercent())
	}
}

func TestHints(t *testing.T) {
	m := NewRecon()
	if m.Hint("scan_network") == "" {
		t.Error("expected a hint for scan_network")
	}
	if m.Hint("no_such_objective") != "" {
		t.Error("expected empty hint for unknown objective")
	}
}

func objectivesByID(m Mission) map[string]Objective {
	out := make(map[string]Objective)
	for _, o := range m.Objectives() {
		out[o.ID] = o
	}
	return out
}
