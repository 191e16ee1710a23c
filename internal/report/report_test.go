package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cyberhero-game/cyberhero/internal/profile"
	"github.com/cyberhero-game/cyberhero/internal/storage"
)

func completedProfile() *profile.Profile {
	p := profile.New("neo")
	p.CompleteMission("mission1", 500, 0, "", "Network Defender", "mission2")
	p.CompleteMission("mission2", 300, 0, "Respectable", "Packet Detective", "mission3")
	p.CompleteMission("mission3", 500, 200, "Membre de Confiance", "Packet Forensics Expert", "")
	return p
}

func TestWriteProgress(t *testing.T) {
	p := profile.New("trinity")
	p.CompleteMission("mission1", 500, 0, "", "Network Defender", "mission2")

	completions := []storage.CompletionEntry{
		{MissionID: "mission1", XP: 500, DurationSecs: 95, HintsUsed: 2, CompletedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	if err := WriteProgress(&buf, p, completions); err != nil {
		t.Fatalf("WriteProgress: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Rapport de progression - trinity",
		"Network Defender",
		"accomplie",
		"en cours",
		"verrouillee",
		"1m35s",
		"01/03/2026",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestWriteProgressWithoutCompletions(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteProgress(&buf, profile.New("neo"), nil); err != nil {
		t.Fatalf("WriteProgress: %v", err)
	}
	if strings.Contains(buf.String(), "Historique") {
		t.Error("history section should be omitted without completions")
	}
}

func TestCertificate(t *testing.T) {
	data, err := Certificate(completedProfile(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Certificate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("not a PDF, starts with %q", data[:min(8, len(data))])
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestCertificateRequiresAllMissions(t *testing.T) {
	p := profile.New("morpheus")
	p.CompleteMission("mission1", 500, 0, "", "Network Defender", "mission2")

	if _, err := Certificate(p, time.Now()); err == nil {
		t.Error("expected error for incomplete profile")
	}
}
