package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/cyberhero-game/cyberhero/internal/mission"
	"github.com/cyberhero-game/cyberhero/internal/profile"
)

// A4 landscape in points.
const (
	certW      = 842
	certH      = 595
	certMargin = 40
)

// Certificate renders a PDF completion certificate for a player.
// Returns an error when the player has not completed every mission.
func Certificate(p *profile.Profile, issuedAt time.Time) ([]byte, error) {
	missions := mission.List()
	for _, info := range missions {
		if !p.HasCompleted(info.ID) {
			return nil, fmt.Errorf("report: mission %q not completed yet", info.ID)
		}
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(certMargin, certMargin, certMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Dark terminal background with a double green border.
	pdf.SetFillColor(16, 24, 16)
	pdf.Rect(0, 0, certW, certH, "F")
	pdf.SetDrawColor(80, 220, 100)
	pdf.SetLineWidth(2)
	pdf.Rect(certMargin, certMargin, certW-2*certMargin, certH-2*certMargin, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(certMargin+8, certMargin+8, certW-2*certMargin-16, certH-2*certMargin-16, "D")

	pdf.SetTextColor(80, 220, 100)
	pdf.SetFont("Courier", "B", 28)
	pdf.SetXY(certMargin, 110)
	pdf.CellFormat(certW-2*certMargin, 30, "CERTIFICAT DE REUSSITE", "", 0, "C", false, 0, "")

	pdf.SetFont("Courier", "", 13)
	pdf.SetXY(certMargin, 170)
	pdf.CellFormat(certW-2*certMargin, 16, "Formation CyberHero - Securite des reseaux", "", 0, "C", false, 0, "")

	pdf.SetXY(certMargin, 220)
	pdf.CellFormat(certW-2*certMargin, 16, "Decerne a", "", 0, "C", false, 0, "")
	pdf.SetFont("Courier", "B", 24)
	pdf.SetTextColor(240, 240, 240)
	pdf.SetXY(certMargin, 245)
	pdf.CellFormat(certW-2*certMargin, 28, p.Nickname, "", 0, "C", false, 0, "")

	pdf.SetFont("Courier", "", 12)
	pdf.SetTextColor(80, 220, 100)
	y := 310.0
	for _, info := range missions {
		pdf.SetXY(certMargin, y)
		pdf.CellFormat(certW-2*certMargin, 15, "[x] "+info.Title, "", 0, "C", false, 0, "")
		y += 20
	}

	pdf.SetXY(certMargin, y+20)
	pdf.CellFormat(certW-2*certMargin, 15,
		fmt.Sprintf("Reputation : %s   |   %d XP", p.Progress.Level, p.Progress.XP),
		"", 0, "C", false, 0, "")

	pdf.SetFont("Courier", "", 10)
	pdf.SetXY(certMargin, certH-certMargin-40)
	pdf.CellFormat(certW-2*certMargin, 12,
		"Delivre le "+issuedAt.Format("02/01/2006")+" - Le Professeur",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: cannot render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
