package report

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"certwatch/internal/score"
)

var pdfLevelColors = map[score.Level][3]int{
	score.LevelCritical: {255, 23, 68},
	score.LevelHigh:     {255, 71, 87},
	score.LevelMedium:   {255, 165, 2},
	score.LevelLow:      {0, 170, 90},
}

// WriteSummaryPDF renders the summary report as a PDF file at path.
func WriteSummaryPDF(path string, data SummaryData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("certwatch threat summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "certwatch threat summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 120)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", data.GeneratedAt))
	pdf.Ln(10)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Domains tracked: %d (with MX: %d)", data.Total, data.WithMX))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Critical: %d   High: %d   Medium: %d   Low: %d",
		data.Critical, data.High, data.Medium, data.Low))
	pdf.Ln(10)

	// Table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 240)
	pdf.CellFormat(80, 7, "Domain", "1", 0, "L", true, 0, "")
	pdf.CellFormat(18, 7, "Score", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Level", "1", 0, "C", true, 0, "")
	pdf.CellFormat(12, 7, "MX", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Keywords", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range data.Top {
		rgb, ok := pdfLevelColors[rec.ThreatLevel]
		if !ok {
			rgb = pdfLevelColors[score.LevelMedium]
		}

		mx := "no"
		if rec.MX {
			mx = "yes"
		}

		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(80, 6, truncate(rec.Domain, 48), "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", rec.ThreatScore), "1", 0, "C", false, 0, "")
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		pdf.CellFormat(25, 6, string(rec.ThreatLevel), "1", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(12, 6, mx, "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, truncate(strings.Join(rec.Keywords, ", "), 36), "1", 1, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
