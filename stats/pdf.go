package stats

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ctdp-app/ctdp/internal/models"
)

// WritePDF saves a printable weekly report to path.
func WritePDF(path string, r Report, totals models.Totals, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Focus Report: %s", now.Format("January 02, 2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf(
		"All time: %d sessions, %d minutes",
		totals.SessionsCount,
		totals.TotalMinutes,
	))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf(
		"Last %d days: %d sessions, %.1f hours",
		DaysInReport,
		r.Totals.SessionsCount,
		r.Totals.TotalHours,
	))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Daily breakdown")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)

	for _, h := range []string{"Date", "Day", "Sessions", "Hours"} {
		pdf.CellFormat(40, 8, h, "1", 0, "C", false, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)

	for _, d := range r.Daily {
		pdf.CellFormat(40, 7, d.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, d.Weekday, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprint(d.SessionsCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.1f", d.TotalHours), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Today by hour")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)

	if r.TodayTotals.SessionsCount == 0 {
		pdf.Cell(0, 8, noSessionsMsg)
		pdf.Ln(8)
	}

	for _, h := range r.Hourly {
		if h.SessionsCount == 0 {
			continue
		}

		pdf.Cell(0, 7, fmt.Sprintf(
			"%s  %d sessions, %d minutes",
			h.Interval,
			h.SessionsCount,
			h.TotalMinutes,
		))
		pdf.Ln(6)
	}

	return pdf.OutputFileAndClose(path)
}
