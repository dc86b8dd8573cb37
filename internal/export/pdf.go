package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// pdfColumns defines the PDF table layout (header, width in mm).
var pdfColumns = []struct {
	header string
	width  float64
}{
	{"Session", 48},
	{"Date", 32},
	{"Duration", 22},
	{"Energy (kWh)", 26},
	{"Category", 22},
	{"Tier", 16},
	{"Site", 40},
}

// WritePDF writes export rows to a PDF report at path. Rows are grouped
// under their group label (a user identity or the unclaimed label) in the
// order given.
func WritePDF(path, title string, rows []Row) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s · %d sessions",
		time.Now().Format("2006-01-02 15:04"), len(rows)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	currentGroup := ""
	for _, r := range rows {
		if r.Group != currentGroup {
			currentGroup = r.Group
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 8, currentGroup, "", 1, "L", false, 0, "")
			writePDFHeader(pdf)
		}
		writePDFRow(pdf, r)
	}

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, "No sessions in result set.", "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing pdf export: %w", err)
	}
	return nil
}

func writePDFHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, col.header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func writePDFRow(pdf *fpdf.Fpdf, r Row) {
	pdf.SetFont("Helvetica", "", 8)
	cells := []string{
		r.SessionID,
		r.Date,
		r.Duration,
		fmt.Sprintf("%.3f", r.EnergyKWh),
		r.Category,
		r.Tier,
		r.Site,
	}
	for i, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, cells[i], "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
