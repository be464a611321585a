// ABOUTME: PDF report export rendering key/value rows onto A4 pages
// ABOUTME: Starts a new page when the cursor passes the bottom threshold

package services

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/Bibekdka/3dd/models"
)

// ReportRow is one ordered key/value line in an exported report.
type ReportRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

const (
	reportLeftMargin = 40.0 // points
	reportTopY       = 800.0
	reportTitleY     = 820.0
	reportBottomY    = 50.0
	reportLineStep   = 25.0
)

// ExportPDF writes a paginated A4 report to w. Rows render in order as
// "Key: Value" lines; a new page starts whenever the cursor would pass
// the bottom threshold.
func ExportPDF(w io.Writer, title string, rows []ReportRow) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(reportLeftMargin, pageHeight-reportTitleY, title)

	pdf.SetFont("Helvetica", "", 11)
	y := reportTopY
	for _, row := range rows {
		pdf.Text(reportLeftMargin, pageHeight-y, row.Key+": "+row.Value)
		y -= reportLineStep
		if y < reportBottomY {
			pdf.AddPage()
			y = reportTopY
		}
	}

	if err := pdf.Output(w); err != nil {
		return models.NewCollaboratorError("report.export", "cannot render PDF", err)
	}
	return nil
}
