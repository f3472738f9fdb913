package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const ContentType = "application/pdf"

// Render draws doc onto Letter pages in Helvetica.
func Render(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("fleetledger", true)

	// Core fonts are cp1252; translate so names with accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()

		for _, line := range page.Lines {
			fontStyle := ""
			if line.Style.Bold {
				fontStyle = "B"
			}

			pdf.SetFont("Helvetica", fontStyle, line.Style.Size)
			pdf.Text(Margin, line.Y, tr(line.Text))
		}
	}

	if len(doc.Pages) == 0 {
		pdf.AddPage()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func timestamp(now time.Time) string {
	return now.UTC().Format("20060102_150405")
}

func Filename(now time.Time) string {
	return "fleet_report_" + timestamp(now) + ".pdf"
}

func VehicleFilename(vehicleName string, now time.Time) string {
	return "fleet_report_" + vehicleName + "_" + timestamp(now) + ".pdf"
}

func MonthlyFilename(month string) string {
	return "fleet_report_" + month + ".pdf"
}
