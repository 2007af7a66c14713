package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions/portfolio"
)

// WritePortfolioPDF writes a compact portfolio compliance report: headline
// metrics followed by the per-instrument table.
func WritePortfolioPDF(w io.Writer, summary *portfolio.Summary, entries []portfolio.Entry) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("PCAF Financed Emissions Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "PCAF Financed Emissions Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04 MST"))
	pdf.Ln(12)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Portfolio Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)

	metric := func(label, value string) {
		pdf.CellFormat(80, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, value, "", 1, "R", false, 0, "")
	}
	metric("Instruments", fmt.Sprintf("%d", summary.InstrumentCount))
	metric("Total amount", fmt.Sprintf("%.2f", summary.TotalAmount))
	metric("Total financed emissions (tCO2e)", fmt.Sprintf("%.4f", summary.TotalFinancedEmissions))
	metric("Weighted data quality score", fmt.Sprintf("%.2f", summary.WeightedDataQualityScore))
	metric("Compliance status", summary.ComplianceStatus)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Instruments")
	pdf.Ln(8)

	widths := []float64{45, 35, 30, 35, 20, 25}
	headers := []string{"Instrument", "Type", "Outstanding", "Emissions (t)", "Score", "Date"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	pdf.SetFillColor(240, 244, 250)
	for _, e := range entries {
		cells := []string{
			e.InstrumentID,
			e.InstrumentType,
			fmt.Sprintf("%.2f", e.OutstandingBalance),
			fmt.Sprintf("%.4f", e.FinancedEmissions),
			fmt.Sprintf("%d", e.DataQualityScore),
			e.CreatedAt.Format("2006-01-02"),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
