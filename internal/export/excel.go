package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions/portfolio"
)

const (
	instrumentSheet = "Instruments"
	summarySheet    = "Summary"
)

// WritePortfolioExcel writes a workbook with an instrument sheet and a
// summary sheet including the per-type and per-score breakdowns.
func WritePortfolioExcel(w io.Writer, summary *portfolio.Summary, entries []portfolio.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(instrumentSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(idx)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range instrumentHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(instrumentSheet, cell, title)
	}
	f.SetCellStyle(instrumentSheet, "A1", "G1", headerStyle)

	for row, e := range entries {
		values := []interface{}{
			e.InstrumentID,
			e.InstrumentType,
			e.PrincipalAmount,
			e.OutstandingBalance,
			e.FinancedEmissions,
			e.DataQualityScore,
			e.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(instrumentSheet, cell, v)
		}
	}
	f.AutoFilter(instrumentSheet, fmt.Sprintf("A1:G%d", len(entries)+1), nil)

	row := 1
	put := func(label string, value interface{}) {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	put("Total amount", summary.TotalAmount)
	put("Total outstanding", summary.TotalOutstanding)
	put("Total financed emissions (tCO2e)", summary.TotalFinancedEmissions)
	put("Weighted data quality score", summary.WeightedDataQualityScore)
	put("Compliance status", summary.ComplianceStatus)
	put("Instruments", summary.InstrumentCount)
	row++

	put("Emissions by instrument type", "")
	for typ, tons := range summary.EmissionsByType {
		put("  "+typ, tons)
	}
	row++

	put("Emissions by quality score", "")
	for score, tons := range summary.EmissionsByQualityScore {
		put(fmt.Sprintf("  score %d", score), tons)
	}
	row++

	put("Emissions by period", "")
	for period, tons := range summary.EmissionsByPeriod {
		put("  "+period, tons)
	}

	f.SetColWidth(instrumentSheet, "A", "G", 22)
	f.SetColWidth(summarySheet, "A", "A", 34)
	f.SetColWidth(summarySheet, "B", "B", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
