// Package export renders portfolio financed-emissions summaries to CSV,
// Excel, and PDF for the reporting and dashboard collaborators.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions/portfolio"
)

var instrumentHeader = []string{
	"instrument_id",
	"instrument_type",
	"principal_amount",
	"outstanding_balance",
	"financed_emissions_tco2e",
	"data_quality_score",
	"calculated_at",
}

// WritePortfolioCSV writes the per-instrument rows followed by a summary
// block. Emissions are metric tonnes CO2e; factors are 0-1 fractions.
func WritePortfolioCSV(w io.Writer, summary *portfolio.Summary, entries []portfolio.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(instrumentHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.InstrumentID,
			e.InstrumentType,
			fmt.Sprintf("%.2f", e.PrincipalAmount),
			fmt.Sprintf("%.2f", e.OutstandingBalance),
			fmt.Sprintf("%.4f", e.FinancedEmissions),
			fmt.Sprintf("%d", e.DataQualityScore),
			e.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	summaryRows := [][]string{
		{},
		{"total_amount", fmt.Sprintf("%.2f", summary.TotalAmount)},
		{"total_financed_emissions_tco2e", fmt.Sprintf("%.4f", summary.TotalFinancedEmissions)},
		{"weighted_data_quality_score", fmt.Sprintf("%.2f", summary.WeightedDataQualityScore)},
		{"compliance_status", summary.ComplianceStatus},
		{"instrument_count", fmt.Sprintf("%d", summary.InstrumentCount)},
	}
	for _, row := range summaryRows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
