package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions/portfolio"
)

func exportFixture() (*portfolio.Summary, []portfolio.Entry) {
	entries := []portfolio.Entry{
		{
			InstrumentID:       "LOAN-001",
			InstrumentType:     "loan",
			PrincipalAmount:    45000,
			OutstandingBalance: 31500,
			FinancedEmissions:  1.89,
			DataQualityScore:   2,
			CreatedAt:          time.Date(2026, time.June, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			InstrumentID:       "LC-002",
			InstrumentType:     "letter_of_credit",
			PrincipalAmount:    120000,
			OutstandingBalance: 120000,
			FinancedEmissions:  8.4,
			DataQualityScore:   4,
			CreatedAt:          time.Date(2026, time.June, 30, 12, 0, 0, 0, time.UTC),
		},
	}
	summary := &portfolio.Summary{
		InstrumentCount:          2,
		TotalAmount:              165000,
		TotalOutstanding:         151500,
		TotalFinancedEmissions:   10.29,
		WeightedDataQualityScore: 3.63,
		ComplianceStatus:         "needs_improvement",
	}
	return summary, entries
}

func TestWritePortfolioCSV(t *testing.T) {
	summary, entries := exportFixture()

	var buf bytes.Buffer
	err := WritePortfolioCSV(&buf, summary, entries)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, strings.Join(instrumentHeader, ","), lines[0])
	assert.Equal(t, "LOAN-001,loan,45000.00,31500.00,1.8900,2,2026-06-30", lines[1])
	assert.Equal(t, "LC-002,letter_of_credit,120000.00,120000.00,8.4000,4,2026-06-30", lines[2])

	assert.Contains(t, out, "total_financed_emissions_tco2e,10.2900")
	assert.Contains(t, out, "weighted_data_quality_score,3.63")
	assert.Contains(t, out, "compliance_status,needs_improvement")
	assert.Contains(t, out, "instrument_count,2")
}

func TestWritePortfolioCSVEmptyPortfolio(t *testing.T) {
	var buf bytes.Buffer
	err := WritePortfolioCSV(&buf, &portfolio.Summary{}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "instrument_id,"))
	assert.Contains(t, out, "instrument_count,0")
}

func TestWritePortfolioExcel(t *testing.T) {
	summary, entries := exportFixture()

	var buf bytes.Buffer
	err := WritePortfolioExcel(&buf, summary, entries)
	require.NoError(t, err)

	// xlsx files are zip archives
	assert.Equal(t, []byte("PK"), buf.Bytes()[:2])
}

func TestWritePortfolioPDF(t *testing.T) {
	summary, entries := exportFixture()

	var buf bytes.Buffer
	err := WritePortfolioPDF(&buf, summary, entries)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}
