package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanAmortizationIsNonIncreasing(t *testing.T) {
	p := NewProjector()

	years, summary, err := p.Project(Input{
		InstrumentType:       TypeLoan,
		PrincipalAmount:      50000,
		OutstandingBalance:   40000, // one payment already made
		AssetValue:           60000,
		TermYears:            5,
		TotalAnnualEmissions: 3.0,
	})
	require.NoError(t, err)
	require.Len(t, years, 5)

	for i := 1; i < len(years); i++ {
		assert.LessOrEqual(t, years[i].OutstandingExposure, years[i-1].OutstandingExposure)
	}
	// 40000 - 10000 x 4 = 0 at the final year
	assert.Equal(t, 0.0, years[4].OutstandingExposure)
	assert.Equal(t, 0.0, years[4].AttributionFactor)
	assert.Equal(t, 5, summary.HorizonYears)
}

func TestLoanExposureNeverNegative(t *testing.T) {
	p := NewProjector()

	years, _, err := p.Project(Input{
		InstrumentType:       TypeLoan,
		PrincipalAmount:      60000,
		OutstandingBalance:   15000, // mostly repaid
		AssetValue:           60000,
		TermYears:            6,
		TotalAnnualEmissions: 2.0,
	})
	require.NoError(t, err)

	for _, y := range years {
		assert.GreaterOrEqual(t, y.OutstandingExposure, 0.0)
		assert.GreaterOrEqual(t, y.FinancedEmissions, 0.0)
	}
}

func TestGuaranteeAttributionStrictlyDecreases(t *testing.T) {
	p := NewProjector()

	years, _, err := p.Project(Input{
		InstrumentType:       TypeGuarantee,
		PrincipalAmount:      30000,
		OutstandingBalance:   30000,
		AssetValue:           40000,
		TotalAnnualEmissions: 2.5,
	})
	require.NoError(t, err)
	require.Len(t, years, DefaultFacilityHorizonYears)

	base := 30000.0 / 40000.0
	assert.InDelta(t, base, years[0].AttributionFactor, 1e-9)
	assert.InDelta(t, base*0.9, years[1].AttributionFactor, 1e-9)
	assert.InDelta(t, base*0.81, years[2].AttributionFactor, 1e-9)

	for i := 1; i < len(years); i++ {
		assert.Less(t, years[i].AttributionFactor, years[i-1].AttributionFactor)
	}
}

func TestLetterOfCreditHoldsConstantExposure(t *testing.T) {
	p := NewProjector()

	years, summary, err := p.Project(Input{
		InstrumentType:       TypeLetterOfCredit,
		PrincipalAmount:      25000,
		OutstandingBalance:   25000,
		AssetValue:           50000,
		TotalAnnualEmissions: 2.0,
	})
	require.NoError(t, err)
	require.Len(t, years, DefaultFacilityHorizonYears)

	for _, y := range years {
		assert.Equal(t, 25000.0, y.OutstandingExposure)
		assert.InDelta(t, 0.5, y.AttributionFactor, 1e-9)
		assert.InDelta(t, 1.0, y.FinancedEmissions, 1e-9)
	}
	assert.InDelta(t, 3.0, summary.TotalLifetimeEmissions, 1e-9)
	assert.InDelta(t, 0.5, summary.AverageAttribution, 1e-9)
}

func TestDegenerateLoanTermShortCircuitsToSingleYear(t *testing.T) {
	p := NewProjector()

	years, _, err := p.Project(Input{
		InstrumentType:       TypeLoan,
		PrincipalAmount:      10000,
		OutstandingBalance:   10000,
		AssetValue:           20000,
		TermYears:            0,
		TotalAnnualEmissions: 1.0,
	})
	require.NoError(t, err)
	assert.Len(t, years, 1)
}

func TestCumulativeEmissionsAreRunningSum(t *testing.T) {
	p := NewProjector()

	years, summary, err := p.Project(Input{
		InstrumentType:       TypeLoan,
		PrincipalAmount:      40000,
		OutstandingBalance:   40000,
		AssetValue:           50000,
		TermYears:            4,
		TotalAnnualEmissions: 2.0,
	})
	require.NoError(t, err)

	var running float64
	for _, y := range years {
		running += y.FinancedEmissions
		assert.InDelta(t, running, y.CumulativeFinancedEmissions, 1e-9)
	}
	assert.InDelta(t, running, summary.TotalLifetimeEmissions, 1e-9)
	assert.Equal(t, 1, summary.PeakYear)
	assert.InDelta(t, years[0].FinancedEmissions, summary.PeakYearEmissions, 1e-9)
}

func TestProjectRejectsNonPositiveAssetValue(t *testing.T) {
	p := NewProjector()

	_, _, err := p.Project(Input{
		InstrumentType:     TypeLoan,
		PrincipalAmount:    10000,
		OutstandingBalance: 10000,
		AssetValue:         0,
		TermYears:          3,
	})
	assert.Error(t, err)
}
