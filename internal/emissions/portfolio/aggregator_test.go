package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTwoLoanPortfolio(t *testing.T) {
	a := NewAggregator()

	// Weighted score = (2x10 + 4x20) / 30 = 3.33 -> needs_improvement
	entries := []Entry{
		{InstrumentID: "L-1", InstrumentType: "loan", PrincipalAmount: 45000, OutstandingBalance: 31500, FinancedEmissions: 10, DataQualityScore: 2},
		{InstrumentID: "L-2", InstrumentType: "loan", PrincipalAmount: 60000, OutstandingBalance: 50000, FinancedEmissions: 20, DataQualityScore: 4},
	}

	s := a.Aggregate(entries)

	assert.Equal(t, 2, s.InstrumentCount)
	assert.InDelta(t, 105000, s.TotalAmount, 1e-9)
	assert.InDelta(t, 30, s.TotalFinancedEmissions, 1e-9)
	assert.InDelta(t, 10.0/3.0, s.WeightedDataQualityScore, 1e-9)
	assert.Equal(t, "needs_improvement", s.ComplianceStatus)
}

func TestAggregateWeightedScoreExactFormula(t *testing.T) {
	a := NewAggregator()

	entries := []Entry{
		{InstrumentID: "a", InstrumentType: "loan", FinancedEmissions: 5, DataQualityScore: 1},
		{InstrumentID: "b", InstrumentType: "guarantee", FinancedEmissions: 10, DataQualityScore: 3},
		{InstrumentID: "c", InstrumentType: "letter_of_credit", FinancedEmissions: 15, DataQualityScore: 5},
	}

	s := a.Aggregate(entries)

	want := (1.0*5 + 3.0*10 + 5.0*15) / 30.0
	assert.InDelta(t, want, s.WeightedDataQualityScore, 1e-12)
}

func TestAggregateZeroEmissionsFallsBackToOutstandingWeight(t *testing.T) {
	a := NewAggregator()

	entries := []Entry{
		{InstrumentID: "a", InstrumentType: "loan", OutstandingBalance: 10000, FinancedEmissions: 0, DataQualityScore: 2},
		{InstrumentID: "b", InstrumentType: "loan", OutstandingBalance: 30000, FinancedEmissions: 0, DataQualityScore: 4},
	}

	s := a.Aggregate(entries)

	// (2x10000 + 4x30000) / 40000 = 3.5
	assert.InDelta(t, 3.5, s.WeightedDataQualityScore, 1e-9)
	assert.Equal(t, "needs_improvement", s.ComplianceStatus)
}

func TestAggregateComplianceThresholds(t *testing.T) {
	a := NewAggregator()

	compliant := a.Aggregate([]Entry{
		{InstrumentID: "a", InstrumentType: "loan", FinancedEmissions: 10, DataQualityScore: 3},
	})
	assert.Equal(t, "compliant", compliant.ComplianceStatus)

	nonCompliant := a.Aggregate([]Entry{
		{InstrumentID: "a", InstrumentType: "loan", FinancedEmissions: 10, DataQualityScore: 5},
	})
	assert.Equal(t, "non_compliant", nonCompliant.ComplianceStatus)
}

func TestAggregateCustomThresholds(t *testing.T) {
	a := &Aggregator{CompliantThreshold: 2.0, NeedsImprovementThreshold: 3.0}

	s := a.Aggregate([]Entry{
		{InstrumentID: "a", InstrumentType: "loan", FinancedEmissions: 10, DataQualityScore: 3},
	})
	assert.Equal(t, "needs_improvement", s.ComplianceStatus)
}

func TestAggregateBreakdowns(t *testing.T) {
	a := NewAggregator()

	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)

	entries := []Entry{
		{InstrumentID: "a", InstrumentType: "loan", PrincipalAmount: 100, FinancedEmissions: 3, DataQualityScore: 2, CreatedAt: jan},
		{InstrumentID: "b", InstrumentType: "loan", PrincipalAmount: 200, FinancedEmissions: 4, DataQualityScore: 2, CreatedAt: feb},
		{InstrumentID: "c", InstrumentType: "guarantee", PrincipalAmount: 300, FinancedEmissions: 5, DataQualityScore: 4, CreatedAt: feb},
	}

	s := a.Aggregate(entries)

	assert.InDelta(t, 7, s.EmissionsByType["loan"], 1e-9)
	assert.InDelta(t, 5, s.EmissionsByType["guarantee"], 1e-9)
	assert.InDelta(t, 300, s.AmountByType["loan"], 1e-9)
	assert.Equal(t, 2, s.CountByQualityScore[2])
	assert.Equal(t, 1, s.CountByQualityScore[4])
	assert.InDelta(t, 3, s.EmissionsByPeriod["2025-01"], 1e-9)
	assert.InDelta(t, 9, s.EmissionsByPeriod["2025-02"], 1e-9)
}

func TestAggregateEmptyPortfolio(t *testing.T) {
	a := NewAggregator()

	s := a.Aggregate(nil)

	require.NotNil(t, s)
	assert.Equal(t, 0, s.InstrumentCount)
	assert.Equal(t, 0.0, s.WeightedDataQualityScore)
	assert.Equal(t, "compliant", s.ComplianceStatus)
}

func TestSummaryCache(t *testing.T) {
	cache := NewSummaryCache(50 * time.Millisecond)
	defer cache.Close()

	s := &Summary{InstrumentCount: 1}
	cache.Set("portfolio_summary_all", s)

	got, ok := cache.Get("portfolio_summary_all")
	require.True(t, ok)
	assert.Equal(t, 1, got.InstrumentCount)

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.Get("portfolio_summary_all")
	assert.False(t, ok)
}
