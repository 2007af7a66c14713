// Package portfolio rolls per-instrument calculation results up into
// portfolio-level compliance metrics.
package portfolio

import (
	"time"
)

// Default compliance thresholds on the weighted data-quality score
const (
	DefaultCompliantThreshold        = 3.0
	DefaultNeedsImprovementThreshold = 4.0
)

// Entry pairs a calculation result with its instrument amounts. The weight
// for the quality average is financed emissions, falling back to outstanding
// balance when emissions are zero.
type Entry struct {
	InstrumentID       string    `json:"instrument_id"`
	InstrumentType     string    `json:"instrument_type"`
	PrincipalAmount    float64   `json:"principal_amount"`
	OutstandingBalance float64   `json:"outstanding_balance"`
	FinancedEmissions  float64   `json:"financed_emissions"`
	DataQualityScore   int       `json:"data_quality_score"`
	CreatedAt          time.Time `json:"created_at"`
}

// Summary is the derived portfolio roll-up. It owns no independent state and
// is rebuilt whenever the underlying result set changes.
type Summary struct {
	InstrumentCount          int                `json:"instrument_count"`
	TotalAmount              float64            `json:"total_amount"`
	TotalOutstanding         float64            `json:"total_outstanding"`
	TotalFinancedEmissions   float64            `json:"total_financed_emissions"`
	WeightedDataQualityScore float64            `json:"weighted_data_quality_score"`
	ComplianceStatus         string             `json:"compliance_status"`
	EmissionsByType          map[string]float64 `json:"emissions_by_instrument_type"`
	AmountByType             map[string]float64 `json:"amount_by_instrument_type"`
	CountByQualityScore      map[int]int        `json:"count_by_quality_score"`
	EmissionsByQualityScore  map[int]float64    `json:"emissions_by_quality_score"`
	EmissionsByPeriod        map[string]float64 `json:"emissions_by_period"`
	ComputedAt               time.Time          `json:"computed_at"`
}

// Aggregator computes portfolio summaries. The thresholds are configuration,
// not hard logic; institutions with stricter targets tune them down.
type Aggregator struct {
	CompliantThreshold        float64
	NeedsImprovementThreshold float64
}

// NewAggregator creates an aggregator with the standard PCAF thresholds
func NewAggregator() *Aggregator {
	return &Aggregator{
		CompliantThreshold:        DefaultCompliantThreshold,
		NeedsImprovementThreshold: DefaultNeedsImprovementThreshold,
	}
}

// Aggregate rolls up entries into a Summary.
//
// Weighted score = sum(score x weight) / sum(weight), weight being financed
// emissions or, when zero, the outstanding balance. Compliance: <= 3.0
// compliant, <= 4.0 needs_improvement, else non_compliant. Breakdowns are
// group-by-sum over instrument type, discrete quality score, and the YYYY-MM
// period of result creation.
func (a *Aggregator) Aggregate(entries []Entry) *Summary {
	s := &Summary{
		EmissionsByType:         make(map[string]float64),
		AmountByType:            make(map[string]float64),
		CountByQualityScore:     make(map[int]int),
		EmissionsByQualityScore: make(map[int]float64),
		EmissionsByPeriod:       make(map[string]float64),
		ComputedAt:              time.Now().UTC(),
	}

	var weightedScore, totalWeight float64

	for _, e := range entries {
		s.InstrumentCount++
		s.TotalAmount += e.PrincipalAmount
		s.TotalOutstanding += e.OutstandingBalance
		s.TotalFinancedEmissions += e.FinancedEmissions

		weight := e.FinancedEmissions
		if weight == 0 {
			weight = e.OutstandingBalance
		}
		weightedScore += float64(e.DataQualityScore) * weight
		totalWeight += weight

		s.EmissionsByType[e.InstrumentType] += e.FinancedEmissions
		s.AmountByType[e.InstrumentType] += e.PrincipalAmount
		s.CountByQualityScore[e.DataQualityScore]++
		s.EmissionsByQualityScore[e.DataQualityScore] += e.FinancedEmissions
		s.EmissionsByPeriod[e.CreatedAt.Format("2006-01")] += e.FinancedEmissions
	}

	if totalWeight > 0 {
		s.WeightedDataQualityScore = weightedScore / totalWeight
	}
	s.ComplianceStatus = a.complianceStatus(s.WeightedDataQualityScore, s.InstrumentCount)

	return s
}

func (a *Aggregator) complianceStatus(weightedScore float64, count int) string {
	if count == 0 {
		return "compliant"
	}
	switch {
	case weightedScore <= a.CompliantThreshold:
		return "compliant"
	case weightedScore <= a.NeedsImprovementThreshold:
		return "needs_improvement"
	default:
		return "non_compliant"
	}
}
