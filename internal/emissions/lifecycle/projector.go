// Package lifecycle projects outstanding exposure, attribution, and financed
// emissions across the remaining life of an instrument.
package lifecycle

import "fmt"

// Instrument kinds handled by the projector
const (
	TypeLoan           = "loan"
	TypeLetterOfCredit = "letter_of_credit"
	TypeGuarantee      = "guarantee"
)

// DefaultFacilityHorizonYears is the fixed projection horizon for letters of
// credit and guarantees, which have no amortization schedule.
const DefaultFacilityHorizonYears = 3

// DefaultGuaranteeDecay is the geometric decay of a guarantee's activation
// probability per elapsed year.
const DefaultGuaranteeDecay = 0.9

// Input describes the instrument being projected.
type Input struct {
	InstrumentType       string
	PrincipalAmount      float64
	OutstandingBalance   float64
	AssetValue           float64
	TermYears            int
	TotalAnnualEmissions float64 // tonnes CO2e/year
}

// Year is one step of the projection.
type Year struct {
	Year                        int     `json:"year"`
	OutstandingExposure         float64 `json:"outstanding_exposure"`
	AttributionFactor           float64 `json:"attribution_factor"`
	FinancedEmissions           float64 `json:"financed_emissions"`
	CumulativeFinancedEmissions float64 `json:"cumulative_financed_emissions"`
}

// Summary holds derived statistics over the projection.
type Summary struct {
	TotalLifetimeEmissions float64 `json:"total_lifetime_emissions"`
	PeakYearEmissions      float64 `json:"peak_year_emissions"`
	PeakYear               int     `json:"peak_year"`
	AverageAttribution     float64 `json:"average_attribution"`
	HorizonYears           int     `json:"horizon_years"`
}

// Projector produces year-by-year trajectories.
type Projector struct {
	FacilityHorizonYears int
	GuaranteeDecay       float64
}

// NewProjector creates a projector with default horizon and decay
func NewProjector() *Projector {
	return &Projector{
		FacilityHorizonYears: DefaultFacilityHorizonYears,
		GuaranteeDecay:       DefaultGuaranteeDecay,
	}
}

// Project builds the trajectory for an instrument.
//
//	Loan:       straight-line amortization over the term
//	Guarantee:  exposure weighted by geometrically decaying activation probability
//	LC:         exposure and attribution constant until expiry
//
// Degenerate terms (term <= 0) short-circuit to a single-year projection.
func (p *Projector) Project(in Input) ([]Year, Summary, error) {
	if in.AssetValue <= 0 {
		return nil, Summary{}, fmt.Errorf("asset value must be positive, got %v", in.AssetValue)
	}

	horizon := p.horizon(in)

	years := make([]Year, 0, horizon)
	cumulative := 0.0

	for n := 1; n <= horizon; n++ {
		exposure, attr := p.yearExposure(in, n)
		financed := in.TotalAnnualEmissions * attr
		cumulative += financed
		years = append(years, Year{
			Year:                        n,
			OutstandingExposure:         exposure,
			AttributionFactor:           attr,
			FinancedEmissions:           financed,
			CumulativeFinancedEmissions: cumulative,
		})
	}

	return years, summarize(years), nil
}

func (p *Projector) horizon(in Input) int {
	if in.InstrumentType == TypeLoan {
		if in.TermYears <= 0 {
			return 1
		}
		return in.TermYears
	}
	if p.FacilityHorizonYears <= 0 {
		return 1
	}
	return p.FacilityHorizonYears
}

func (p *Projector) yearExposure(in Input, year int) (exposure, attribution float64) {
	switch in.InstrumentType {
	case TypeGuarantee:
		base := in.OutstandingBalance / in.AssetValue
		attribution = base
		for i := 1; i < year; i++ {
			attribution *= p.GuaranteeDecay
		}
		exposure = in.PrincipalAmount * attribution
		return exposure, attribution

	case TypeLetterOfCredit:
		attribution = in.OutstandingBalance / in.AssetValue
		return in.OutstandingBalance, attribution

	default: // loan
		term := in.TermYears
		if term <= 0 {
			term = 1
		}
		annualPayment := in.PrincipalAmount / float64(term)
		exposure = in.OutstandingBalance - annualPayment*float64(year-1)
		if exposure < 0 {
			exposure = 0
		}
		attribution = exposure / in.AssetValue
		return exposure, attribution
	}
}

func summarize(years []Year) Summary {
	s := Summary{HorizonYears: len(years)}
	if len(years) == 0 {
		return s
	}

	var attrSum float64
	for _, y := range years {
		attrSum += y.AttributionFactor
		if y.FinancedEmissions > s.PeakYearEmissions {
			s.PeakYearEmissions = y.FinancedEmissions
			s.PeakYear = y.Year
		}
	}
	s.TotalLifetimeEmissions = years[len(years)-1].CumulativeFinancedEmissions
	s.AverageAttribution = attrSum / float64(len(years))
	return s
}
