package attribution

import (
	"fmt"
	"time"
)

// DefaultDaysPerMonth is the month approximation used for temporal
// attribution. PCAF does not mandate an exact day-count convention; the
// 30.44-day average month is a precision choice, configurable per calculator.
const DefaultDaysPerMonth = 30.44

// Calculator computes static and temporal attribution factors.
type Calculator struct {
	DaysPerMonth float64
}

// NewCalculator creates a calculator with the default month approximation
func NewCalculator() *Calculator {
	return &Calculator{DaysPerMonth: DefaultDaysPerMonth}
}

// StaticFactor computes outstanding balance / asset value. The result is not
// clamped: a value outside [0,1] is returned together with outOfRange=true so
// the caller can flag it as a data-quality warning instead of silently
// correcting it.
func (c *Calculator) StaticFactor(outstandingBalance, assetValue float64) (factor float64, outOfRange bool, err error) {
	if assetValue <= 0 {
		return 0, false, fmt.Errorf("asset value must be positive, got %v", assetValue)
	}
	factor = outstandingBalance / assetValue
	outOfRange = factor < 0 || factor > 1
	return factor, outOfRange, nil
}

// TemporalFactor computes the fraction of the reporting calendar year during
// which the instrument was open: the interval [origination, reporting]
// intersected with [Jan 1, Dec 31] of the reporting year, measured in
// approximate months and divided by 12, capped at 1.
//
// A missing origination or reporting date returns 1 (full-year assumption) by
// design, so incomplete records still produce a result.
func (c *Calculator) TemporalFactor(origination, reporting *time.Time) float64 {
	if origination == nil || reporting == nil {
		return 1
	}

	yearStart := time.Date(reporting.Year(), time.January, 1, 0, 0, 0, 0, reporting.Location())
	yearEnd := time.Date(reporting.Year(), time.December, 31, 23, 59, 59, 0, reporting.Location())

	start := *origination
	if start.Before(yearStart) {
		start = yearStart
	}
	end := *reporting
	if end.After(yearEnd) {
		end = yearEnd
	}

	if !end.After(start) {
		return 0
	}

	days := end.Sub(start).Hours() / 24
	months := days / c.DaysPerMonth
	fraction := months / 12
	if fraction > 1 {
		return 1
	}
	return fraction
}
