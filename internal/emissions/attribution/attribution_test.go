package attribution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestStaticFactor(t *testing.T) {
	c := NewCalculator()

	factor, outOfRange, err := c.StaticFactor(31500, 45000)
	require.NoError(t, err)
	assert.False(t, outOfRange)
	assert.InDelta(t, 0.70, factor, 1e-9)
}

func TestStaticFactorNotClampedWhenAboveOne(t *testing.T) {
	c := NewCalculator()

	factor, outOfRange, err := c.StaticFactor(60000, 45000)
	require.NoError(t, err)
	assert.True(t, outOfRange)
	assert.Greater(t, factor, 1.0)
}

func TestStaticFactorRejectsNonPositiveAssetValue(t *testing.T) {
	c := NewCalculator()

	_, _, err := c.StaticFactor(31500, 0)
	assert.Error(t, err)

	_, _, err = c.StaticFactor(31500, -1)
	assert.Error(t, err)
}

func TestTemporalFactorHalfYear(t *testing.T) {
	c := NewCalculator()

	// Originated July 1st, reported December 31st: roughly six of twelve months.
	factor := c.TemporalFactor(date(2024, time.July, 1), date(2024, time.December, 31))
	assert.InDelta(t, 0.5, factor, 0.02)
}

func TestTemporalFactorFullYearForOldOrigination(t *testing.T) {
	c := NewCalculator()

	factor := c.TemporalFactor(date(2020, time.March, 15), date(2024, time.December, 31))
	assert.InDelta(t, 1.0, factor, 0.02)
}

func TestTemporalFactorCappedAtOne(t *testing.T) {
	c := NewCalculator()

	factor := c.TemporalFactor(date(2019, time.January, 1), date(2024, time.December, 31))
	assert.LessOrEqual(t, factor, 1.0)
}

func TestTemporalFactorZeroWhenReportingPrecedesOrigination(t *testing.T) {
	c := NewCalculator()

	factor := c.TemporalFactor(date(2024, time.October, 1), date(2024, time.March, 1))
	assert.Equal(t, 0.0, factor)
}

func TestTemporalFactorZeroWhenOriginationAfterYearEnd(t *testing.T) {
	c := NewCalculator()

	factor := c.TemporalFactor(date(2025, time.February, 1), date(2024, time.December, 31))
	assert.Equal(t, 0.0, factor)
}

func TestTemporalFactorMissingDatesAssumeFullYear(t *testing.T) {
	c := NewCalculator()

	assert.Equal(t, 1.0, c.TemporalFactor(nil, date(2024, time.December, 31)))
	assert.Equal(t, 1.0, c.TemporalFactor(date(2024, time.January, 1), nil))
	assert.Equal(t, 1.0, c.TemporalFactor(nil, nil))
}

func TestTemporalFactorAlwaysInUnitInterval(t *testing.T) {
	c := NewCalculator()

	cases := []struct {
		origination *time.Time
		reporting   *time.Time
	}{
		{date(2024, time.January, 1), date(2024, time.December, 31)},
		{date(2024, time.December, 30), date(2024, time.December, 31)},
		{date(2023, time.June, 1), date(2024, time.June, 1)},
		{nil, nil},
	}
	for _, tc := range cases {
		factor := c.TemporalFactor(tc.origination, tc.reporting)
		assert.GreaterOrEqual(t, factor, 0.0)
		assert.LessOrEqual(t, factor, 1.0)
	}
}

func TestTemporalFactorPrecisionIsConfigurable(t *testing.T) {
	precise := &Calculator{DaysPerMonth: 30.0}

	factor := precise.TemporalFactor(date(2024, time.July, 1), date(2024, time.December, 31))
	// 183 days / 30 = 6.1 months
	assert.InDelta(t, 183.0/30.0/12.0, factor, 1e-9)
}
