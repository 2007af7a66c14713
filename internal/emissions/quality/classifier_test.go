package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFullBottomUp(t *testing.T) {
	c := NewClassifier(nil)

	result := c.Classify(Signals{
		VehicleSpecific: true,
		ActualDistance:  true,
		HasOrigination:  true,
		HasCategory:     true,
	})

	assert.Equal(t, Option1b, result.Option)
	assert.Equal(t, 2, result.Score)
	assert.NotEmpty(t, result.Drivers)
}

func TestClassifyBranches(t *testing.T) {
	c := NewClassifier(nil)

	cases := []struct {
		name    string
		signals Signals
		want    Option
		score   int
	}{
		{"vehicle specific with distance", Signals{VehicleSpecific: true, ActualDistance: true, HasCategory: true}, Option2a, 2},
		{"vehicle specific only", Signals{VehicleSpecific: true, HasCategory: true}, Option2b, 3},
		{"category only", Signals{HasCategory: true}, Option3a, 4},
		{"nothing known", Signals{}, Option3b, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Classify(tc.signals)
			assert.Equal(t, tc.want, result.Option)
			assert.Equal(t, tc.score, result.Score)
			assert.NotEmpty(t, result.Drivers)
		})
	}
}

// Adding any single completeness signal must never worsen the option rank.
func TestClassifyMonotonicity(t *testing.T) {
	c := NewClassifier(nil)

	base := []Signals{
		{},
		{HasCategory: true},
		{HasCategory: true, VehicleSpecific: true},
		{HasCategory: true, VehicleSpecific: true, ActualDistance: true},
	}

	improve := []func(Signals) Signals{
		func(s Signals) Signals { s.VehicleSpecific = true; return s },
		func(s Signals) Signals { s.ActualDistance = true; return s },
		func(s Signals) Signals { s.HasOrigination = true; return s },
		func(s Signals) Signals { s.HasCategory = true; return s },
	}

	for _, signals := range base {
		before := c.Classify(signals).Option.Rank()
		for _, f := range improve {
			after := c.Classify(f(signals)).Option.Rank()
			assert.GreaterOrEqual(t, after, before,
				"signals %+v improved to %+v", signals, f(signals))
		}
	}
}

func TestClassifyCustomScoreTable(t *testing.T) {
	strict := ScoreTable{
		Option1a: 1, Option1b: 1, Option2a: 3, Option2b: 3, Option3a: 5, Option3b: 5,
	}
	c := NewClassifier(strict)

	result := c.Classify(Signals{HasCategory: true})
	assert.Equal(t, Option3a, result.Option)
	assert.Equal(t, 5, result.Score)
}

func TestOptionRankOrdering(t *testing.T) {
	ordered := []Option{Option3b, Option3a, Option2b, Option2a, Option1b, Option1a}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank())
	}
}
