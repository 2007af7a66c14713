// Package quality implements the PCAF data-quality decision tree for
// motor-vehicle financed emissions. It maps data completeness to a PCAF data
// option code (1a best, 3b worst) and a 1-5 quality score.
package quality

// Option is the PCAF data option code
type Option string

const (
	Option1a Option = "1a"
	Option1b Option = "1b"
	Option2a Option = "2a"
	Option2b Option = "2b"
	Option3a Option = "3a"
	Option3b Option = "3b"
)

// Rank orders options from best (highest rank) to worst. Used to verify
// monotonicity: adding a completeness signal never lowers the rank.
func (o Option) Rank() int {
	switch o {
	case Option1a:
		return 6
	case Option1b:
		return 5
	case Option2a:
		return 4
	case Option2b:
		return 3
	case Option3a:
		return 2
	default:
		return 1
	}
}

// ScoreTable maps each option to its 1-5 score. The exact integer per option
// is configuration, not hard logic, so institutions can tune it.
type ScoreTable map[Option]int

// DefaultScoreTable returns the standard PCAF score mapping
func DefaultScoreTable() ScoreTable {
	return ScoreTable{
		Option1a: 1,
		Option1b: 2,
		Option2a: 2,
		Option2b: 3,
		Option3a: 4,
		Option3b: 5,
	}
}

// Signals are the completeness inputs to the decision tree.
type Signals struct {
	// VehicleSpecific is true when subcategory and engine-size band are both set
	VehicleSpecific bool
	// ActualDistance is true when a real (non-default) annual distance was supplied
	ActualDistance bool
	// HasOrigination is true when the origination date is known
	HasOrigination bool
	// HasCategory is true when the vehicle category is known
	HasCategory bool
}

// Classification is the outcome of the decision tree. Drivers is a
// human-readable list of the signals that led to the classification, kept for
// audit and explainability only.
type Classification struct {
	Option  Option   `json:"pcaf_data_option"`
	Score   int      `json:"data_quality_score"`
	Drivers []string `json:"quality_drivers"`
}

// Classifier evaluates the decision tree with a configurable score table.
type Classifier struct {
	scores ScoreTable
}

// NewClassifier creates a classifier; a nil table uses the PCAF defaults
func NewClassifier(scores ScoreTable) *Classifier {
	if scores == nil {
		scores = DefaultScoreTable()
	}
	return &Classifier{scores: scores}
}

// Classify walks the decision tree, first match wins:
//
//	vehicle-specific + actual distance + origination date -> 1b
//	vehicle-specific + actual distance                    -> 2a
//	vehicle-specific                                      -> 2b
//	vehicle category known                                -> 3a
//	otherwise                                             -> 3b
func (c *Classifier) Classify(s Signals) Classification {
	var opt Option
	var drivers []string

	switch {
	case s.VehicleSpecific && s.ActualDistance && s.HasOrigination:
		opt = Option1b
		drivers = []string{
			"vehicle-specific data available (subcategory and engine size)",
			"actual annual distance supplied",
			"origination date known",
		}
	case s.VehicleSpecific && s.ActualDistance:
		opt = Option2a
		drivers = []string{
			"vehicle-specific data available (subcategory and engine size)",
			"actual annual distance supplied",
			"origination date missing",
		}
	case s.VehicleSpecific:
		opt = Option2b
		drivers = []string{
			"vehicle-specific data available (subcategory and engine size)",
			"annual distance estimated from category average",
		}
	case s.HasCategory:
		opt = Option3a
		drivers = []string{
			"vehicle category known, no vehicle-specific detail",
			"annual distance estimated from category average",
		}
	default:
		opt = Option3b
		drivers = []string{
			"assumed average values, no vehicle data supplied",
		}
	}

	return Classification{
		Option:  opt,
		Score:   c.scores[opt],
		Drivers: drivers,
	}
}
