package result

import (
	"errors"
	"math"
)

// ErrEmptyResultSet is returned when aggregation is requested over zero
// results. Rates over an empty set are undefined, never reported as 0%.
var ErrEmptyResultSet = errors.New("no test results to aggregate")

// Stats are derived pass counts and rates over a set of test results.
// Rates are whole percentages; Gap is baseline rate minus target rate.
type Stats struct {
	Total          int `json:"total"`
	BaselinePassed int `json:"baselinePassed"`
	TargetPassed   int `json:"targetPassed"`
	BaselineRate   int `json:"baselineRate"`
	TargetRate     int `json:"targetRate"`
	Gap            int `json:"gap"`
}

// Aggregate computes stats over a result sequence. The computation is
// commutative: reordering the input never changes the rates.
func Aggregate(results []TestResult) (Stats, error) {
	if len(results) == 0 {
		return Stats{}, ErrEmptyResultSet
	}
	s := Stats{Total: len(results)}
	for _, r := range results {
		if r.Baseline.Pass {
			s.BaselinePassed++
		}
		if r.Target.Pass {
			s.TargetPassed++
		}
	}
	s.BaselineRate = rate(s.BaselinePassed, s.Total)
	s.TargetRate = rate(s.TargetPassed, s.Total)
	s.Gap = s.BaselineRate - s.TargetRate
	return s, nil
}

// AggregateRuns flattens every run's results, in run order, and aggregates
// over the concatenation.
func AggregateRuns(runs []*Run) (Stats, error) {
	var all []TestResult
	for _, r := range runs {
		all = append(all, r.Results...)
	}
	return Aggregate(all)
}

func rate(passed, total int) int {
	return int(math.Round(100 * float64(passed) / float64(total)))
}
