package result_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gridprobe/faceoff/internal/catalog"
	"github.com/gridprobe/faceoff/internal/result"
)

func makeResults(baselinePasses, targetPasses, total int) []result.TestResult {
	results := make([]result.TestResult, total)
	for i := range results {
		results[i] = result.TestResult{
			TestID:   "T-" + string(rune('A'+i)),
			Category: catalog.Math,
			Baseline: result.Side{Pass: i < baselinePasses},
			Target:   result.Side{Pass: i < targetPasses},
		}
	}
	return results
}

func TestAggregateScenario(t *testing.T) {
	// Baseline answers all six exactly, target only two.
	stats, err := result.Aggregate(makeResults(6, 2, 6))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.BaselinePassed != 6 || stats.TargetPassed != 2 {
		t.Errorf("pass counts: got %d/%d, want 6/2", stats.BaselinePassed, stats.TargetPassed)
	}
	if stats.BaselineRate != 100 {
		t.Errorf("baseline rate: got %d, want 100", stats.BaselineRate)
	}
	if stats.TargetRate != 33 {
		t.Errorf("target rate: got %d, want 33", stats.TargetRate)
	}
	if stats.Gap != 67 {
		t.Errorf("gap: got %d, want 67", stats.Gap)
	}
}

func TestAggregateEmpty(t *testing.T) {
	_, err := result.Aggregate(nil)
	if !errors.Is(err, result.ErrEmptyResultSet) {
		t.Errorf("expected ErrEmptyResultSet, got %v", err)
	}
	_, err = result.AggregateRuns(nil)
	if !errors.Is(err, result.ErrEmptyResultSet) {
		t.Errorf("AggregateRuns over no runs: expected ErrEmptyResultSet, got %v", err)
	}
}

func TestAggregateCommutative(t *testing.T) {
	results := makeResults(4, 1, 5)
	want, err := result.Aggregate(results)
	if err != nil {
		t.Fatal(err)
	}
	shuffled := make([]result.TestResult, len(results))
	copy(shuffled, results)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := result.Aggregate(shuffled)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("aggregation changed under reordering: %+v vs %+v", got, want)
		}
	}
}

func TestAggregateAdditive(t *testing.T) {
	a := makeResults(3, 1, 4)
	b := makeResults(2, 2, 3)
	statsA, _ := result.Aggregate(a)
	statsB, _ := result.Aggregate(b)
	combined, err := result.Aggregate(append(append([]result.TestResult{}, a...), b...))
	if err != nil {
		t.Fatal(err)
	}
	if combined.BaselinePassed != statsA.BaselinePassed+statsB.BaselinePassed {
		t.Errorf("baseline pass count not additive: %d vs %d+%d",
			combined.BaselinePassed, statsA.BaselinePassed, statsB.BaselinePassed)
	}
	if combined.TargetPassed != statsA.TargetPassed+statsB.TargetPassed {
		t.Errorf("target pass count not additive: %d vs %d+%d",
			combined.TargetPassed, statsA.TargetPassed, statsB.TargetPassed)
	}
	if combined.Total != statsA.Total+statsB.Total {
		t.Errorf("total not additive")
	}
}

func TestAggregateRunsConcatenation(t *testing.T) {
	runs := []*result.Run{
		{ID: "1", Results: makeResults(2, 1, 3)},
		{ID: "2", Results: makeResults(3, 0, 3)},
	}
	stats, err := result.AggregateRuns(runs)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 6 || stats.BaselinePassed != 5 || stats.TargetPassed != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.BaselineRate != 83 || stats.TargetRate != 17 || stats.Gap != 66 {
		t.Errorf("unexpected rates: %+v", stats)
	}
}
