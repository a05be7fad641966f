// Package report summarizes stored run history for terminal display.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gridprobe/faceoff/internal/result"
)

// RunSummary is one report row: a stored run with its derived stats and
// mean per-side latencies.
type RunSummary struct {
	RunID         string       `json:"run_id"`
	Category      string       `json:"category"`
	CreatedAt     time.Time    `json:"created_at"`
	BaselineModel string       `json:"baseline_model"`
	TargetModel   string       `json:"target_model"`
	Stats         result.Stats `json:"stats"`
	MeanBaseline  float64      `json:"mean_baseline_latency_ms"`
	MeanTarget    float64      `json:"mean_target_latency_ms"`
}

type Summary struct {
	Runs    []RunSummary `json:"runs"`
	Overall result.Stats `json:"overall"`
}

// Generate reads the run store and writes a summary in the requested
// format (table, markdown or json).
func Generate(store result.Store, format string, w io.Writer) error {
	runs, err := store.List()
	if err != nil {
		return err
	}
	summary, err := Summarize(runs)
	if err != nil {
		return err
	}
	switch format {
	case "markdown":
		return writeMarkdown(summary, w)
	case "json":
		return writeJSON(summary, w)
	default:
		return WriteTable(summary, w)
	}
}

func Summarize(runs []*result.Run) (*Summary, error) {
	overall, err := result.AggregateRuns(runs)
	if err != nil {
		return nil, err
	}
	s := &Summary{Overall: overall}
	for _, run := range runs {
		stats, err := result.Aggregate(run.Results)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		var baseMS, targetMS float64
		for _, tr := range run.Results {
			baseMS += float64(tr.Baseline.Latency.Milliseconds())
			targetMS += float64(tr.Target.Latency.Milliseconds())
		}
		n := float64(len(run.Results))
		s.Runs = append(s.Runs, RunSummary{
			RunID:         run.ID,
			Category:      string(run.Category),
			CreatedAt:     run.CreatedAt,
			BaselineModel: run.Baseline.Model,
			TargetModel:   run.Target.Model,
			Stats:         stats,
			MeanBaseline:  baseMS / n,
			MeanTarget:    targetMS / n,
		})
	}
	return s, nil
}

func WriteTable(s *Summary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tCATEGORY\tBASELINE\tTARGET\tBASE RATE\tTARGET RATE\tGAP\tBASE MS\tTARGET MS")
	fmt.Fprintln(tw, strings.Repeat("-", 100))
	for _, r := range s.Runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%d%%\t%d\t%.0f\t%.0f\n",
			r.RunID, r.Category, r.BaselineModel, r.TargetModel,
			r.Stats.BaselineRate, r.Stats.TargetRate, r.Stats.Gap,
			r.MeanBaseline, r.MeanTarget)
	}
	fmt.Fprintf(tw, "\nOverall: baseline %d%%, target %d%%, gap %d (over %d results)\n",
		s.Overall.BaselineRate, s.Overall.TargetRate, s.Overall.Gap, s.Overall.Total)
	return tw.Flush()
}

func writeMarkdown(s *Summary, w io.Writer) error {
	fmt.Fprintln(w, "| Run | Category | Baseline | Target | Base Rate | Target Rate | Gap |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|")
	for _, r := range s.Runs {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %d%% | %d%% | %d |\n",
			r.RunID, r.Category, r.BaselineModel, r.TargetModel,
			r.Stats.BaselineRate, r.Stats.TargetRate, r.Stats.Gap)
	}
	fmt.Fprintf(w, "\nOverall: baseline %d%%, target %d%%, gap %d\n",
		s.Overall.BaselineRate, s.Overall.TargetRate, s.Overall.Gap)
	return nil
}

func writeJSON(s *Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
