// Package export serializes stored run history into portable report
// formats: a structured JSON snapshot and a flat CSV table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gridprobe/faceoff/internal/result"
)

// Header is the fixed column layout of the tabular export.
var Header = []string{
	"Run ID", "Category", "Timestamp", "Baseline Model", "Target Model",
	"Test ID", "Question", "Expected",
	"Baseline Answer", "Baseline Pass", "Baseline Latency (ms)",
	"Target Answer", "Target Pass", "Target Latency (ms)",
}

// utf8BOM makes the CSV open cleanly in spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type structuredRun struct {
	*result.Run
	Stats result.Stats `json:"stats"`
}

type structuredDoc struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Summary     result.Stats    `json:"summary"`
	Runs        []structuredRun `json:"runs"`
}

// Structured writes a self-contained JSON snapshot: every run with its full
// result list and per-run stats, plus whole-history summary stats.
func Structured(w io.Writer, runs []*result.Run) error {
	summary, err := result.AggregateRuns(runs)
	if err != nil {
		return err
	}
	doc := structuredDoc{
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Runs:        make([]structuredRun, 0, len(runs)),
	}
	for _, r := range runs {
		stats, err := result.Aggregate(r.Results)
		if err != nil {
			return fmt.Errorf("run %s: %w", r.ID, err)
		}
		doc.Runs = append(doc.Runs, structuredRun{Run: r, Stats: stats})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Tabular writes one CSV row per (run, test result) pair, UTF-8 with BOM.
// Field quoting is handled by encoding/csv and round-trips losslessly.
func Tabular(w io.Writer, runs []*result.Run) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, run := range runs {
		for _, tr := range run.Results {
			row := []string{
				run.ID,
				string(run.Category),
				run.CreatedAt.UTC().Format(time.RFC3339),
				model(run.Baseline),
				model(run.Target),
				tr.TestID,
				tr.Question,
				tr.Expected,
				answer(tr.Baseline),
				verdict(tr.Baseline.Pass),
				latencyMS(tr.Baseline.Latency),
				answer(tr.Target),
				verdict(tr.Target.Pass),
				latencyMS(tr.Target.Latency),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row for %s/%s: %w", run.ID, tr.TestID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func model(s result.Snapshot) string {
	return s.Provider + "/" + s.Model
}

func answer(s result.Side) string {
	if s.Answer == nil {
		return ""
	}
	return *s.Answer
}

func verdict(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

func latencyMS(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
