package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gridprobe/faceoff/internal/catalog"
	"github.com/gridprobe/faceoff/internal/export"
	"github.com/gridprobe/faceoff/internal/result"
)

func sampleRuns() []*result.Run {
	passAnswer := `The total is "2,500 MW", per the plan`
	return []*result.Run{
		{
			ID:        "20250601T120000.000",
			Category:  catalog.Retrieval,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Baseline:  result.Snapshot{Provider: "hosted", Model: "gpt-4o"},
			Target:    result.Snapshot{Provider: "local", Model: "llama3"},
			Results: []result.TestResult{
				{
					TestID:   "RET-003",
					Category: catalog.Retrieval,
					Question: `What, exactly, is the "total" Round 7 capacity target?`,
					Expected: "2,500 MW",
					Baseline: result.Side{Answer: &passAnswer, Pass: true, Latency: 900 * time.Millisecond},
					Target:   result.Side{Answer: nil, Pass: false, Latency: 60 * time.Second},
				},
			},
		},
	}
}

func TestTabularHeaderAndBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Tabular(&buf, sampleRuns()); err != nil {
		t.Fatalf("Tabular: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("CSV must start with a UTF-8 BOM")
	}
	r := csv.NewReader(bytes.NewReader(out[3:]))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	wantHeader := "Run ID,Category,Timestamp,Baseline Model,Target Model,Test ID,Question,Expected,Baseline Answer,Baseline Pass,Baseline Latency (ms),Target Answer,Target Pass,Target Latency (ms)"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header mismatch:\n got %s\nwant %s", got, wantHeader)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
}

func TestTabularRoundTrip(t *testing.T) {
	runs := sampleRuns()
	var buf bytes.Buffer
	if err := export.Tabular(&buf, runs); err != nil {
		t.Fatalf("Tabular: %v", err)
	}
	r := csv.NewReader(bytes.NewReader(buf.Bytes()[3:]))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-parsing CSV: %v", err)
	}
	row := records[1]
	tr := runs[0].Results[0]
	// Question, expected and answers must survive byte-for-byte despite
	// embedded commas and quotes.
	if row[6] != tr.Question {
		t.Errorf("question: got %q, want %q", row[6], tr.Question)
	}
	if row[7] != tr.Expected {
		t.Errorf("expected: got %q, want %q", row[7], tr.Expected)
	}
	if row[8] != *tr.Baseline.Answer {
		t.Errorf("baseline answer: got %q, want %q", row[8], *tr.Baseline.Answer)
	}
	if row[9] != "PASS" || row[12] != "FAIL" {
		t.Errorf("verdict columns: %q, %q", row[9], row[12])
	}
	if row[11] != "" {
		t.Errorf("failed side must export an empty answer, got %q", row[11])
	}
	if row[10] != "900" || row[13] != "60000" {
		t.Errorf("latency columns: %q, %q", row[10], row[13])
	}
}

func TestStructured(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Structured(&buf, sampleRuns()); err != nil {
		t.Fatalf("Structured: %v", err)
	}
	var doc struct {
		GeneratedAt time.Time    `json:"generatedAt"`
		Summary     result.Stats `json:"summary"`
		Runs        []struct {
			ID      string              `json:"id"`
			Results []result.TestResult `json:"results"`
			Stats   result.Stats        `json:"stats"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("parsing structured export: %v", err)
	}
	if doc.GeneratedAt.IsZero() {
		t.Error("generatedAt missing")
	}
	if doc.Summary.Total != 1 || doc.Summary.BaselineRate != 100 || doc.Summary.TargetRate != 0 {
		t.Errorf("summary: %+v", doc.Summary)
	}
	if len(doc.Runs) != 1 || doc.Runs[0].ID != "20250601T120000.000" {
		t.Fatalf("runs: %+v", doc.Runs)
	}
	if len(doc.Runs[0].Results) != 1 {
		t.Error("structured export must carry the full result list")
	}
	if doc.Runs[0].Stats.Gap != 100 {
		t.Errorf("per-run stats: %+v", doc.Runs[0].Stats)
	}
}

func TestStructuredEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	err := export.Structured(&buf, nil)
	if !errors.Is(err, result.ErrEmptyResultSet) {
		t.Errorf("expected ErrEmptyResultSet, got %v", err)
	}
}
