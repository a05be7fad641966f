package result

import (
	"time"

	"github.com/gridprobe/faceoff/internal/catalog"
)

// Snapshot records which provider/model a run used. Credentials are
// deliberately not part of it; snapshots get persisted and exported.
type Snapshot struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Side holds one provider's outcome for a single test case. A nil Answer
// means the call failed; Pass is false in that case, always.
type Side struct {
	Answer  *string       `json:"answer"`
	Pass    bool          `json:"pass"`
	Latency time.Duration `json:"latency_ns"`
}

// TestResult is one row per test case per run, created once after both
// provider calls complete and never mutated.
type TestResult struct {
	TestID   string           `json:"test_id"`
	Category catalog.Category `json:"category"`
	Question string           `json:"question"`
	Expected string           `json:"expected"`
	Baseline Side             `json:"baseline"`
	Target   Side             `json:"target"`
}

// Run is a completed execution of one category against a baseline/target
// pair. Runs are append-only: once stored they are never mutated, only
// removed wholesale by a clear.
type Run struct {
	ID        string           `json:"id"`
	Category  catalog.Category `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
	Baseline  Snapshot         `json:"baseline"`
	Target    Snapshot         `json:"target"`
	Results   []TestResult     `json:"results"`
}
