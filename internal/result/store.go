package result

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/gridprobe/faceoff/internal/catalog"
)

// Store is the append-only run history. Append is atomic with respect to
// concurrent List and Clear calls: no reader ever observes a torn run.
type Store interface {
	Append(run *Run) error
	List() ([]*Run, error)
	Clear() error
	Close() error
}

// SQLiteStore persists runs in a single SQLite table, one row per run with
// the result list serialized as JSON. A run row is written in one
// transaction, which gives Append its atomicity.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenStore opens (creating if needed) the run store at path.
func OpenStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening run store %s: %w", path, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			created_at TEXT NOT NULL,
			baseline_provider TEXT NOT NULL,
			baseline_model TEXT NOT NULL,
			target_provider TEXT NOT NULL,
			target_model TEXT NOT NULL,
			results TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(run *Run) error {
	if run == nil || len(run.Results) == 0 {
		return fmt.Errorf("refusing to append empty run")
	}
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("marshaling results for run %s: %w", run.ID, err)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting append transaction: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO runs (id, category, created_at, baseline_provider, baseline_model,
			target_provider, target_model, results) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Category), run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Baseline.Provider, run.Baseline.Model,
		run.Target.Provider, run.Target.Model,
		string(results),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("appending run %s: %w", run.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", run.ID, err)
	}
	return nil
}

// List returns every stored run, oldest first.
func (s *SQLiteStore) List() ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT id, category, created_at, baseline_provider, baseline_model,
			target_provider, target_model, results
		FROM runs ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			run       Run
			category  string
			createdAt string
			results   string
		)
		if err := rows.Scan(&run.ID, &category, &createdAt,
			&run.Baseline.Provider, &run.Baseline.Model,
			&run.Target.Provider, &run.Target.Model, &results); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		run.Category = catalog.Category(category)
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for run %s: %w", run.ID, err)
		}
		run.CreatedAt = t
		if err := json.Unmarshal([]byte(results), &run.Results); err != nil {
			return nil, fmt.Errorf("parsing results for run %s: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Clear removes every stored run. Irreversible; the CLI gates it behind an
// explicit flag.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
