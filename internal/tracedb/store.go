// Package tracedb persists resolution traces in SQLite for later
// inspection. It uses modernc.org/sqlite for pure-Go, CGO-free database
// access.
package tracedb

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/normanking/synapse/pkg/adapt"
)

//go:embed schema.sql
var schema string

// Store provides access to the resolution trace database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the trace database at the given path and
// initializes the schema. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open trace database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) init() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists one resolution trace.
func (s *Store) Record(ctx context.Context, trace *adapt.ResolutionTrace) error {
	stepsJSON, err := json.Marshal(trace.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO resolutions (
			id, object_type, target_capability, outcome,
			hops, distance, offers_applied, steps_json,
			duration_us, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trace.ID, trace.ObjectType, trace.Target, string(trace.Outcome),
		trace.Hops, trace.Distance, trace.OffersApplied, string(stepsJSON),
		trace.Duration.Microseconds(), trace.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert resolution: %w", err)
	}
	return nil
}

// Get retrieves a trace by ID. Returns nil without error when no trace
// with that ID exists.
func (s *Store) Get(ctx context.Context, id string) (*adapt.ResolutionTrace, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, object_type, target_capability, outcome,
		       hops, distance, offers_applied, steps_json,
		       duration_us, created_at
		FROM resolutions WHERE id = ?
	`, id)

	trace, err := scanTrace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get resolution: %w", err)
	}
	return trace, nil
}

// Recent returns the most recently recorded traces, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*adapt.ResolutionTrace, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, object_type, target_capability, outcome,
		       hops, distance, offers_applied, steps_json,
		       duration_us, created_at
		FROM resolutions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var traces []*adapt.ResolutionTrace
	for rows.Next() {
		trace, err := scanTrace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		traces = append(traces, trace)
	}
	return traces, rows.Err()
}

// TargetStat aggregates recorded outcomes for one target capability.
type TargetStat struct {
	Target  string
	Total   int
	Adapted int
	NoPath  int
}

// TargetStats returns per-target aggregates over all recorded traces,
// busiest targets first.
func (s *Store) TargetStats(ctx context.Context) ([]TargetStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT target_capability,
		       COUNT(*),
		       SUM(CASE WHEN outcome = 'adapted' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN outcome = 'no_path' THEN 1 ELSE 0 END)
		FROM resolutions
		GROUP BY target_capability
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregate resolutions: %w", err)
	}
	defer rows.Close()

	var stats []TargetStat
	for rows.Next() {
		var stat TargetStat
		if err := rows.Scan(&stat.Target, &stat.Total, &stat.Adapted, &stat.NoPath); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrace(row scanner) (*adapt.ResolutionTrace, error) {
	var (
		trace      adapt.ResolutionTrace
		outcome    string
		stepsJSON  string
		durationUS int64
		createdAt  string
	)

	err := row.Scan(
		&trace.ID, &trace.ObjectType, &trace.Target, &outcome,
		&trace.Hops, &trace.Distance, &trace.OffersApplied, &stepsJSON,
		&durationUS, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	trace.Outcome = adapt.Outcome(outcome)
	trace.Duration = time.Duration(durationUS) * time.Microsecond

	if err := json.Unmarshal([]byte(stepsJSON), &trace.Steps); err != nil {
		return nil, fmt.Errorf("unmarshal steps: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		trace.StartedAt = ts
	}

	return &trace, nil
}
