package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is one archived benchmark run.
type Run struct {
	ID             string
	Persona        string
	RequestedTurns int
	CompletedTurns int
	FinalScore     *float64 // nil until the run finishes
	StartedAt      time.Time
	FinishedAt     *time.Time
	TracePath      string
	ReportPath     string
}

// CreateRun inserts a new run row at benchmark start.
func (s *Store) CreateRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, persona, requested_turns, started_at, trace_path, report_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Persona, run.RequestedTurns, run.StartedAt.UTC(), run.TracePath, run.ReportPath)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the outcome of a run. Called once, after the last turn
// (or after an abort — completedTurns may be less than requested).
func (s *Store) FinishRun(ctx context.Context, id string, completedTurns int, finalScore float64, tracePath, reportPath string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET completed_turns = ?, final_score = ?, finished_at = ?, trace_path = ?, report_path = ?
		 WHERE id = ?`,
		completedTurns, finalScore, time.Now().UTC(), tracePath, reportPath, id)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %q not found", id)
	}
	return nil
}

// ListRuns returns archived runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, persona, requested_turns, completed_turns, final_score,
	             started_at, finished_at, trace_path, report_path
	      FROM runs ORDER BY started_at DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, q+" LIMIT ?", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var score sql.NullFloat64
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Persona, &r.RequestedTurns, &r.CompletedTurns,
			&score, &r.StartedAt, &finished, &r.TracePath, &r.ReportPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if score.Valid {
			v := score.Float64
			r.FinalScore = &v
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
