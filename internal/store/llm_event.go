package store

import (
	"context"
	"fmt"
	"time"
)

// LLMRequestEventData captures one LLM API call made during a run.
type LLMRequestEventData struct {
	RunID        string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to LLM request events. The llm package's
// logging decorator writes through this interface so it doesn't depend on
// the concrete SQLite store.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// AppendLLMRequest records an LLM API call event.
func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		 (run_id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.RunID, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert llm request event: %w", err)
	}
	return nil
}

// ModelUsage aggregates token counts per model, for cost estimation.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// UsageByModel returns aggregated token usage grouped by model.
// runID filters to one run; empty string aggregates across all runs.
func (s *Store) UsageByModel(ctx context.Context, runID string) ([]ModelUsage, error) {
	q := `SELECT model, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
	      FROM llm_requests`
	args := []any{}
	if runID != "" {
		q += " WHERE run_id = ?"
		args = append(args, runID)
	}
	q += " GROUP BY model ORDER BY model"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var usage []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
