package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndFinishRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := &Run{
		ID:             "run-1",
		Persona:        "expert",
		RequestedTurns: 10,
		StartedAt:      time.Now(),
	}
	require.NoError(t, s.CreateRun(ctx, run))

	require.NoError(t, s.FinishRun(ctx, "run-1", 8, 72.5, "trace.json", "report.md"))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "expert", got.Persona)
	assert.Equal(t, 10, got.RequestedTurns)
	assert.Equal(t, 8, got.CompletedTurns)
	require.NotNil(t, got.FinalScore)
	assert.InDelta(t, 72.5, *got.FinalScore, 1e-9)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, "trace.json", got.TracePath)
}

func TestFinishRun_UnknownID(t *testing.T) {
	s := openTestStore(t)
	err := s.FinishRun(context.Background(), "nope", 0, 0, "", "")
	assert.Error(t, err)
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreateRun(ctx, &Run{
			ID:             id,
			Persona:        "novice",
			RequestedTurns: 5,
			StartedAt:      base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	// Unfinished runs have no score yet.
	assert.Nil(t, runs[0].FinalScore)
}

func TestAppendLLMRequestAndUsage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []LLMRequestEventData{
		{RunID: "r1", Provider: "anthropic", Model: "m1", Purpose: "author", InputTokens: 100, OutputTokens: 50, LatencyMs: 900, Success: true},
		{RunID: "r1", Provider: "anthropic", Model: "m1", Purpose: "review", InputTokens: 200, OutputTokens: 30, LatencyMs: 700, Success: true},
		{RunID: "r2", Provider: "anthropic", Model: "m2", Purpose: "student", InputTokens: 10, OutputTokens: 1, Success: false, ErrorMessage: "timeout"},
	}
	for _, e := range events {
		require.NoError(t, s.AppendLLMRequest(ctx, e))
	}

	usage, err := s.UsageByModel(ctx, "")
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "m1", usage[0].Model)
	assert.Equal(t, 2, usage[0].Calls)
	assert.Equal(t, 300, usage[0].InputTokens)
	assert.Equal(t, 80, usage[0].OutputTokens)

	scoped, err := s.UsageByModel(ctx, "r2")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "m2", scoped[0].Model)
}
