// Package benchmark drives the full evaluation: N sequential turns of the
// question workflow against a simulated student, producing the trace the
// metrics and coverage engines consume. Turns never overlap; each turn's
// authoring context depends on the answers recorded by the previous one.
package benchmark

import (
	"context"
	"fmt"
	"time"

	"github.com/JulietaG13/tp-agente/internal/console"
	"github.com/JulietaG13/tp-agente/internal/perf"
	"github.com/JulietaG13/tp-agente/internal/persona"
	"github.com/JulietaG13/tp-agente/internal/trace"
	"github.com/JulietaG13/tp-agente/internal/workflow"
)

// Answerer is the simulated student port.
type Answerer interface {
	Answer(ctx context.Context, question string, options []string) (string, error)
}

// DifficultyScorer judges question difficulty 1-5. Best-effort by
// contract: it degrades internally instead of failing.
type DifficultyScorer interface {
	Score(ctx context.Context, question string, options []string) int
}

// TopicLabeler tags a question with catalog subtopic ids.
type TopicLabeler interface {
	Label(ctx context.Context, question string, options []string) ([]int, error)
}

// Runner executes one benchmark run. The store must be fresh: reusing one
// across runs would leak stale history into the recency statistics.
type Runner struct {
	Orchestrator *workflow.Orchestrator
	Store        *perf.Store
	Student      Answerer
	Scorer       DifficultyScorer
	Labeler      TopicLabeler
	Profile      persona.Profile
	Turns        int
	Sleep        time.Duration
	Console      *console.Console
}

// Run executes the configured number of turns. Any port transport error
// ends the run early; the returned trace always holds every turn that
// completed, alongside the abort cause if there was one. A cancelled
// context also ends the run, preserving completed turns.
func (r *Runner) Run(ctx context.Context) (*trace.Trace, error) {
	var (
		results []trace.TurnRecord
		runErr  error
	)

	for turn := 1; turn <= r.Turns; turn++ {
		r.Console.TurnHeader(turn, r.Turns)

		rec, err := r.runTurn(ctx, turn)
		if err != nil {
			runErr = fmt.Errorf("turn %d: %w", turn, err)
			r.Console.Event("orchestrator", fmt.Sprintf("turn aborted: %v", err))
			break
		}
		results = append(results, *rec)

		if r.Sleep > 0 && turn < r.Turns {
			if err := interruptibleSleep(ctx, r.Sleep); err != nil {
				runErr = err
				break
			}
		}
	}

	return trace.New(r.Profile, r.Turns, results), runErr
}

func (r *Runner) runTurn(ctx context.Context, turn int) (*trace.TurnRecord, error) {
	q, err := r.Orchestrator.Turn(ctx, workflow.RequestNewQuestion)
	if err != nil {
		return nil, err
	}

	difficulty := r.Scorer.Score(ctx, q.Text, q.Options)

	subtopics, err := r.Labeler.Label(ctx, q.Text, q.Options)
	if err != nil {
		return nil, err
	}

	letter, err := r.Student.Answer(ctx, q.Text, q.Options)
	if err != nil {
		return nil, err
	}
	r.Console.Event("student", fmt.Sprintf("answered %q", letter))

	correctLetter := q.CorrectLetter()
	isCorrect := letter != "" && letter == correctLetter
	r.Store.RecordAnswer(q.ID, letter, isCorrect)
	r.Console.Result(isCorrect, letter, correctLetter)

	return &trace.TurnRecord{
		TurnIndex:       turn,
		Question:        q.Text,
		Options:         q.Options,
		DifficultyScore: difficulty,
		SubtopicIDs:     subtopics,
		IsCorrect:       isCorrect,
		StudentAnswer:   letter,
		CorrectAnswer:   correctLetter,
	}, nil
}

// interruptibleSleep waits between turns but never blocks a cancellation.
func interruptibleSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
