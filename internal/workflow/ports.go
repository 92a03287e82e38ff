// Package workflow implements the per-turn orchestration that produces one
// approved question: an author drafts a multiple choice question, a
// difficulty reviewer accepts or rejects it against the learner's recent
// performance, and an optional feedback analyst advises the author once
// enough history exists. The orchestrator bounds every retry loop so a
// turn always terminates.
package workflow

import (
	"context"

	"github.com/JulietaG13/tp-agente/internal/perf"
)

// Draft is a structured authoring result before registration. Options are
// in authored order; the correct answer is identified by index.
type Draft struct {
	Question     string
	Options      []string
	CorrectIndex int
}

// CorrectLetter returns the letter (A-D) of the correct option in authored
// order.
func (d Draft) CorrectLetter() string {
	if d.CorrectIndex < 0 || d.CorrectIndex >= len(d.Options) {
		return ""
	}
	return string(rune('A' + d.CorrectIndex))
}

// Review is the difficulty reviewer's verdict on a draft.
type Review struct {
	Approved bool
	Feedback string
}

// QuestionAuthor drafts one question, steered by the accumulated advisory
// text (reviewer rejections and analyst feedback).
//
// A malformed structured result surfaces as *llm.ErrInvalidResponse and is
// retried by the orchestrator; transport errors abort the turn.
type QuestionAuthor interface {
	Author(ctx context.Context, advisory string) (*Draft, error)
}

// DifficultyReviewer judges whether a draft suits the learner's current
// performance. Implementations recover malformed verdicts locally by
// approving, so only transport errors escape.
type DifficultyReviewer interface {
	Review(ctx context.Context, draft Draft, snap perf.Snapshot) (Review, error)
}

// FeedbackAnalyst turns the performance history into free-text advice for
// the author. Only consulted once enough answers have accumulated.
type FeedbackAnalyst interface {
	Analyze(ctx context.Context, snap perf.Snapshot) (string, error)
}
