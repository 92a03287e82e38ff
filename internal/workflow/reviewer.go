package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/perf"
)

const reviewerSystemPrompt = `You are a difficulty reviewer for an adaptive assessment.

You receive a drafted multiple choice question and a summary of the student's
recent performance. Decide whether the question's difficulty suits the student
right now:
- If the student has been answering correctly, questions should get harder.
- If the student has been struggling, questions should get easier.
- Reject questions that are ambiguous or whose marked answer is wrong.

When rejecting, give the author one or two concrete, actionable sentences of
feedback. When approving, leave the feedback empty.`

// LLMReviewer implements DifficultyReviewer using an LLM provider.
//
// A verdict that cannot be parsed is treated as an approval: a malformed
// reviewer response must never stall the turn.
type LLMReviewer struct {
	provider llm.Provider
	config   Config
}

// NewReviewer creates an LLMReviewer with the given provider and config.
func NewReviewer(provider llm.Provider, cfg Config) *LLMReviewer {
	return &LLMReviewer{provider: provider, config: cfg}
}

type reviewOutput struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback"`
}

// Review judges the draft against the performance snapshot.
func (r *LLMReviewer) Review(ctx context.Context, draft Draft, snap perf.Snapshot) (Review, error) {
	ctx = llm.WithPurpose(ctx, "difficulty-review")

	req := llm.Request{
		System: reviewerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReviewMessage(draft, snap)},
		},
		Schema:      ReviewSchema,
		MaxTokens:   r.config.MaxTokens,
		Temperature: r.config.Temperature,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return Review{Approved: true, Feedback: "approved by default: unreadable review verdict"}, nil
		}
		return Review{}, fmt.Errorf("review call failed: %w", err)
	}

	var raw reviewOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Review{Approved: true, Feedback: "approved by default: unreadable review verdict"}, nil
	}
	return Review{Approved: raw.Approved, Feedback: strings.TrimSpace(raw.Feedback)}, nil
}

// buildReviewMessage formats the draft and the recency snapshot for the
// reviewer prompt.
func buildReviewMessage(draft Draft, snap perf.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", draft.Question)
	for i, opt := range draft.Options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, opt)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", draft.CorrectLetter())

	b.WriteString("\nStudent performance:\n")
	if snap.Total == 0 {
		b.WriteString("No answers recorded yet.")
		return b.String()
	}
	fmt.Fprintf(&b, "Answered: %d (%d correct, %d incorrect, %.0f%%)\n",
		snap.Total, snap.Correct, snap.Incorrect, snap.Percentage)
	b.WriteString("Most recent answers, oldest first:\n")
	for i, a := range snap.Recent {
		verdict := "correct"
		if !a.IsCorrect {
			verdict = "incorrect"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, verdict)
	}
	return strings.TrimRight(b.String(), "\n")
}
