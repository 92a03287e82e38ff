package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/perf"
)

const analystSystemPrompt = `You are a learning analyst for an adaptive assessment.

You receive a summary of a student's answers so far. Write two or three short
sentences of advice for the question author: which direction difficulty should
move and what to watch out for. Plain text only, no lists, no headings.`

// LLMAnalyst implements FeedbackAnalyst using an LLM provider. Its output
// is free text, so any non-empty response is usable as-is.
type LLMAnalyst struct {
	provider llm.Provider
	config   Config
}

// NewAnalyst creates an LLMAnalyst with the given provider and config.
func NewAnalyst(provider llm.Provider, cfg Config) *LLMAnalyst {
	return &LLMAnalyst{provider: provider, config: cfg}
}

// Analyze summarizes the history into advisory text for the author.
func (a *LLMAnalyst) Analyze(ctx context.Context, snap perf.Snapshot) (string, error) {
	ctx = llm.WithPurpose(ctx, "performance-feedback")

	var b strings.Builder
	fmt.Fprintf(&b, "Answered: %d (%d correct, %d incorrect, %.0f%%)\n",
		snap.Total, snap.Correct, snap.Incorrect, snap.Percentage)
	b.WriteString("Most recent answers, oldest first:\n")
	for i, ans := range snap.Recent {
		verdict := "correct"
		if !ans.IsCorrect {
			verdict = "incorrect"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, verdict)
	}

	req := llm.Request{
		System: analystSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: strings.TrimRight(b.String(), "\n")},
		},
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("feedback call failed: %w", err)
	}
	return strings.TrimSpace(string(resp.Content)), nil
}
