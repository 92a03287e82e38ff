// Package scoring assigns each approved question a 1-5 difficulty score
// through an LLM judge. Scoring is best-effort: the benchmark must not
// lose a turn to a flaky judge, so every failure degrades to the moderate
// default instead of returning an error.
package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/JulietaG13/tp-agente/internal/llm"
)

// DefaultDifficulty is the fallback when the judge's output is unusable.
const DefaultDifficulty = 3

const judgeSystemPrompt = `You are an objective educational expert.
Your task is to analyze a multiple-choice question and assign it a difficulty score from 1 to 5.

Scale:
1: Recall of basic facts, obvious answer.
2: Simple concept understanding.
3: Application of concepts, requires some reasoning.
4: Analysis or complex reasoning, close distractors.
5: Synthesis or evaluation, very subtle distinctions, complex scenario.

Output ONLY the number (1-5).`

// Scorer judges question difficulty on a 1-5 scale.
type Scorer struct {
	provider llm.Provider
}

// NewScorer creates a Scorer backed by the given provider.
func NewScorer(provider llm.Provider) *Scorer {
	return &Scorer{provider: provider}
}

var scoreRe = regexp.MustCompile(`\b([1-5])\b`)

// Score returns the judged difficulty. Never fails: unparseable output,
// out-of-range numbers, and provider errors all yield DefaultDifficulty.
func (s *Scorer) Score(ctx context.Context, question string, options []string) int {
	ctx = llm.WithPurpose(ctx, "difficulty-score")

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the difficulty of this question:\n\nQuestion: %s\n\nOptions:\n", question)
	for i, opt := range options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, opt)
	}
	b.WriteString("\nReturn ONLY the difficulty score (1-5).")

	req := llm.Request{
		System: judgeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		MaxTokens:   16,
		Temperature: 0,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return DefaultDifficulty
	}

	m := scoreRe.FindStringSubmatch(string(resp.Content))
	if m == nil {
		return DefaultDifficulty
	}
	return int(m[1][0] - '0')
}
