package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JulietaG13/tp-agente/internal/llm"
)

const authorSystemPrompt = `You are a question author for an adaptive assessment.

Rules:
- Write a single multiple choice question about the given subject.
- The question text must be clear, self-contained, and in plain text. No markup.
- Provide exactly 4 options where exactly one is correct. Distractors should reflect plausible misconceptions, not random values.
- Adjust the difficulty according to the advisory notes: if the reviewer rejected a previous draft, follow its guidance precisely.
- Do not repeat a question you were told was already asked.`

// LLMAuthor implements QuestionAuthor using an LLM provider.
type LLMAuthor struct {
	provider llm.Provider
	config   Config
}

// NewAuthor creates an LLMAuthor with the given provider and config.
func NewAuthor(provider llm.Provider, cfg Config) *LLMAuthor {
	return &LLMAuthor{provider: provider, config: cfg}
}

// draftOutput is the raw LLM response before invariant checks.
type draftOutput struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Author drafts one question. The advisory text carries reviewer rejection
// feedback and analyst advice from earlier in the turn.
func (a *LLMAuthor) Author(ctx context.Context, advisory string) (*Draft, error) {
	ctx = llm.WithPurpose(ctx, "question-author")

	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", a.config.Subject)
	b.WriteString("\nAdvisory notes:\n")
	if strings.TrimSpace(advisory) == "" {
		b.WriteString("None. Write a question of moderate difficulty.")
	} else {
		b.WriteString(advisory)
	}

	req := llm.Request{
		System: authorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		Schema:      DraftSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("author call failed: %w", err)
	}

	var raw draftOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	d := &Draft{
		Question:     strings.TrimSpace(raw.Question),
		Options:      raw.Options,
		CorrectIndex: raw.CorrectIndex,
	}
	if err := checkDraft(d); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return d, nil
}

// checkDraft rejects drafts that violate the question shape: exactly 4
// distinct non-empty options and an in-range correct index.
func checkDraft(d *Draft) error {
	if d.Question == "" {
		return fmt.Errorf("empty question text")
	}
	if len(d.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(d.Options))
	}
	seen := make(map[string]bool, 4)
	for i, opt := range d.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
	if d.CorrectIndex < 0 || d.CorrectIndex > 3 {
		return fmt.Errorf("correct_index %d out of range", d.CorrectIndex)
	}
	return nil
}
