// Package student implements the simulated test-taker: an LLM prompted to
// answer each question in character for a chosen persona. The student keeps
// its own turn counter because the learner persona's behavior shifts as the
// session progresses.
package student

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/persona"
)

// Student answers multiple choice questions in character.
type Student struct {
	provider  llm.Provider
	profile   persona.Profile
	turnCount int
}

// New creates a Student playing the given persona.
func New(provider llm.Provider, profile persona.Profile) *Student {
	return &Student{provider: provider, profile: profile}
}

// TurnCount returns how many questions the student has been asked.
func (s *Student) TurnCount() int {
	return s.turnCount
}

// Answer asks the student one question and returns the chosen letter (A-D).
// The reply is reduced to a single letter via ExtractLetter; an empty
// result means the student's reply named no option, which the caller grades
// as incorrect.
func (s *Student) Answer(ctx context.Context, question string, options []string) (string, error) {
	ctx = llm.WithPurpose(ctx, "student-answer")
	s.turnCount++

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nOptions:\n", question)
	for i, opt := range options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, opt)
	}
	b.WriteString("\nSelect the best answer (A/B/C/D):")

	req := llm.Request{
		System: s.profile.SystemPrompt(s.turnCount),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		MaxTokens:   16,
		Temperature: 0.7,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("student call failed: %w", err)
	}
	return ExtractLetter(string(resp.Content)), nil
}

var letterRe = regexp.MustCompile(`\b([A-D])\b`)

// ExtractLetter reduces a free-form reply to one of A-D. Preference order:
// the whole reply is a single letter, then the first standalone letter,
// then a leading letter. Anything else yields "".
func ExtractLetter(raw string) string {
	content := strings.ToUpper(strings.TrimSpace(raw))
	if content == "" {
		return ""
	}
	if len(content) == 1 {
		if strings.Contains("ABCD", content) {
			return content
		}
		return ""
	}
	if m := letterRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if first := content[:1]; strings.Contains("ABCD", first) {
		return first
	}
	return ""
}
