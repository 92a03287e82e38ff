package student

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/persona"
)

func TestExtractLetter(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"B", "B"},
		{" b \n", "B"},
		{"The answer is C.", "C"},
		{"A) because the broker decouples producers", "A"},
		{"I think D is correct", "D"},
		{"E", ""},
		{"maybe", ""},
		{"", ""},
		{"42", ""},
	}
	for _, tc := range cases {
		if got := ExtractLetter(tc.raw); got != tc.want {
			t.Errorf("ExtractLetter(%q): want %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestAnswer_FormatsOptions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`B`)})
	p, err := persona.FromName("expert")
	if err != nil {
		t.Fatal(err)
	}
	s := New(mock, p)

	letter, err := s.Answer(context.Background(), "Which protocol is connectionless?", []string{"TCP", "UDP", "HTTP", "FTP"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if letter != "B" {
		t.Errorf("expected B, got %q", letter)
	}

	userMsg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"Which protocol is connectionless?", "A) TCP", "B) UDP", "Select the best answer"} {
		if !strings.Contains(userMsg, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
	if !strings.Contains(mock.Calls[0].System, "EXPERT") {
		t.Errorf("expected expert persona prompt, got %q", mock.Calls[0].System)
	}
}

func TestAnswer_LearnerPromptShiftsWithTurns(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := 0; i < 12; i++ {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`A`)})
	}
	p, err := persona.FromName("learner")
	if err != nil {
		t.Fatal(err)
	}
	s := New(mock, p)

	for i := 0; i < 12; i++ {
		if _, err := s.Answer(context.Background(), "Q?", []string{"a", "b", "c", "d"}); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}
	if s.TurnCount() != 12 {
		t.Fatalf("expected 12 turns, got %d", s.TurnCount())
	}
	if !strings.Contains(mock.Calls[0].System, "Novice") {
		t.Errorf("turn 1 should behave like a novice: %q", mock.Calls[0].System)
	}
	if !strings.Contains(mock.Calls[7].System, "some right, some wrong") {
		t.Errorf("turn 8 should be mixed: %q", mock.Calls[7].System)
	}
	if !strings.Contains(mock.Calls[11].System, "Expert") {
		t.Errorf("turn 12 should behave like an expert: %q", mock.Calls[11].System)
	}
}
