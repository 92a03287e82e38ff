package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/JulietaG13/tp-agente/internal/llm"
)

func scoreOf(t *testing.T, raw string) int {
	t.Helper()
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(raw)})
	s := NewScorer(mock)
	return s.Score(context.Background(), "What is quorum replication?", []string{"a", "b", "c", "d"})
}

func TestScore_ParsesDigit(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"bare digit", `4`, 4},
		{"digit in prose", `I would rate this question a 2 out of 5.`, 2},
		{"lowest", `1`, 1},
		{"highest", `5`, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreOf(t, tc.raw); got != tc.want {
				t.Errorf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestScore_FallbackOnUnusableOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no digits", `moderately hard`},
		{"out of scale", `7`},
		{"zero", `0`},
		{"empty", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreOf(t, tc.raw); got != DefaultDifficulty {
				t.Errorf("want fallback %d, got %d", DefaultDifficulty, got)
			}
		})
	}
}

func TestScore_FallbackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	s := NewScorer(mock)

	if got := s.Score(context.Background(), "Q?", []string{"a", "b", "c", "d"}); got != DefaultDifficulty {
		t.Errorf("want fallback %d, got %d", DefaultDifficulty, got)
	}
}
