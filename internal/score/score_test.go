package score

import (
	"math"
	"strings"
	"testing"
)

func TestProficiencyScorePeaksAtSweetSpot(t *testing.T) {
	if got := ProficiencyScore(0.75); got != 1.0 {
		t.Errorf("peak: want 1.0, got %f", got)
	}
	// Symmetric falloff.
	lo, hi := ProficiencyScore(0.5), ProficiencyScore(1.0)
	if math.Abs(lo-hi) > 1e-12 {
		t.Errorf("expected symmetric falloff, got %f vs %f", lo, hi)
	}
	if lo >= 1.0 {
		t.Errorf("off-peak must score below 1.0, got %f", lo)
	}
	// Roughly half credit at 0.25 deviation.
	if lo < 0.4 || lo > 0.5 {
		t.Errorf("expected ~0.46 at 0.25 deviation, got %f", lo)
	}
}

func TestFinal(t *testing.T) {
	// All signals perfect except proficiency pinned to the sweet spot.
	in := Inputs{
		EffectiveCoverage:     1.0,
		RemediationEfficiency: 1.0,
		WeightedProficiency:   0.75,
		ErrorSensitivity:      1.0,
	}
	if got := Final(in); got != 100.0 {
		t.Errorf("want 100.0, got %f", got)
	}

	if got := Final(Inputs{}); got != Final(Inputs{WeightedProficiency: 0.0}) {
		t.Error("zero inputs must be deterministic")
	}

	// Perfect accuracy scores below sweet-spot accuracy.
	in.WeightedProficiency = 1.0
	if got := Final(in); got >= 100.0 {
		t.Errorf("over-proficient run should lose points, got %f", got)
	}
}

func TestInterpret(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{92.1, "Excellent"},
		{85.0, "Excellent"},
		{84.99, "Good"},
		{70.0, "Good"},
		{60.0, "Fair"},
		{55.0, "Fair"},
		{54.99, "Poor"},
		{0, "Poor"},
	}
	for _, tc := range cases {
		if got := Interpret(tc.score); !strings.HasPrefix(got, tc.want) {
			t.Errorf("Interpret(%f): want prefix %q, got %q", tc.score, tc.want, got)
		}
	}
}
