package metrics

import (
	"math"
	"testing"

	"github.com/JulietaG13/tp-agente/internal/persona"
	"github.com/JulietaG13/tp-agente/internal/trace"
)

func turns(difficulties []int, correct []bool) []trace.TurnRecord {
	rs := make([]trace.TurnRecord, len(difficulties))
	for i, d := range difficulties {
		rs[i] = trace.TurnRecord{
			TurnIndex:       i + 1,
			DifficultyScore: d,
			IsCorrect:       correct[i],
		}
	}
	return rs
}

func allCorrect(n int) []bool {
	c := make([]bool, n)
	for i := range c {
		c[i] = true
	}
	return c
}

func TestEMAConvergenceError(t *testing.T) {
	if got := EMAConvergenceError(nil, 5.0); got != 0 {
		t.Errorf("empty input: want 0, got %f", got)
	}

	// All difficulties at the target level converge exactly.
	rs := turns([]int{3, 3, 3, 3}, allCorrect(4))
	if got := EMAConvergenceError(rs, 3.0); got != 0 {
		t.Errorf("constant at target: want 0, got %f", got)
	}

	// Never negative.
	rs = turns([]int{1, 5, 2, 4}, allCorrect(4))
	if got := EMAConvergenceError(rs, 3.0); got < 0 {
		t.Errorf("error must be non-negative, got %f", got)
	}

	// Seed is the first difficulty, not zero.
	rs = turns([]int{4}, allCorrect(1))
	if got := EMAConvergenceError(rs, 5.0); got != 1.0 {
		t.Errorf("single turn: want 1.0, got %f", got)
	}
}

func TestErrorSensitivity(t *testing.T) {
	// No errors is vacuously fully forgiving.
	rs := turns([]int{2, 3, 4}, allCorrect(3))
	if got := ErrorSensitivity(rs); got != 1.0 {
		t.Errorf("no errors: want 1.0, got %f", got)
	}
	if got := ErrorSensitivity(nil); got != 1.0 {
		t.Errorf("empty: want 1.0, got %f", got)
	}

	// One error followed by a drop, one followed by a rise.
	rs = turns([]int{3, 2, 3, 4}, []bool{false, true, false, true})
	if got := ErrorSensitivity(rs); got != 0.5 {
		t.Errorf("want 0.5, got %f", got)
	}

	// Error on the final turn counts in the denominator but cannot drop.
	rs = turns([]int{3, 3}, []bool{true, false})
	if got := ErrorSensitivity(rs); got != 0 {
		t.Errorf("trailing error: want 0, got %f", got)
	}

	// Equal following difficulty is not a drop.
	rs = turns([]int{3, 3}, []bool{false, true})
	if got := ErrorSensitivity(rs); got != 0 {
		t.Errorf("no drop on equal difficulty: want 0, got %f", got)
	}
}

func TestCalibrationOffset(t *testing.T) {
	if got := CalibrationOffset(nil, 3.0); got != 0 {
		t.Errorf("empty input: want 0, got %f", got)
	}

	rs := turns([]int{2, 2, 2}, allCorrect(3))
	if got := CalibrationOffset(rs, 3.0); got != -1.0 {
		t.Errorf("under-challenging: want -1.0, got %f", got)
	}
	if got := CalibrationOffset(rs, 1.5); got != 0.5 {
		t.Errorf("over-challenging: want 0.5, got %f", got)
	}
}

func TestWeightedProficiency(t *testing.T) {
	if got := WeightedProficiency(nil); got != 0 {
		t.Errorf("empty input: want 0, got %f", got)
	}

	// Equal difficulties reduce to plain accuracy.
	rs := turns([]int{3, 3, 3, 3}, []bool{true, true, false, false})
	if got := WeightedProficiency(rs); got != 0.5 {
		t.Errorf("want 0.5, got %f", got)
	}

	// Harder correct answers earn more credit.
	rs = turns([]int{1, 5}, []bool{false, true})
	if got := WeightedProficiency(rs); got != round(5.0/6.0, 4) {
		t.Errorf("want %f, got %f", round(5.0/6.0, 4), got)
	}
}

func TestExpertLockInScenario(t *testing.T) {
	p, err := persona.FromName("expert")
	if err != nil {
		t.Fatal(err)
	}
	rs := turns([]int{5, 5, 4, 5, 5}, allCorrect(5))

	if got := EMAConvergenceError(rs, p.TrueLevel); got >= 0.2 {
		t.Errorf("expected lock-in band (<0.2), got %f", got)
	}
	if got := CalibrationOffset(rs, p.TrueLevel); got != -0.2 {
		t.Errorf("want calibration -0.2, got %f", got)
	}
	if got := ErrorSensitivity(rs); got != 1.0 {
		t.Errorf("all correct: want sensitivity 1.0, got %f", got)
	}
	if got := WeightedProficiency(rs); got != 1.0 {
		t.Errorf("all correct: want proficiency 1.0, got %f", got)
	}
}

func TestFidelityScore(t *testing.T) {
	p, err := persona.FromName("expert")
	if err != nil {
		t.Fatal(err)
	}

	// Perfect convergence and calibration with on-target behavior scores
	// near the top; only the sensitivity and proficiency targets (0.3,
	// 0.75) keep it below 100.
	rs := turns([]int{5, 5, 5, 5}, allCorrect(4))
	got := FidelityScore(rs, p)
	if got < 0 || got > 100 {
		t.Fatalf("score out of range: %f", got)
	}
	convAndCalib := (weightConvergence + weightCalibration) * 100
	if got < convAndCalib {
		t.Errorf("perfect convergence should score at least %f, got %f", convAndCalib, got)
	}

	// Far-off difficulty must score lower than lock-in.
	off := turns([]int{1, 1, 1, 1}, allCorrect(4))
	if FidelityScore(off, p) >= got {
		t.Errorf("off-target run should score below lock-in run")
	}
}

func TestCompute(t *testing.T) {
	p, err := persona.FromName("novice")
	if err != nil {
		t.Fatal(err)
	}
	rs := turns([]int{2, 1, 2}, []bool{false, true, true})
	rep := Compute(rs, p)

	if rep.EMAConvergenceError != EMAConvergenceError(rs, p.TrueLevel) {
		t.Error("convergence mismatch")
	}
	if rep.ErrorSensitivity != 1.0 {
		t.Errorf("error followed by drop: want 1.0, got %f", rep.ErrorSensitivity)
	}
	if rep.FidelityScore != FidelityScore(rs, p) {
		t.Error("fidelity mismatch")
	}
	if math.Signbit(rep.WeightedProficiency) {
		t.Error("proficiency must be non-negative")
	}
}
