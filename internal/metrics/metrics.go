// Package metrics computes persona-fidelity metrics over a benchmark
// trace: did the adaptive system converge on the persona's true level,
// react to errors, and calibrate its challenge. All functions are pure
// over the turn sequence and degrade to explicit zero values on empty
// input, so partial traces are always well-defined.
package metrics

import (
	"math"

	"github.com/JulietaG13/tp-agente/internal/persona"
	"github.com/JulietaG13/tp-agente/internal/trace"
)

// Alpha is the EMA smoothing factor. Fixed; higher values would track the
// latest difficulty too closely to measure lock-in.
const Alpha = 0.3

// Fidelity score component weights.
const (
	weightConvergence = 0.40
	weightCalibration = 0.30
	weightSensitivity = 0.15
	weightProficiency = 0.15
)

// Report bundles every persona-fidelity metric for one trace.
type Report struct {
	EMAConvergenceError float64
	ErrorSensitivity    float64
	CalibrationOffset   float64
	WeightedProficiency float64
	FidelityScore       float64
}

// Compute evaluates all metrics for the trace against its persona profile.
func Compute(results []trace.TurnRecord, p persona.Profile) Report {
	return Report{
		EMAConvergenceError: EMAConvergenceError(results, p.TrueLevel),
		ErrorSensitivity:    ErrorSensitivity(results),
		CalibrationOffset:   CalibrationOffset(results, p.TrueLevel),
		WeightedProficiency: WeightedProficiency(results),
		FidelityScore:       FidelityScore(results, p),
	}
}

// EMAConvergenceError is the distance between the persona's true level and
// the exponential moving average of served difficulties. Zero means the
// system locked in on the persona exactly. Rounded to 3 decimals; empty
// input yields 0.
func EMAConvergenceError(results []trace.TurnRecord, trueLevel float64) float64 {
	if len(results) == 0 {
		return 0
	}
	ema := float64(results[0].DifficultyScore)
	for _, r := range results[1:] {
		ema = Alpha*float64(r.DifficultyScore) + (1-Alpha)*ema
	}
	return round(math.Abs(ema-trueLevel), 3)
}

// ErrorSensitivity is the fraction of incorrect turns whose immediately
// following turn was served a strictly lower difficulty. A trace with no
// errors is vacuously fully forgiving (1.0). An error on the final turn
// counts against sensitivity since no reaction was observed. Rounded to 2
// decimals.
func ErrorSensitivity(results []trace.TurnRecord) float64 {
	var errs, drops int
	for i, r := range results {
		if r.IsCorrect {
			continue
		}
		errs++
		if i+1 < len(results) && results[i+1].DifficultyScore < r.DifficultyScore {
			drops++
		}
	}
	if errs == 0 {
		return 1.0
	}
	return round(float64(drops)/float64(errs), 2)
}

// CalibrationOffset is the signed distance between the mean served
// difficulty and the persona's true level: negative means the system
// under-challenged, positive over-challenged. Rounded to 2 decimals;
// empty input yields 0.
func CalibrationOffset(results []trace.TurnRecord, trueLevel float64) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += float64(r.DifficultyScore)
	}
	return round(sum/float64(len(results))-trueLevel, 2)
}

// WeightedProficiency is the difficulty-weighted share of correct answers,
// in [0,1]. Harder questions earn more credit. Rounded to 4 decimals; zero
// total difficulty yields 0.
func WeightedProficiency(results []trace.TurnRecord) float64 {
	var earned, total float64
	for _, r := range results {
		total += float64(r.DifficultyScore)
		if r.IsCorrect {
			earned += float64(r.DifficultyScore)
		}
	}
	if total == 0 {
		return 0
	}
	return round(earned/total, 4)
}

// FidelityScore combines the four component metrics into a 0-100 score.
// Convergence and calibration errors decay exponentially; sensitivity and
// proficiency are judged by distance to the persona's behavioral targets.
// Rounded to 2 decimals.
func FidelityScore(results []trace.TurnRecord, p persona.Profile) float64 {
	convScore := math.Exp(-EMAConvergenceError(results, p.TrueLevel))
	calibScore := math.Exp(-math.Abs(CalibrationOffset(results, p.TrueLevel)))
	sensScore := targetScore(ErrorSensitivity(results), p.TargetSensitivity, 1)
	profScore := targetScore(WeightedProficiency(results), p.TargetAccuracy, p.TargetAccuracy)

	weighted := weightConvergence*convScore +
		weightCalibration*calibScore +
		weightSensitivity*sensScore +
		weightProficiency*profScore
	return round(weighted*100, 2)
}

// targetScore maps |actual-target| onto [0,1] linearly, where a full
// normalizer of distance scores zero.
func targetScore(actual, target, normalizer float64) float64 {
	if normalizer == 0 {
		normalizer = 1
	}
	return math.Max(0, 1-math.Abs(actual-target)/normalizer)
}

func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
