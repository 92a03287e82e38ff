// Package score combines coverage and adaptivity signals into the single
// 0-100 benchmark score and its interpretation band.
package score

import "math"

// Component weights. Coverage dominates: a system that adapts beautifully
// over a sliver of the syllabus still fails the curriculum.
const (
	weightCoverage    = 0.35
	weightRemediation = 0.30
	weightProficiency = 0.20
	weightSensitivity = 0.15
)

// Gaussian reshape parameters for proficiency. The sweet spot is 0.75:
// perfect accuracy means the system under-challenged, so it scores below a
// run that kept the student at the edge of their ability.
const (
	proficiencyTarget = 0.75
	proficiencySigma  = 0.2
)

// Inputs are the signals the final score is built from, each in [0,1].
type Inputs struct {
	EffectiveCoverage     float64
	RemediationEfficiency float64
	WeightedProficiency   float64
	ErrorSensitivity      float64
}

// ProficiencyScore reshapes raw proficiency through a Gaussian centered on
// the sweet spot. Exactly 0.75 scores 1.0; roughly 0.5 at 0.25 deviation.
func ProficiencyScore(proficiency float64) float64 {
	d := proficiency - proficiencyTarget
	return math.Exp(-(d * d) / (2 * proficiencySigma * proficiencySigma))
}

// Final returns the weighted 0-100 benchmark score, rounded to 2 decimals.
func Final(in Inputs) float64 {
	weighted := weightCoverage*in.EffectiveCoverage +
		weightRemediation*in.RemediationEfficiency +
		weightProficiency*ProficiencyScore(in.WeightedProficiency) +
		weightSensitivity*in.ErrorSensitivity
	return math.Round(weighted*100*100) / 100
}

// Interpret returns the human-readable band for a final score.
func Interpret(final float64) string {
	switch {
	case final >= 85:
		return "Excellent (85-100%) - Outstanding curriculum coverage and adaptation"
	case final >= 70:
		return "Good (70-84%) - Strong coverage with effective adaptation"
	case final >= 55:
		return "Fair (55-69%) - Acceptable but significant gaps remain"
	default:
		return "Poor (<55%) - Major curriculum gaps or adaptation failures"
	}
}
