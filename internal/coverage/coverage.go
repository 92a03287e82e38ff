// Package coverage computes curriculum-coverage metrics over a benchmark
// trace: how much of the subtopic catalog the run touched, how much the
// student actually passed, and whether initially failed topics were
// revisited and recovered. Pure functions of the turn sequence plus the
// catalog size; all formulas have explicit zero values for empty traces.
package coverage

import (
	"math"

	"github.com/JulietaG13/tp-agente/internal/trace"
)

// Status classifies one subtopic's outcome over a run. Exhaustive and
// mutually exclusive: every catalog id maps to exactly one status.
type Status string

const (
	// StatusMissed means the topic never appeared in any question.
	StatusMissed Status = "missed"
	// StatusMastered means the first attempt was correct.
	StatusMastered Status = "mastered"
	// StatusRecovered means the first attempt failed but a later one passed.
	StatusRecovered Status = "recovered"
	// StatusFailed means the topic was attempted but never passed.
	StatusFailed Status = "failed"
)

// TopicHistory maps each attempted subtopic id to its correctness sequence
// in turn order. Rebuilt fresh from the trace on every computation.
type TopicHistory map[int][]bool

// BuildTopicHistory derives per-topic correctness sequences from the trace.
func BuildTopicHistory(results []trace.TurnRecord) TopicHistory {
	h := make(TopicHistory)
	for _, r := range results {
		for _, id := range r.SubtopicIDs {
			h[id] = append(h[id], r.IsCorrect)
		}
	}
	return h
}

// Report bundles every coverage metric for one trace.
type Report struct {
	Capacity              int
	SyllabusExposure      float64
	EffectiveCoverage     float64
	RemediationEfficiency float64
	Statuses              map[int]Status
}

// Compute evaluates all coverage metrics. totalTopics is the catalog size;
// turnCount is the number of completed turns.
func Compute(results []trace.TurnRecord, totalTopics int) Report {
	h := BuildTopicHistory(results)
	return Report{
		Capacity:              Capacity(totalTopics, len(results)),
		SyllabusExposure:      SyllabusExposure(h, totalTopics, len(results)),
		EffectiveCoverage:     EffectiveCoverage(h, totalTopics, len(results)),
		RemediationEfficiency: RemediationEfficiency(h),
		Statuses:              Statuses(h, totalTopics),
	}
}

// Capacity is how many topics a run of this length could meaningfully
// cover, assuming at most two topics per question, capped at the catalog
// size.
func Capacity(totalTopics, turnCount int) int {
	expected := int(math.Ceil(float64(turnCount) * 2))
	if totalTopics < expected {
		return totalTopics
	}
	return expected
}

// SyllabusExposure is the share of the coverage capacity that appeared in
// at least one question, capped at 1. Rounded to 4 decimals.
func SyllabusExposure(h TopicHistory, totalTopics, turnCount int) float64 {
	capacity := Capacity(totalTopics, turnCount)
	if capacity == 0 {
		return 0
	}
	return round4(math.Min(1, float64(len(h))/float64(capacity)))
}

// EffectiveCoverage is the share of the coverage capacity answered
// correctly at least once, capped at 1. Rounded to 4 decimals.
func EffectiveCoverage(h TopicHistory, totalTopics, turnCount int) float64 {
	capacity := Capacity(totalTopics, turnCount)
	if capacity == 0 {
		return 0
	}
	var passed int
	for _, history := range h {
		if anyCorrect(history) {
			passed++
		}
	}
	return round4(math.Min(1, float64(passed)/float64(capacity)))
}

// RemediationEfficiency is the share of initially-failed topics that later
// passed. With no initial failures there is nothing to remediate, so the
// metric is 1.0. Rounded to 4 decimals.
func RemediationEfficiency(h TopicHistory) float64 {
	var failedFirst, recovered int
	for _, history := range h {
		if len(history) == 0 || history[0] {
			continue
		}
		failedFirst++
		if anyCorrect(history) {
			recovered++
		}
	}
	if failedFirst == 0 {
		return 1.0
	}
	return round4(float64(recovered) / float64(failedFirst))
}

// Statuses classifies every catalog id in [0, totalTopics).
func Statuses(h TopicHistory, totalTopics int) map[int]Status {
	statuses := make(map[int]Status, totalTopics)
	for id := 0; id < totalTopics; id++ {
		history, ok := h[id]
		switch {
		case !ok || len(history) == 0:
			statuses[id] = StatusMissed
		case history[0]:
			statuses[id] = StatusMastered
		case anyCorrect(history):
			statuses[id] = StatusRecovered
		default:
			statuses[id] = StatusFailed
		}
	}
	return statuses
}

func anyCorrect(history []bool) bool {
	for _, c := range history {
		if c {
			return true
		}
	}
	return false
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
