// Package report renders a benchmark trace and its computed metrics into a
// markdown document. Every number shown comes straight from the metrics,
// coverage, and score packages; this package only formats.
package report

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/JulietaG13/tp-agente/internal/coverage"
	"github.com/JulietaG13/tp-agente/internal/metrics"
	"github.com/JulietaG13/tp-agente/internal/persona"
	"github.com/JulietaG13/tp-agente/internal/score"
	"github.com/JulietaG13/tp-agente/internal/topics"
	"github.com/JulietaG13/tp-agente/internal/trace"
)

// Input carries everything a report displays.
type Input struct {
	Trace    *trace.Trace
	Profile  persona.Profile
	Metrics  metrics.Report
	Coverage coverage.Report
	Final    float64
	Catalog  *topics.Catalog
}

// Build computes metrics, coverage, and the final score for a trace and
// bundles them for rendering. This is the one place those engines are
// wired together, so regenerated reports match the original run exactly.
func Build(tr *trace.Trace, catalog *topics.Catalog) (Input, error) {
	profile, err := tr.Persona()
	if err != nil {
		return Input{}, err
	}
	m := metrics.Compute(tr.Results, profile)
	cov := coverage.Compute(tr.Results, catalog.Size())
	final := score.Final(score.Inputs{
		EffectiveCoverage:     cov.EffectiveCoverage,
		RemediationEfficiency: cov.RemediationEfficiency,
		WeightedProficiency:   m.WeightedProficiency,
		ErrorSensitivity:      m.ErrorSensitivity,
	})
	return Input{
		Trace:    tr,
		Profile:  profile,
		Metrics:  m,
		Coverage: cov,
		Final:    final,
		Catalog:  catalog,
	}, nil
}

// Generate renders the full markdown report. A zero-turn trace produces a
// structurally valid, degenerate document.
func Generate(in Input) string {
	sections := []string{
		header(in),
		summary(in.Trace.Results),
		finalScore(in),
		fidelitySection(in),
		coverageMatrix(in.Coverage.Statuses, in.Catalog),
		adaptivityTable(in.Trace.Results),
		detailedLog(in.Trace.Results, in.Catalog),
	}
	return strings.Join(sections, "\n")
}

// Save writes the rendered report to path.
func Save(in Input, path string) error {
	if err := os.WriteFile(path, []byte(Generate(in)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func header(in Input) string {
	date := in.Trace.Metadata.Timestamp
	if date == "" {
		date = time.Now().Format(time.RFC3339)
	}
	return fmt.Sprintf(
		"# Benchmark Report: %s\n\n**Date**: %s\n**Total Turns**: %d\n",
		in.Profile.Kind, date, len(in.Trace.Results))
}

func summary(results []trace.TurnRecord) string {
	if len(results) == 0 {
		return "## Summary\nNo data available.\n"
	}
	var correct int
	var diffSum float64
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
		diffSum += float64(r.DifficultyScore)
	}
	n := float64(len(results))
	return fmt.Sprintf(
		"## Summary\n- **Accuracy**: %.2f%%\n- **Average Difficulty**: %.2f\n",
		float64(correct)/n*100, diffSum/n)
}

func finalScore(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Final Benchmark Score: %.2f%%\n\n", in.Final)
	fmt.Fprintf(&b, "**Interpretation**: %s\n\n", score.Interpret(in.Final))
	b.WriteString("### Objective Components\n\n")
	fmt.Fprintf(&b, "#### Syllabus Exposure\n**Value**: %.2f%%\n**Interpretation**: %s\n\n",
		in.Coverage.SyllabusExposure*100, interpretExposure(in.Coverage.SyllabusExposure))
	fmt.Fprintf(&b, "#### Effective Coverage\n**Value**: %.2f%%\n**Interpretation**: %s\n\n",
		in.Coverage.EffectiveCoverage*100, interpretExposure(in.Coverage.EffectiveCoverage))
	fmt.Fprintf(&b, "#### Remediation Efficiency\n**Value**: %.2f%%\n**Interpretation**: %s\n",
		in.Coverage.RemediationEfficiency*100, interpretRemediation(in.Coverage.RemediationEfficiency))
	return b.String()
}

func fidelitySection(in Input) string {
	m := in.Metrics
	var b strings.Builder

	b.WriteString("## Performance Metrics\n\n")
	fmt.Fprintf(&b, "### Adaptive Fidelity Score (AFS): %.2f%%\n", m.FidelityScore)
	fmt.Fprintf(&b, "**Overall Grade**: %s\n\n---\n\n", interpretAFS(m.FidelityScore))
	b.WriteString("### Component Metrics:\n\n")
	fmt.Fprintf(&b, "#### 1. EMA Convergence Error (Lock-In Quality)\n**Value**: %.3f\n**Target Level**: %.1f\n**Interpretation**: %s\n\n",
		m.EMAConvergenceError, in.Profile.TrueLevel, interpretEMAError(m.EMAConvergenceError))
	fmt.Fprintf(&b, "#### 2. Error Sensitivity Ratio (Safety Net)\n**Value**: %.2f\n**Interpretation**: %s\n\n",
		m.ErrorSensitivity, interpretSensitivity(m.ErrorSensitivity))
	fmt.Fprintf(&b, "#### 3. Calibration Offset (Challenge Level)\n**Value**: %+.2f\n**Interpretation**: %s\n\n",
		m.CalibrationOffset, interpretOffset(m.CalibrationOffset))
	fmt.Fprintf(&b, "#### 4. Difficulty-Weighted Proficiency (True Score)\n**Value**: %.2f%%\n**Interpretation**: %s\n",
		m.WeightedProficiency*100, interpretProficiency(m.WeightedProficiency))
	return b.String()
}

func coverageMatrix(statuses map[int]coverage.Status, catalog *topics.Catalog) string {
	byStatus := map[coverage.Status][]int{}
	for id := 0; id < catalog.Size(); id++ {
		st := statuses[id]
		byStatus[st] = append(byStatus[st], id)
	}

	var b strings.Builder
	b.WriteString("## Topic Coverage Matrix\n\n### Summary\n")
	total := catalog.Size()
	for _, st := range []coverage.Status{coverage.StatusMastered, coverage.StatusRecovered, coverage.StatusFailed, coverage.StatusMissed} {
		n := len(byStatus[st])
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		fmt.Fprintf(&b, "- **%s**: %d topics (%.1f%%)\n", capitalize(string(st)), n, pct)
	}

	titles := map[coverage.Status]string{
		coverage.StatusMastered:  "Mastered (First Try)",
		coverage.StatusRecovered: "Recovered (Improved After Failure)",
		coverage.StatusFailed:    "Failed (Never Answered Correctly)",
		coverage.StatusMissed:    "Missed (System Never Asked)",
	}
	for _, st := range []coverage.Status{coverage.StatusMastered, coverage.StatusRecovered, coverage.StatusFailed, coverage.StatusMissed} {
		ids := byStatus[st]
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", titles[st])
		for _, id := range ids {
			fmt.Fprintf(&b, "- `[%d]` %s\n", id, catalog.Name(id))
		}
	}
	return b.String()
}

func adaptivityTable(results []trace.TurnRecord) string {
	var b strings.Builder
	b.WriteString("## Adaptivity Analysis\n| Turn | Difficulty (1-5) | Result | Correct Answer |\n|---|---|---|---|\n")
	for _, r := range results {
		status := "Correct"
		if !r.IsCorrect {
			status = "Incorrect"
		}
		fmt.Fprintf(&b, "| %d | %d | %s | %s |\n", r.TurnIndex, r.DifficultyScore, status, r.CorrectAnswer)
	}
	return b.String()
}

func detailedLog(results []trace.TurnRecord, catalog *topics.Catalog) string {
	var b strings.Builder
	b.WriteString("## Detailed Question Log\n")
	for _, r := range results {
		verdict := "correct"
		if !r.IsCorrect {
			verdict = "incorrect"
		}
		fmt.Fprintf(&b, "\n### Turn %d (%s)\n\n**Question**: %s\n\n", r.TurnIndex, verdict, r.Question)
		for i, opt := range r.Options {
			fmt.Fprintf(&b, "- %c) %s\n", 'A'+i, opt)
		}
		fmt.Fprintf(&b, "\n**Student answered**: %s\n**Correct answer**: %s\n**Difficulty**: %d\n",
			r.StudentAnswer, r.CorrectAnswer, r.DifficultyScore)
		if len(r.SubtopicIDs) > 0 {
			names := make([]string, 0, len(r.SubtopicIDs))
			for _, id := range r.SubtopicIDs {
				names = append(names, fmt.Sprintf("[%d] %s", id, catalog.Name(id)))
			}
			fmt.Fprintf(&b, "**Subtopics**: %s\n", strings.Join(names, ", "))
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func interpretAFS(afs float64) string {
	switch {
	case afs >= 85:
		return "Excellent - The system mirrors the persona faithfully"
	case afs >= 70:
		return "Good - Minor deviations from the persona's expected behavior"
	case afs >= 55:
		return "Fair - Noticeable drift from the persona's expected behavior"
	default:
		return "Poor - The system failed to adapt to this persona"
	}
}

func interpretEMAError(err float64) string {
	switch {
	case err < 0.2:
		return "Perfect - System locked in and maintained user's level"
	case err < 0.5:
		return "Good - System converged close to target"
	case err < 1.0:
		return "Fair - System somewhat off-target"
	default:
		return "Poor - System failed to converge or ended far from target"
	}
}

func interpretSensitivity(s float64) string {
	switch {
	case s >= 0.8:
		return "Highly responsive - Difficulty drops almost every time the student errs"
	case s > 0.3:
		return "Balanced - Some errors trigger easier questions"
	default:
		return "Forgiving - Isolated slips rarely lower the difficulty"
	}
}

func interpretOffset(offset float64) string {
	switch {
	case math.Abs(offset) < 0.3:
		return "Well-calibrated - Challenge level matches ability"
	case offset < 0:
		return fmt.Sprintf("Under-challenging by %.2f - Questions too easy", math.Abs(offset))
	default:
		return fmt.Sprintf("Over-challenging by %.2f - Questions too hard", offset)
	}
}

func interpretProficiency(p float64) string {
	switch {
	case p >= 0.85:
		return "High mastery - Possibly under-challenged"
	case p >= 0.6:
		return "Productive struggle - Challenge near the edge of ability"
	case p >= 0.4:
		return "Strained - Questions often above ability"
	default:
		return "Overwhelmed - Questions far above ability"
	}
}

func interpretExposure(exposure float64) string {
	switch {
	case exposure >= 0.80:
		return "Comprehensive - System explored most of the curriculum"
	case exposure >= 0.60:
		return "Broad - System explored a solid share of the curriculum"
	case exposure >= 0.40:
		return "Partial - Notable curriculum areas untouched"
	default:
		return "Poor - System failed to explore most topics"
	}
}

func interpretRemediation(r float64) string {
	switch {
	case r >= 0.7:
		return "Strong - Failed topics are usually revisited and recovered"
	case r >= 0.3:
		return "Moderate - Some failed topics are recovered"
	default:
		return "Weak - Failed topics are rarely revisited successfully"
	}
}
