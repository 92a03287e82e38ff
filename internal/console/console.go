// Package console renders benchmark progress as role-tagged lanes on the
// terminal, so a run reads like a transcript of the agents talking.
package console

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
)

// Role colors, one accent per agent lane.
var (
	orchestratorColor = lipgloss.Color("#8B5CF6") // Purple
	authorColor       = lipgloss.Color("#14B8A6") // Teal
	reviewerColor     = lipgloss.Color("#F97316") // Orange
	feedbackColor     = lipgloss.Color("#94A3B8") // Slate
	studentColor      = lipgloss.Color("#22C55E") // Green
	resultGoodColor   = lipgloss.Color("#22C55E") // Green
	resultBadColor    = lipgloss.Color("#F43F5E") // Rose
)

var roleStyles = map[string]lipgloss.Style{
	"orchestrator": lipgloss.NewStyle().Bold(true).Foreground(orchestratorColor),
	"author":       lipgloss.NewStyle().Bold(true).Foreground(authorColor),
	"reviewer":     lipgloss.NewStyle().Bold(true).Foreground(reviewerColor),
	"feedback":     lipgloss.NewStyle().Bold(true).Foreground(feedbackColor),
	"student":      lipgloss.NewStyle().Bold(true).Foreground(studentColor),
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(orchestratorColor)
	dimStyle    = lipgloss.NewStyle().Foreground(feedbackColor)
	goodStyle   = lipgloss.NewStyle().Bold(true).Foreground(resultGoodColor)
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(resultBadColor)
)

// Console writes role-tagged progress lines. A nil *Console is valid and
// silent, so callers can thread it through unconditionally.
type Console struct {
	w io.Writer
}

// New creates a Console writing to w.
func New(w io.Writer) *Console {
	return &Console{w: w}
}

// Event writes one role-tagged line. Unknown roles render dim.
func (c *Console) Event(role, message string) {
	if c == nil {
		return
	}
	style, ok := roleStyles[role]
	if !ok {
		style = dimStyle
	}
	fmt.Fprintf(c.w, "%s %s\n", style.Render("["+role+"]"), message)
}

// TurnHeader announces a turn with a separator line.
func (c *Console) TurnHeader(turn, total int) {
	if c == nil {
		return
	}
	fmt.Fprintf(c.w, "\n%s\n%s\n",
		dimStyle.Render(strings.Repeat("-", 60)),
		headerStyle.Render(fmt.Sprintf("Turn %d/%d", turn, total)))
}

// Result writes the graded outcome of a turn.
func (c *Console) Result(correct bool, studentLetter, correctLetter string) {
	if c == nil {
		return
	}
	if correct {
		fmt.Fprintf(c.w, "%s answered %s\n", goodStyle.Render("correct:"), studentLetter)
		return
	}
	fmt.Fprintf(c.w, "%s answered %s, expected %s\n", badStyle.Render("incorrect:"), studentLetter, correctLetter)
}

// Summary writes the end-of-run line.
func (c *Console) Summary(completed, requested int, finalScore float64) {
	if c == nil {
		return
	}
	fmt.Fprintf(c.w, "\n%s %d/%d turns completed, final score %.2f\n",
		headerStyle.Render("Run finished:"), completed, requested, finalScore)
}
