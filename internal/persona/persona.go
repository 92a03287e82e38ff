package persona

import "fmt"

// Kind enumerates the simulated learner personas. This is a closed set:
// every persona is fully described by its numeric targets plus a prompt
// variant, so there is no behavior to dispatch on.
type Kind string

const (
	Expert  Kind = "expert"
	Novice  Kind = "novice"
	Learner Kind = "learner"
)

// Profile defines a simulated learner: the ability level the adaptive
// system should converge to, and the behavioral targets used when grading
// how well it adapted. Immutable for the duration of a benchmark run.
type Profile struct {
	Kind Kind

	// TrueLevel is the expected difficulty level for this persona (1.0-5.0).
	// Metrics use it as the convergence target θ.
	TrueLevel float64

	// TargetSensitivity is the ideal error-sensitivity ratio (0.0-1.0):
	// how often difficulty should drop right after a miss.
	TargetSensitivity float64

	// TargetAccuracy is the expected overall accuracy (0.0-1.0).
	TargetAccuracy float64
}

var profiles = map[Kind]Profile{
	Expert:  {Kind: Expert, TrueLevel: 5.0, TargetSensitivity: 0.3, TargetAccuracy: 0.75},
	Novice:  {Kind: Novice, TrueLevel: 1.5, TargetSensitivity: 0.8, TargetAccuracy: 0.65},
	Learner: {Kind: Learner, TrueLevel: 3.0, TargetSensitivity: 0.6, TargetAccuracy: 0.70},
}

// FromName resolves a persona by its CLI name ("expert", "novice", "learner").
func FromName(name string) (Profile, error) {
	if p, ok := profiles[Kind(name)]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("unknown persona %q (want expert, novice, or learner)", name)
}

// All returns the known persona names, for CLI help text.
func All() []string {
	return []string{string(Expert), string(Novice), string(Learner)}
}

const promptPreamble = `You are a simulated student taking a multiple choice test.
Your goal is to answer the question based strictly on your persona.
Return ONLY the letter of the option you choose (A, B, C, or D).

`

// SystemPrompt returns the system prompt for the student-response port.
// The learner persona phases from novice-like to expert-like behavior as
// turnCount grows; the other personas are constant.
func (p Profile) SystemPrompt(turnCount int) string {
	switch p.Kind {
	case Expert:
		return promptPreamble + "Persona: EXPERT. You are highly knowledgeable in the subject. You rarely make mistakes (95% accuracy). You are confident and critical of ambiguous questions."
	case Novice:
		return promptPreamble + "Persona: NOVICE. You have little knowledge of the subject. You often guess randomly or fall for distractors. You are easily confused."
	case Learner:
		base := promptPreamble + "Persona: LEARNER. You start with low knowledge but learn from feedback (simulated improvement)."
		switch {
		case turnCount <= 5:
			return base + "\nCURRENT STATE: You are at the beginning of your learning journey. Behave like a Novice."
		case turnCount <= 10:
			return base + "\nCURRENT STATE: You are starting to understand the concepts. You get some right, some wrong."
		default:
			return base + "\nCURRENT STATE: You have studied hard. Behave like an Expert."
		}
	}
	return promptPreamble
}
