// Package trace defines the persisted benchmark trace: one TurnRecord per
// completed turn plus the run metadata needed to recompute every metric
// later. The JSON format round-trips losslessly so reports can be
// regenerated from a saved trace without re-running the benchmark.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/JulietaG13/tp-agente/internal/persona"
)

// TurnRecord captures everything the metrics and coverage engines need
// about one completed turn. Append-only; TurnIndex is 1-based.
type TurnRecord struct {
	TurnIndex       int      `json:"turn"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	DifficultyScore int      `json:"difficulty_score"`
	SubtopicIDs     []int    `json:"subtopics"` // at most two entries, most relevant first
	IsCorrect       bool     `json:"is_correct"`
	StudentAnswer   string   `json:"student_answer"`
	CorrectAnswer   string   `json:"correct_answer"`
}

// Metadata identifies a run.
type Metadata struct {
	PersonaType string `json:"persona_type"`
	Turns       int    `json:"turns"`
	Timestamp   string `json:"timestamp"`
}

// PersonaConfig is the numeric persona profile, persisted so a trace is
// self-describing even if persona definitions change later.
type PersonaConfig struct {
	TrueLevel         float64 `json:"true_level"`
	TargetSensitivity float64 `json:"target_sensitivity"`
	TargetAccuracy    float64 `json:"target_accuracy"`
}

// Trace is the full persisted benchmark result.
type Trace struct {
	Metadata      Metadata      `json:"metadata"`
	PersonaConfig PersonaConfig `json:"persona_config"`
	Results       []TurnRecord  `json:"results"`
}

// New builds a Trace for a finished (possibly partial) run.
func New(p persona.Profile, requestedTurns int, results []TurnRecord) *Trace {
	return &Trace{
		Metadata: Metadata{
			PersonaType: string(p.Kind),
			Turns:       requestedTurns,
			Timestamp:   time.Now().Format(time.RFC3339),
		},
		PersonaConfig: PersonaConfig{
			TrueLevel:         p.TrueLevel,
			TargetSensitivity: p.TargetSensitivity,
			TargetAccuracy:    p.TargetAccuracy,
		},
		Results: results,
	}
}

// Persona reconstructs the persona profile from the trace metadata.
func (t *Trace) Persona() (persona.Profile, error) {
	return persona.FromName(t.Metadata.PersonaType)
}

// Save writes the trace as pretty-printed JSON.
func (t *Trace) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

// Load reads a trace saved by Save.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return &t, nil
}
