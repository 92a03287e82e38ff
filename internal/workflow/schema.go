package workflow

import "github.com/JulietaG13/tp-agente/internal/llm"

// DraftSchema defines the JSON schema for question authoring responses.
var DraftSchema = &llm.Schema{
	Name:        "question-draft",
	Description: "A single multiple choice question with exactly four options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the student, in plain text",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 answer options. Distractors should be plausible, not random.",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Zero-based index of the correct option",
			},
		},
		"required":             []any{"question", "options", "correct_index"},
		"additionalProperties": false,
	},
}

// ReviewSchema defines the JSON schema for difficulty review verdicts.
var ReviewSchema = &llm.Schema{
	Name:        "difficulty-review",
	Description: "Verdict on whether a drafted question fits the student's current level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"approved": map[string]any{
				"type":        "boolean",
				"description": "True if the question's difficulty suits the student right now",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "If rejected, concrete guidance for the author (easier, harder, different angle). Empty when approved.",
			},
		},
		"required":             []any{"approved", "feedback"},
		"additionalProperties": false,
	},
}
