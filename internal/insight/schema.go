package insight

import "github.com/abhisek/persona/internal/llm"

// InsightSchema is the JSON shape requested from the model.
var InsightSchema = &llm.Schema{
	Name:        "personality-insight",
	Description: "A short, friendly explanation of a learning-style quiz result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One sentence summary addressed to the learner",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Two or three sentences on how this learner tends to take in new material",
			},
			"tips": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Two to four concrete study tips",
			},
		},
		"required":             []any{"headline", "description", "tips"},
		"additionalProperties": false,
	},
}
