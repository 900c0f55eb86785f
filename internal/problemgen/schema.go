package problemgen

import "github.com/abhisek/assessgen/internal/llm"

// ProblemSchema defines the JSON schema for authored catalog problems.
var ProblemSchema = &llm.Schema{
	Name:        "catalog-problem",
	Description: "A single math problem for the assessment catalog, with its answer for checking",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The problem statement shown to the student, in plain ASCII text",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The topic exactly as requested",
			},
			"difficulty": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "Difficulty from 1 (easy) to 5 (hard), equal to the requested level",
			},
			"estimated_time_to_solve_minutes": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     MaxEstimatedMinutes,
				"description": "Whole minutes a typical student needs to solve it",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer in simplest form",
			},
			"answer_type": map[string]any{
				"type":        "string",
				"enum":        []any{"integer", "decimal", "fraction", "text"},
				"description": "How the answer is written",
			},
		},
		"required":             []any{"text", "topic", "difficulty", "estimated_time_to_solve_minutes", "answer", "answer_type"},
		"additionalProperties": false,
	},
}
