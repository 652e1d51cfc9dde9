package quizgen

import "github.com/devika/tutora/internal/llm"

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A set of multiple choice quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions, in presentation order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 answer options",
						},
						"correct_answer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Index of the correct option (0-3)",
						},
					},
					"required":             []any{"question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
