package normalize

import "github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"

// Element schemas check the shape of one generated question before the
// option and answer rules run.
var (
	quizElement = &llm.Schema{
		Name: "quiz-question",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"question_id", "question", "options", "correct_answer"},
			"properties": map[string]any{
				"question_id":    map[string]any{"type": []any{"string", "integer"}},
				"question":       map[string]any{"type": "string"},
				"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"correct_answer": map[string]any{"type": "string"},
			},
		},
	}

	assessmentElement = &llm.Schema{
		Name: "assessment-question",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"id", "question", "options", "correct"},
			"properties": map[string]any{
				"id":       map[string]any{"type": []any{"string", "integer"}},
				"question": map[string]any{"type": "string"},
				"options":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"correct":  map[string]any{"type": "string"},
			},
		},
	}
)
