package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// Fallback quiz content. The first option is always the correct one.
var fallbackQuizOptions = []string{
	"Add API key",
	"Check .env file",
	"Enable Gemini API",
	"Contact administrator",
}

// MaxFallbackQuestions caps placeholder quiz length.
const MaxFallbackQuestions = 3

type quizElementJSON struct {
	QuestionID    json.RawMessage `json:"question_id"`
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer string          `json:"correct_answer"`
	Topic         any             `json:"topic"`
}

// Quiz normalizes raw model output into at most n quiz questions. When
// fewer than half of n (rounded up) elements are valid, or the text is
// not a JSON array, it returns min(n, 3) placeholder questions instead.
func Quiz(raw string, n int, topic string) Result[[]learning.QuizQuestion] {
	if n < 0 {
		n = 0
	}

	elems, err := parseArray(ExtractJSON(raw))
	if err != nil {
		return Degraded(FallbackQuiz(n, topic), ReasonUnparseable)
	}

	valid := make([]learning.QuizQuestion, 0, len(elems))
	for _, e := range elems {
		if q, ok := quizQuestion(e, topic); ok {
			valid = append(valid, q)
		}
	}

	if len(valid) < Threshold(n) {
		return Degraded(FallbackQuiz(n, topic), ReasonTooFewValid)
	}
	if len(valid) > n {
		valid = valid[:n]
	}
	return Ok(valid)
}

// quizQuestion validates one element. Elements whose correct answer is not
// byte-equal to one of the options are rejected, never repaired.
func quizQuestion(raw json.RawMessage, topic string) (learning.QuizQuestion, bool) {
	if quizElement.Validate(raw) != nil {
		return learning.QuizQuestion{}, false
	}

	var e quizElementJSON
	if err := json.Unmarshal(raw, &e); err != nil {
		return learning.QuizQuestion{}, false
	}
	if !learning.HasOption(e.Options, e.CorrectAnswer) {
		return learning.QuizQuestion{}, false
	}

	t, _ := e.Topic.(string)
	if t == "" {
		t = topic
	}

	return learning.QuizQuestion{
		QuestionID:    idString(e.QuestionID),
		Question:      e.Question,
		Options:       e.Options,
		CorrectAnswer: e.CorrectAnswer,
		Topic:         t,
	}, true
}

// FallbackQuiz returns min(n, 3) placeholder questions telling the user the
// generative service is unavailable.
func FallbackQuiz(n int, topic string) []learning.QuizQuestion {
	if n > MaxFallbackQuestions {
		n = MaxFallbackQuestions
	}
	if n < 0 {
		n = 0
	}

	out := make([]learning.QuizQuestion, n)
	for i := range out {
		opts := make([]string, len(fallbackQuizOptions))
		copy(opts, fallbackQuizOptions)
		out[i] = learning.QuizQuestion{
			QuestionID:    fmt.Sprintf("fallback_%d", i+1),
			Question:      fmt.Sprintf("⚠️ AI service unavailable (%s). Please configure GEMINI_API_KEY.", topic),
			Options:       opts,
			CorrectAnswer: opts[0],
			Topic:         topic,
			IsFallback:    true,
		}
	}
	return out
}
