package lessons

import "github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"

// Topic identifies what to explain and for whom.
type Topic struct {
	Topic string
	Level learning.Level
	Goal  string
}

// WrongAnswer is a missed quiz question to explain.
type WrongAnswer struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	Topic         string
	Level         learning.Level
}

// WrongAnswerFor builds a WrongAnswer from a quiz question and the answer
// the learner gave.
func WrongAnswerFor(q learning.QuizQuestion, answer string, level learning.Level) WrongAnswer {
	return WrongAnswer{
		Question:      q.Question,
		UserAnswer:    answer,
		CorrectAnswer: q.CorrectAnswer,
		Topic:         q.Topic,
		Level:         level,
	}
}
