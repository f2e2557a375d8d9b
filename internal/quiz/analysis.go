// Package quiz generates daily quizzes and scores submitted answers.
package quiz

import (
	"fmt"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// Topic thresholds and the pass mark, in percent.
const (
	WeakBelow   = 60
	StrongFrom  = 80
	PassingMark = 70
)

// Answers maps question id to the chosen option text.
type Answers map[string]string

// TopicScore is the percentage for one quiz topic.
type TopicScore struct {
	Topic string `json:"topic"`
	Score int    `json:"score"`
}

// Analysis is the detailed result of one quiz submission.
type Analysis struct {
	Total        int          `json:"total_questions"`
	Correct      int          `json:"correct_count"`
	Wrong        int          `json:"wrong_count"`
	Percentage   int          `json:"score_percentage"`
	TopicScores  []TopicScore `json:"topic_scores"`
	WeakTopics   []string     `json:"weak_topics"`
	StrongTopics []string     `json:"strong_topics"`
	Passed       bool         `json:"passed"`
}

// Analyze scores answers against questions. Percentages truncate toward
// zero. Topics keep first-appearance order; an empty topic is "general".
func Analyze(answers Answers, questions []learning.QuizQuestion) Analysis {
	a := Analysis{
		Total:        len(questions),
		TopicScores:  []TopicScore{},
		WeakTopics:   []string{},
		StrongTopics: []string{},
	}

	type tally struct{ correct, total int }
	var order []string
	topics := map[string]*tally{}

	for _, q := range questions {
		topic := q.Topic
		if topic == "" {
			topic = "general"
		}
		t, ok := topics[topic]
		if !ok {
			t = &tally{}
			topics[topic] = t
			order = append(order, topic)
		}
		t.total++
		if ans, ok := answers[q.QuestionID]; ok && ans == q.CorrectAnswer {
			a.Correct++
			t.correct++
		}
	}

	for _, topic := range order {
		t := topics[topic]
		score := 100 * t.correct / t.total
		a.TopicScores = append(a.TopicScores, TopicScore{Topic: topic, Score: score})
		switch {
		case score < WeakBelow:
			a.WeakTopics = append(a.WeakTopics, topic)
		case score >= StrongFrom:
			a.StrongTopics = append(a.StrongTopics, topic)
		}
	}

	a.Wrong = a.Total - a.Correct
	if a.Total > 0 {
		a.Percentage = 100 * a.Correct / a.Total
	}
	a.Passed = a.Percentage >= PassingMark
	return a
}

// Score returns the percentage of key entries matched by answers.
func Score(answers, key Answers) int {
	if len(key) == 0 {
		return 0
	}
	correct := 0
	for id, want := range key {
		if got, ok := answers[id]; ok && got == want {
			correct++
		}
	}
	return 100 * correct / len(key)
}

// Key builds an answer key from questions.
func Key(questions []learning.QuizQuestion) Answers {
	key := make(Answers, len(questions))
	for _, q := range questions {
		key[q.QuestionID] = q.CorrectAnswer
	}
	return key
}

// Suggestions turns an analysis into study advice: one overall line, then
// one line per weak topic and per strong topic.
func Suggestions(a Analysis) []string {
	var out []string
	switch {
	case a.Percentage < 50:
		out = append(out, "📚 Review the basic concepts again before moving on.")
	case a.Percentage < PassingMark:
		out = append(out, "📖 Good progress! A bit more practice will make it stick.")
	default:
		out = append(out, "🌟 Great! You have a solid grasp of this material.")
	}
	for _, t := range a.WeakTopics {
		out = append(out, fmt.Sprintf("⚠️ Spend more time on '%s'.", t))
	}
	for _, t := range a.StrongTopics {
		out = append(out, fmt.Sprintf("✅ You're doing well at '%s'!", t))
	}
	return out
}
