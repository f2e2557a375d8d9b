// Package progress evaluates study days and summarizes performance history.
package progress

import (
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/quiz"
)

// DefaultDifficulty is the perceived difficulty assumed when none is given.
const DefaultDifficulty = 3

// Performance levels.
const (
	Excellent        = "excellent"
	Good             = "good"
	Average          = "average"
	NeedsImprovement = "needs_improvement"
)

// DayReport is what the learner reports at the end of a study day.
type DayReport struct {
	Day            int  `json:"day" yaml:"day"`
	CompletedTasks int  `json:"completed_tasks" yaml:"completed_tasks"`
	QuizScore      *int `json:"quiz_score,omitempty" yaml:"quiz_score,omitempty"`
	// Difficulty is the perceived difficulty from 1 to 5. Zero means unset.
	Difficulty int `json:"perceived_difficulty,omitempty" yaml:"perceived_difficulty,omitempty"`
}

func (r DayReport) difficulty() int {
	if r.Difficulty == 0 {
		return DefaultDifficulty
	}
	return r.Difficulty
}

// Evaluation is the scored outcome of a day.
type Evaluation struct {
	Day          int            `json:"day"`
	DailyScore   int            `json:"daily_score"`
	Level        string         `json:"performance_level"`
	Suggestions  []string       `json:"suggestions"`
	QuizAnalysis *quiz.Analysis `json:"quiz_analysis,omitempty"`
	Report       DayReport      `json:"raw"`
}

// Record converts an evaluation to a memory bank performance record.
func (e Evaluation) Record() learning.PerformanceRecord {
	return learning.PerformanceRecord{
		Day:            e.Report.Day,
		CompletedTasks: e.Report.CompletedTasks,
		QuizScore:      e.Report.QuizScore,
		Difficulty:     e.Report.difficulty(),
		Score:          float64(e.DailyScore),
		Level:          e.Level,
	}
}

// Evaluate scores a day: ten points per completed task, plus a tenth of the
// quiz score, minus five points per difficulty step above 3 (or plus five per
// step below). The difficulty adjustment applies only with a quiz score, and
// such scores never go below zero.
func Evaluate(r DayReport) Evaluation {
	diff := r.difficulty()
	score := r.CompletedTasks * 10
	if r.QuizScore != nil {
		score += *r.QuizScore / 10
		score = max(0, score-(diff-3)*5)
	}

	return Evaluation{
		Day:         r.Day,
		DailyScore:  score,
		Level:       performanceLevel(score, r.QuizScore),
		Suggestions: suggestions(r.CompletedTasks, r.QuizScore, diff),
		Report:      r,
	}
}

// EvaluateWithQuiz evaluates the day and appends the analysis of the day's
// quiz answers and its suggestions.
func EvaluateWithQuiz(r DayReport, answers quiz.Answers, questions []learning.QuizQuestion) Evaluation {
	a := quiz.Analyze(answers, questions)
	e := Evaluate(r)
	e.QuizAnalysis = &a
	e.Suggestions = append(e.Suggestions, quiz.Suggestions(a)...)
	return e
}

func performanceLevel(score int, quizScore *int) string {
	switch {
	case score >= 40 && (quizScore == nil || *quizScore >= 80):
		return Excellent
	case score >= 30 && (quizScore == nil || *quizScore >= 60):
		return Good
	case score >= 20:
		return Average
	default:
		return NeedsImprovement
	}
}

func suggestions(completed int, quizScore *int, diff int) []string {
	out := []string{}
	switch {
	case completed < 2:
		out = append(out, "📋 Try to complete more tasks.")
	case completed >= 3:
		out = append(out, "✅ You're doing great at completing tasks!")
	}

	if quizScore != nil {
		switch {
		case *quizScore < 50:
			out = append(out, "📚 Review the topics again.")
		case *quizScore < 70:
			out = append(out, "📖 Good progress, a little more practice will help.")
		default:
			out = append(out, "🌟 Your quiz performance is excellent!")
		}
	}

	switch {
	case diff >= 4:
		out = append(out, "💡 This feels hard. Consider starting with simpler topics.")
	case diff <= 2:
		out = append(out, "🚀 Move on to more advanced topics when you're ready.")
	}
	return out
}
