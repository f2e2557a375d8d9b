package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/assessment"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/curriculum"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/events"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/lessons"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/progress"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/quiz"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

// explainWorkers bounds concurrent wrong-answer explanations.
const explainWorkers = 3

// AssessmentOutcome is the result of completing a placement assessment.
type AssessmentOutcome struct {
	Level        learning.LevelResult                  `json:"level"`
	CurriculumID string                                `json:"curriculum_id"`
	Curriculum   normalize.Result[learning.Curriculum] `json:"-"`
	StartDay     int                                   `json:"start_day"`
}

// DayView is one day of the active curriculum as shown to the learner.
type DayView struct {
	CurriculumID string               `json:"curriculum_id"`
	Goal         string               `json:"goal"`
	Level        learning.Level       `json:"level"`
	Day          int                  `json:"day"`
	TotalDays    int                  `json:"total_days"`
	Lesson       learning.DailyLesson `json:"lesson"`
	Progress     learning.Progress    `json:"progress"`
	Completed    bool                 `json:"completed"`
	Fallback     bool                 `json:"fallback"`
}

// Explanation explains one missed quiz question.
type Explanation struct {
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
	Correct    string `json:"correct_answer"`
	Text       string `json:"explanation"`
	Fallback   bool   `json:"fallback"`
}

// QuizOutcome is the graded day quiz.
type QuizOutcome struct {
	Day          int           `json:"day"`
	Analysis     quiz.Analysis `json:"analysis"`
	Suggestions  []string      `json:"suggestions"`
	Explanations []Explanation `json:"explanations"`
}

// DayOutcome is the result of finishing a day.
type DayOutcome struct {
	Evaluation progress.Evaluation `json:"evaluation"`
	NextDay    int                 `json:"next_day"`
	Progress   learning.Progress   `json:"progress"`
}

// PlacementQuestions builds a placement battery for goal without keeping
// it anywhere. The console demo scores it with ScoreAnswers.
func (c *Coach) PlacementQuestions(ctx context.Context, goal string) normalize.Result[[]learning.AssessmentQuestion] {
	res := c.assessments.Questions(ctx, goal, assessment.DefaultQuestions)
	if res.Fallback {
		c.degraded("assessment", res.Reason, zap.String("goal", goal))
	}
	return res
}

// StartAssessment builds a placement battery for the goal and keeps it
// pending until the answers come in.
func (c *Coach) StartAssessment(ctx context.Context, userID string, goal learning.GoalInput) (*store.PendingAssessment, error) {
	if err := c.requireUsers(); err != nil {
		return nil, err
	}
	res := c.PlacementQuestions(ctx, goal.Goal)
	pending := &store.PendingAssessment{
		Goal:      goal,
		Questions: res.Value,
		Fallback:  res.Fallback,
		CreatedAt: c.now().UTC(),
	}
	if err := c.users.SetPendingAssessment(userID, pending); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	return pending, nil
}

// CompleteAssessment scores the pending battery, generates a curriculum at
// the scored level and makes it the active one, starting at the
// recommended day.
func (c *Coach) CompleteAssessment(ctx context.Context, userID string, answers assessment.Answers) (*AssessmentOutcome, error) {
	if err := c.requireUsers(); err != nil {
		return nil, err
	}
	pending, err := c.users.PendingAssessment(userID)
	if err != nil {
		return nil, err
	}

	level := c.ScoreAnswers(answers, pending.Questions)
	c.emit(ctx, events.AssessmentScored, userID, level)

	weeks := pending.Goal.Weeks
	if weeks <= 0 {
		weeks = curriculum.DefaultWeeks
	}
	cur := c.GenerateCurriculum(ctx, pending.Goal.Goal, level.Level, weeks)

	id, err := c.users.SaveCurriculum(userID, cur.Value, pending.Goal, &level, level.RecommendedStartDay)
	if err != nil {
		return nil, fmt.Errorf("save curriculum: %w", err)
	}
	if err := c.users.SetPendingAssessment(userID, nil); err != nil {
		return nil, fmt.Errorf("clear assessment: %w", err)
	}
	c.emit(ctx, events.CurriculumCreated, userID, map[string]any{
		"curriculum_id": id,
		"goal":          cur.Value.Goal,
		"level":         level.Level,
		"total_days":    cur.Value.TotalDays,
		"source":        cur.Value.Source,
	})

	return &AssessmentOutcome{
		Level:        level,
		CurriculumID: id,
		Curriculum:   cur,
		StartDay:     cur.Value.ClampDay(level.RecommendedStartDay),
	}, nil
}

// Today returns the lesson at the progress pointer.
func (c *Coach) Today(userID string) (*DayView, error) {
	return c.Day(userID, 0)
}

// Day returns the lesson for day of the active curriculum, clamped to its
// range. Day 0 means the current day.
func (c *Coach) Day(userID string, day int) (*DayView, error) {
	if err := c.requireUsers(); err != nil {
		return nil, err
	}
	rec, err := c.users.LoadCurriculum(userID, "")
	if err != nil {
		return nil, err
	}
	if day <= 0 {
		day = rec.Progress.CurrentDay
	}
	lesson, ok := curriculum.LessonFor(rec.Curriculum, day)
	if !ok {
		return nil, ErrNoCurriculum
	}

	return &DayView{
		CurriculumID: rec.ID,
		Goal:         rec.Curriculum.Goal,
		Level:        rec.Curriculum.Level,
		Day:          lesson.Day,
		TotalDays:    len(rec.Curriculum.DailyLessons),
		Lesson:       lesson,
		Progress:     rec.Progress,
		Completed:    rec.Progress.IsCompleted(lesson.Day),
		Fallback:     rec.Curriculum.Source == learning.SourceFallback,
	}, nil
}

// DayQuiz returns the quiz for day, generating and storing one when the
// lesson has none. A stored placeholder quiz is regenerated once a provider
// is configured.
func (c *Coach) DayQuiz(ctx context.Context, userID string, day int) (normalize.Result[[]learning.QuizQuestion], error) {
	v, err := c.Day(userID, day)
	if err != nil {
		return normalize.Result[[]learning.QuizQuestion]{}, err
	}

	stored := v.Lesson.Quiz
	if len(stored) > 0 && !(isPlaceholderQuiz(stored) && c.Configured()) {
		if isPlaceholderQuiz(stored) {
			return normalize.Degraded(stored, normalize.ReasonNotConfigured), nil
		}
		return normalize.Ok(stored), nil
	}

	res := c.quizzes.Generate(ctx, quiz.Request{
		Topic: v.Lesson.Theme,
		Level: v.Level,
		Goal:  v.Goal,
		Count: quiz.DefaultCount,
	})
	if res.Fallback {
		c.degraded("quiz", res.Reason, zap.String("user_id", userID), zap.Int("day", v.Day))
	}
	if err := c.users.SaveDayQuiz(userID, v.Day, res.Value); err != nil {
		return res, fmt.Errorf("save quiz: %w", err)
	}
	return res, nil
}

func isPlaceholderQuiz(qs []learning.QuizQuestion) bool {
	for _, q := range qs {
		if q.IsFallback {
			return true
		}
	}
	return false
}

// SubmitDayQuiz grades answers against the stored quiz for day, explains
// the missed questions and records the score.
func (c *Coach) SubmitDayQuiz(ctx context.Context, userID string, day int, answers quiz.Answers) (*QuizOutcome, error) {
	v, err := c.Day(userID, day)
	if err != nil {
		return nil, err
	}
	questions := v.Lesson.Quiz
	if len(questions) == 0 {
		return nil, ErrNoQuiz
	}

	a := quiz.Analyze(answers, questions)
	out := &QuizOutcome{
		Day:          v.Day,
		Analysis:     a,
		Suggestions:  quiz.Suggestions(a),
		Explanations: c.explainMisses(ctx, questions, answers, v.Level),
	}

	score := a.Percentage
	if _, err := c.RecordProgress(ctx, userID, store.ProgressUpdate{
		Day:       v.Day,
		QuizScore: &score,
		LessonID:  fmt.Sprintf("day_%d", v.Day),
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Coach) explainMisses(ctx context.Context, questions []learning.QuizQuestion, answers quiz.Answers, level learning.Level) []Explanation {
	var missed []learning.QuizQuestion
	for _, q := range questions {
		if answers[q.QuestionID] != q.CorrectAnswer {
			missed = append(missed, q)
		}
	}
	out := make([]Explanation, len(missed))

	var g errgroup.Group
	g.SetLimit(explainWorkers)
	for i, q := range missed {
		g.Go(func() error {
			given := answers[q.QuestionID]
			res := c.lessons.ExplainWrongAnswer(ctx, lessons.WrongAnswerFor(q, given, level))
			out[i] = Explanation{
				Question:   q.Question,
				UserAnswer: given,
				Correct:    q.CorrectAnswer,
				Text:       res.Value,
				Fallback:   res.Fallback,
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, e := range out {
		if e.Fallback {
			c.degraded("explain-answer", "wrong answer explanation unavailable")
			break
		}
	}
	return out
}

// CompleteDay evaluates the day, marks it completed, adds the study hours
// and moves the pointer to the next day. Without a quiz score in the report
// the day's recorded quiz score is used.
func (c *Coach) CompleteDay(ctx context.Context, userID string, report progress.DayReport, studyHours float64) (*DayOutcome, error) {
	v, err := c.Day(userID, report.Day)
	if err != nil {
		return nil, err
	}
	report.Day = v.Day
	if report.QuizScore == nil {
		if s, ok := v.Progress.DayQuizScores[v.Day]; ok {
			report.QuizScore = &s
		}
	}

	eval := progress.Evaluate(report)
	p, err := c.RecordProgress(ctx, userID, store.ProgressUpdate{
		Day:        v.Day,
		Completed:  true,
		StudyHours: studyHours,
	})
	if err != nil {
		return nil, err
	}

	next := v.Day
	if v.Day >= p.CurrentDay {
		next, err = c.users.AdvanceDay(userID)
		if err != nil {
			return nil, fmt.Errorf("advance day: %w", err)
		}
		p.CurrentDay = next
	}
	return &DayOutcome{Evaluation: eval, NextDay: next, Progress: p}, nil
}

// Explain returns a markdown explanation of the topic.
func (c *Coach) Explain(ctx context.Context, t lessons.Topic) normalize.Result[string] {
	res := c.lessons.Explain(ctx, t)
	if res.Fallback {
		c.degraded("lesson", res.Reason, zap.String("topic", t.Topic))
	}
	return res
}

// Stats summarizes the user's active curriculum.
func (c *Coach) Stats(userID string) (store.UserStats, error) {
	if err := c.requireUsers(); err != nil {
		return store.UserStats{}, err
	}
	return c.users.Stats(userID)
}
