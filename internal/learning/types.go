// Package learning holds the records shared across the coach: questions,
// levels, curricula, lessons, resources and progress.
package learning

import (
	"sort"
	"strings"
	"time"
)

// Difficulty is an assessment difficulty band.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Bands lists the difficulty bands in weight order.
var Bands = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty normalizes a band label. Empty or unknown labels map to Medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy
	case Hard:
		return Hard
	default:
		return Medium
	}
}

// Weight returns the scoring weight of the band.
func (d Difficulty) Weight() int {
	switch d {
	case Easy:
		return 1
	case Hard:
		return 3
	default:
		return 2
	}
}

// Level is a skill level classification.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// ParseLevel maps free text to a level. Anything unrecognized is Beginner.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case Advanced:
		return Advanced
	case Intermediate:
		return Intermediate
	default:
		return Beginner
	}
}

// Label returns a display label for the level.
func (l Level) Label() string {
	switch l {
	case Advanced:
		return "Advanced"
	case Intermediate:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

// AssessmentQuestion is a placement question.
type AssessmentQuestion struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Options    []string   `json:"options"`
	Correct    string     `json:"correct"`
	Difficulty Difficulty `json:"difficulty"`
	TopicArea  string     `json:"topic_area"`
	IsFallback bool       `json:"is_fallback,omitempty"`
}

// QuizQuestion is a delivery-time quiz question.
type QuizQuestion struct {
	QuestionID    string   `json:"question_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Topic         string   `json:"topic"`
	IsFallback    bool     `json:"is_fallback,omitempty"`
}

// HasOption reports whether opt is byte-equal to one of the options.
func HasOption(options []string, opt string) bool {
	for _, o := range options {
		if o == opt {
			return true
		}
	}
	return false
}

// BandScores holds per-band percentages.
type BandScores struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// LevelResult is the outcome of scoring a placement assessment.
type LevelResult struct {
	Score               int        `json:"score"`
	Bands               BandScores `json:"bands"`
	Level               Level      `json:"level"`
	RecommendedStartDay int        `json:"recommended_start_day"`
	Strengths           []string   `json:"strengths"`
	Weaknesses          []string   `json:"weaknesses"`
	Summary             string     `json:"summary"`
}

// TaskType is the kind of a daily task.
type TaskType string

const (
	TaskTheory   TaskType = "theory"
	TaskPractice TaskType = "practice"
	TaskQuiz     TaskType = "quiz"
)

// Task is one unit of daily work.
type Task struct {
	Task        string   `json:"task"`
	Type        TaskType `json:"type"`
	DurationMin int      `json:"duration_min"`
	Description string   `json:"description"`
}

// Resource is a learning resource link.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// DailyLesson is one day of a curriculum.
type DailyLesson struct {
	Day       int            `json:"day"`
	Week      int            `json:"week"`
	Theme     string         `json:"theme"`
	Tasks     []Task         `json:"tasks"`
	Quiz      []QuizQuestion `json:"quiz"`
	Resources []Resource     `json:"resources"`
	Tip       string         `json:"tip"`
}

// TotalMinutes sums the task durations.
func (l DailyLesson) TotalMinutes() int {
	total := 0
	for _, t := range l.Tasks {
		total += t.DurationMin
	}
	return total
}

// Curriculum source values.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Curriculum is a multi-day learning plan.
type Curriculum struct {
	Goal         string        `json:"goal"`
	Level        Level         `json:"level"`
	Summary      string        `json:"summary"`
	Source       string        `json:"source"`
	TotalDays    int           `json:"total_days"`
	DailyLessons []DailyLesson `json:"daily_lessons"`
}

// WeekOf returns the week number for a 1-based day.
func WeekOf(day int) int {
	if day < 1 {
		return 1
	}
	return (day-1)/7 + 1
}

// ClampDay bounds day to the lesson range. It returns 0 for an empty curriculum.
func (c Curriculum) ClampDay(day int) int {
	n := len(c.DailyLessons)
	if n == 0 {
		return 0
	}
	if day < 1 {
		return 1
	}
	if day > n {
		return n
	}
	return day
}

// Lesson returns the lesson for day after clamping.
func (c Curriculum) Lesson(day int) (DailyLesson, bool) {
	d := c.ClampDay(day)
	if d == 0 {
		return DailyLesson{}, false
	}
	return c.DailyLessons[d-1], true
}

// QuizScore is one entry of the quiz history.
type QuizScore struct {
	Day      int       `json:"day"`
	LessonID string    `json:"lesson_id,omitempty"`
	Score    int       `json:"score"`
	Date     time.Time `json:"date"`
}

// Progress tracks a user's advance through one curriculum.
type Progress struct {
	CurrentDay      int         `json:"current_day"`
	CompletedDays   []int       `json:"completed_days"`
	DayQuizScores   map[int]int `json:"day_quiz_scores"`
	TotalStudyHours float64     `json:"total_study_hours"`
	QuizHistory     []QuizScore `json:"quiz_history"`
}

// NewProgress returns a progress record starting at day.
func NewProgress(day int) Progress {
	if day < 1 {
		day = 1
	}
	return Progress{
		CurrentDay:    day,
		CompletedDays: []int{},
		DayQuizScores: map[int]int{},
		QuizHistory:   []QuizScore{},
	}
}

// IsCompleted reports whether day is in the completed set.
func (p Progress) IsCompleted(day int) bool {
	for _, d := range p.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}

// MarkCompleted adds day to the completed set, keeping it sorted.
func (p *Progress) MarkCompleted(day int) {
	if p.IsCompleted(day) {
		return
	}
	p.CompletedDays = append(p.CompletedDays, day)
	sort.Ints(p.CompletedDays)
}

// SetQuizScore records the last quiz score for day.
func (p *Progress) SetQuizScore(day, score int) {
	if p.DayQuizScores == nil {
		p.DayQuizScores = map[int]int{}
	}
	p.DayQuizScores[day] = score
}

// AverageQuizScore averages the quiz history. Returns 0 when empty.
func (p Progress) AverageQuizScore() float64 {
	if len(p.QuizHistory) == 0 {
		return 0
	}
	sum := 0
	for _, q := range p.QuizHistory {
		sum += q.Score
	}
	return float64(sum) / float64(len(p.QuizHistory))
}

// Completion returns the completed fraction of total days in [0, 1].
func (p Progress) Completion(totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	f := float64(len(p.CompletedDays)) / float64(totalDays)
	if f > 1 {
		return 1
	}
	return f
}

// GoalInput is what the user typed when starting a curriculum.
type GoalInput struct {
	Goal       string  `json:"goal"`
	Weeks      int     `json:"weeks"`
	DailyHours float64 `json:"daily_hours"`
	Style      string  `json:"style,omitempty"`
}

// Profile is the analyzed learner profile.
type Profile struct {
	Goal       string    `json:"goal"`
	Level      string    `json:"level"`
	DailyHours float64   `json:"daily_hours"`
	Style      string    `json:"learning_style"`
	Domain     string    `json:"domain"`
	CreatedAt  time.Time `json:"created_at"`
}

// DailyPlan is the work handed to the learner for one day.
type DailyPlan struct {
	Day       int        `json:"day"`
	Theme     string     `json:"theme"`
	Tasks     []Task     `json:"tasks"`
	Resources []Resource `json:"resources"`
	Tip       string     `json:"tip,omitempty"`
	Fallback  bool       `json:"fallback,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// PerformanceRecord is one evaluated study day.
type PerformanceRecord struct {
	Day            int       `json:"day"`
	CompletedTasks int       `json:"completed_tasks"`
	QuizScore      *int      `json:"quiz_score,omitempty"`
	Difficulty     int       `json:"difficulty"`
	Score          float64   `json:"score"`
	Level          string    `json:"performance_level"`
	RecordedAt     time.Time `json:"recorded_at"`
}
