package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

const (
	// MaxResponseChars is the size ceiling for a curriculum document.
	// Anything larger is treated as runaway generation and never parsed.
	MaxResponseChars = 100_000

	// MaxAIDays caps the number of lessons requested from the model.
	MaxAIDays = 14

	// MaxQuizPerLesson caps the embedded quiz of each lesson.
	MaxQuizPerLesson = 5
)

// CurriculumRequest describes the plan the caller asked for.
type CurriculumRequest struct {
	Goal  string
	Level learning.Level
	Weeks int
}

func (r CurriculumRequest) weeks() int {
	if r.Weeks < 1 {
		return 1
	}
	return r.Weeks
}

// AIDays is the number of lessons asked of the model.
func (r CurriculumRequest) AIDays() int {
	return min(r.weeks()*7, MaxAIDays)
}

// FallbackDays is the number of placeholder lessons in a fallback plan.
func (r CurriculumRequest) FallbackDays() int {
	return r.weeks() * 7
}

// flexInt accepts integers, floats and numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "min"))
	v, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(v)
	return nil
}

type taskJSON struct {
	Task        string  `json:"task"`
	Type        string  `json:"type"`
	DurationMin flexInt `json:"duration_min"`
	Description string  `json:"description"`
}

type lessonJSON struct {
	Theme     string              `json:"theme"`
	Tasks     []taskJSON          `json:"tasks"`
	Quiz      []json.RawMessage   `json:"quiz"`
	Resources []learning.Resource `json:"resources"`
	Tip       string              `json:"tip"`
}

type curriculumJSON struct {
	Goal         string            `json:"goal"`
	Summary      string            `json:"summary"`
	DailyLessons []json.RawMessage `json:"daily_lessons"`
}

// Curriculum normalizes a model-generated curriculum document. Oversized,
// unparseable or lesson-less documents yield the placeholder curriculum.
func Curriculum(raw string, req CurriculumRequest) Result[learning.Curriculum] {
	text := ExtractJSON(raw)
	if utf8.RuneCountInString(text) > MaxResponseChars {
		return Degraded(FallbackCurriculum(req), ReasonTooLarge)
	}

	var doc curriculumJSON
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return Degraded(FallbackCurriculum(req), ReasonUnparseable)
	}

	lessons := make([]learning.DailyLesson, 0, len(doc.DailyLessons))
	for _, rl := range doc.DailyLessons {
		if bytes.Equal(bytes.TrimSpace(rl), []byte("null")) {
			continue
		}
		var lj lessonJSON
		if err := json.Unmarshal(rl, &lj); err != nil {
			continue
		}
		lessons = append(lessons, lesson(lj, req.Goal))
	}
	if len(lessons) == 0 {
		return Degraded(FallbackCurriculum(req), ReasonEmpty)
	}

	if n := req.AIDays(); len(lessons) > n {
		lessons = lessons[:n]
	}
	for i := range lessons {
		lessons[i].Day = i + 1
		lessons[i].Week = learning.WeekOf(i + 1)
	}

	goal := strings.TrimSpace(doc.Goal)
	if goal == "" {
		goal = req.Goal
	}

	return Ok(learning.Curriculum{
		Goal:         goal,
		Level:        req.Level,
		Summary:      doc.Summary,
		Source:       learning.SourceAI,
		TotalDays:    len(lessons),
		DailyLessons: lessons,
	})
}

func lesson(lj lessonJSON, topic string) learning.DailyLesson {
	quiz := make([]learning.QuizQuestion, 0, MaxQuizPerLesson)
	for _, rq := range lj.Quiz {
		if len(quiz) == MaxQuizPerLesson {
			break
		}
		if q, ok := quizQuestion(rq, topic); ok {
			quiz = append(quiz, q)
		}
	}

	resources := make([]learning.Resource, 0, len(lj.Resources))
	for _, r := range lj.Resources {
		if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.URL) == "" {
			continue
		}
		resources = append(resources, r)
	}

	return learning.DailyLesson{
		Theme:     lj.Theme,
		Tasks:     normalizeTasks(lj.Tasks),
		Quiz:      quiz,
		Resources: resources,
		Tip:       lj.Tip,
	}
}

var defaultTasks = map[learning.TaskType]learning.Task{
	learning.TaskTheory:   {Task: "Theory", Type: learning.TaskTheory, DurationMin: 20, Description: "Study the day's concepts"},
	learning.TaskPractice: {Task: "Practice", Type: learning.TaskPractice, DurationMin: 25, Description: "Apply the concepts in a short exercise"},
	learning.TaskQuiz:     {Task: "Quiz", Type: learning.TaskQuiz, DurationMin: 10, Description: "Check your understanding"},
}

// normalizeTasks keeps the first task of each type, in theory, practice,
// quiz order, and synthesizes defaults for missing types.
func normalizeTasks(in []taskJSON) []learning.Task {
	out := make([]learning.Task, 0, 3)
	for _, typ := range []learning.TaskType{learning.TaskTheory, learning.TaskPractice, learning.TaskQuiz} {
		t := defaultTasks[typ]
		for _, tj := range in {
			if learning.TaskType(strings.ToLower(strings.TrimSpace(tj.Type))) != typ {
				continue
			}
			if tj.Task != "" {
				t.Task = tj.Task
			}
			if tj.DurationMin > 0 {
				t.DurationMin = int(tj.DurationMin)
			}
			if tj.Description != "" {
				t.Description = tj.Description
			}
			break
		}
		out = append(out, t)
	}
	return out
}

// FallbackCurriculum builds req.FallbackDays() placeholder lessons asking
// the user to configure the generative service.
func FallbackCurriculum(req CurriculumRequest) learning.Curriculum {
	days := req.FallbackDays()
	lessons := make([]learning.DailyLesson, days)
	for i := range lessons {
		day := i + 1
		lessons[i] = learning.DailyLesson{
			Day:   day,
			Week:  learning.WeekOf(day),
			Theme: fmt.Sprintf("⚠️ AI service required - Day %d", day),
			Tasks: []learning.Task{
				{Task: "AI configuration", Type: learning.TaskTheory, DurationMin: 20, Description: "Add GEMINI_API_KEY to your .env file"},
				{Task: "Documentation", Type: learning.TaskPractice, DurationMin: 25, Description: "Read the setup guide"},
				{Task: "Test", Type: learning.TaskQuiz, DurationMin: 10, Description: "A quiz is generated automatically once the AI service is active"},
			},
			Quiz: []learning.QuizQuestion{},
			Resources: []learning.Resource{
				{Title: "Gemini API documentation", URL: "https://ai.google.dev/", Type: "documentation"},
			},
			Tip: "A personalized curriculum needs the AI service. Please configure your API key.",
		}
	}

	return learning.Curriculum{
		Goal:         req.Goal,
		Level:        req.Level,
		Summary:      "⚠️ AI service required - please configure GEMINI_API_KEY",
		Source:       learning.SourceFallback,
		TotalDays:    days,
		DailyLessons: lessons,
	}
}
