// Package curriculum asks the generative service for a multi-day plan and
// looks up the lesson for a day.
package curriculum

import (
	"context"
	"fmt"
	"strings"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

// DefaultWeeks is the plan length used when the caller gives none.
const DefaultWeeks = 4

// Config controls curriculum generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	Language    string
}

// DefaultConfig returns recommended defaults. Fourteen lessons with five
// quiz questions each need a large output budget.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   16384,
		Temperature: 0.7,
		Language:    "en",
	}
}

// Generator produces curricula. A nil provider means every plan is the
// placeholder plan.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

const systemPrompt = `You are a curriculum designer. You write day-by-day study plans that take a learner from their current level toward a concrete goal.

Rules:
- One specific theme per day, building on the previous days.
- Exactly 3 tasks per day: a theory task, a practice task and a quiz task.
- Exactly 5 multiple-choice quiz questions per day with 4 options each.
- "correct_answer" must be copied character for character from "options".
- Only link resources that really exist.
- Return only the JSON document. No commentary.`

// Generate asks for a plan of weeks for goal at level. The model is asked for
// at most normalize.MaxAIDays lessons; the placeholder plan covers every week.
func (g *Generator) Generate(ctx context.Context, goal string, level learning.Level, weeks int) normalize.Result[learning.Curriculum] {
	if weeks <= 0 {
		weeks = DefaultWeeks
	}
	req := normalize.CurriculumRequest{Goal: goal, Level: level, Weeks: weeks}
	if g.provider == nil {
		return normalize.Degraded(normalize.FallbackCurriculum(req), normalize.ReasonNotConfigured)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeCurriculum)
	resp, err := g.provider.Generate(ctx, llm.Ask(systemPrompt, buildUserMessage(req, g.config.Language), g.config.MaxTokens, g.config.Temperature))
	if err != nil {
		return normalize.Degraded(normalize.FallbackCurriculum(req), normalize.ReasonProviderError)
	}

	return normalize.Curriculum(resp.Text, req)
}

func buildUserMessage(req normalize.CurriculumRequest, lang string) string {
	days := req.AIDays()

	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", req.Goal)
	fmt.Fprintf(&b, "Level: %s\n", req.Level)
	fmt.Fprintf(&b, "Length: %d days\n", days)
	fmt.Fprintf(&b, "Language: %s\n\n", lang)
	b.WriteString("Shape:\n")
	fmt.Fprintf(&b, `{
  "goal": %q,
  "summary": "...",
  "total_days": %d,
  "daily_lessons": [
    {
      "day": 1,
      "theme": "...",
      "tasks": [
        {"task": "Theory: ...", "type": "theory", "duration_min": 20, "description": "..."},
        {"task": "Practice: ...", "type": "practice", "duration_min": 25, "description": "..."},
        {"task": "Quiz: ...", "type": "quiz", "duration_min": 10, "description": "..."}
      ],
      "quiz": [
        {"question_id": "q1", "question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "...", "topic": "..."}
      ],
      "resources": [
        {"title": "...", "url": "https://...", "type": "documentation"}
      ],
      "tip": "..."
    }
  ]
}`, req.Goal, days)
	return b.String()
}

// LessonFor returns the lesson for day, clamped to the lesson range. It
// reports false only for an empty curriculum.
func LessonFor(c learning.Curriculum, day int) (learning.DailyLesson, bool) {
	return c.Lesson(day)
}
