package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

// DefaultCount is the number of questions in a daily quiz.
const DefaultCount = 5

// Config controls quiz generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	Language    string
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
		Language:    "en",
	}
}

// Request describes the quiz to generate.
type Request struct {
	Topic string
	Level learning.Level
	Goal  string
	Count int
}

// Generator produces daily quizzes.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator. A nil provider yields placeholder quizzes.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

const systemPrompt = `You write short multiple-choice quizzes that check what a learner studied today.

Rules:
- Every question is about the given lesson topic only.
- Every question has exactly 4 options.
- "correct_answer" must be copied character for character from "options".
- Match the difficulty to the learner's level.
- Return only a JSON array. No commentary.`

var levelDescriptions = map[learning.Level]string{
	learning.Beginner:     "beginner: basic concepts",
	learning.Intermediate: "intermediate: applied and practical knowledge",
	learning.Advanced:     "advanced: in-depth and technical knowledge",
}

// Generate returns req.Count questions on req.Topic.
func (g *Generator) Generate(ctx context.Context, req Request) normalize.Result[[]learning.QuizQuestion] {
	if req.Count <= 0 {
		req.Count = DefaultCount
	}
	if g.provider == nil {
		return normalize.Degraded(normalize.FallbackQuiz(req.Count, req.Topic), normalize.ReasonNotConfigured)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)
	resp, err := g.provider.Generate(ctx, llm.Ask(systemPrompt, buildUserMessage(req, g.config.Language), g.config.MaxTokens, g.config.Temperature))
	if err != nil {
		return normalize.Degraded(normalize.FallbackQuiz(req.Count, req.Topic), normalize.ReasonProviderError)
	}

	return normalize.Quiz(resp.Text, req.Count, req.Topic)
}

func buildUserMessage(req Request, lang string) string {
	level, ok := levelDescriptions[req.Level]
	if !ok {
		level = string(req.Level)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Lesson topic: %q\n", req.Topic)
	fmt.Fprintf(&b, "Level: %s\n", level)
	if req.Goal != "" {
		fmt.Fprintf(&b, "Overall goal: %s\n", req.Goal)
	}
	fmt.Fprintf(&b, "Questions: %d\n", req.Count)
	fmt.Fprintf(&b, "Language: %s\n\n", lang)
	fmt.Fprintf(&b, `Shape:
[
  {"question_id": "q1", "question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "...", "topic": %q}
]`, req.Topic)
	return b.String()
}
