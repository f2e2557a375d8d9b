package assessment

import (
	"context"
	"fmt"
	"strings"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

// DefaultQuestions is the default battery size.
const DefaultQuestions = 10

// Config controls battery generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	Language    string
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
		Language:    "en",
	}
}

// Generator produces placement batteries. A nil provider means the AI
// service is not configured and every battery is the static fallback.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

const systemPrompt = `You write placement tests that estimate a learner's current level in a subject.

Rules:
- Every question has exactly 4 options.
- "correct" must be copied character for character from "options".
- Mix difficulties: about 40% easy (definitions, basic concepts), 40% medium (applied knowledge), 20% hard (in-depth topics).
- Label each question with a short sub-topic in "topic_area".
- Return only a JSON array. No commentary.`

// Questions returns n placement questions for topic.
func (g *Generator) Questions(ctx context.Context, topic string, n int) normalize.Result[[]learning.AssessmentQuestion] {
	if n <= 0 {
		n = DefaultQuestions
	}
	if g.provider == nil {
		return normalize.Degraded(normalize.FallbackAssessment(n, topic), normalize.ReasonNotConfigured)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAssessment)
	resp, err := g.provider.Generate(ctx, llm.Ask(systemPrompt, buildUserMessage(topic, n, g.config.Language), g.config.MaxTokens, g.config.Temperature))
	if err != nil {
		return normalize.Degraded(normalize.FallbackAssessment(n, topic), normalize.ReasonProviderError)
	}

	return normalize.Assessment(resp.Text, n, topic)
}

func buildUserMessage(topic string, n int, lang string) string {
	easy := n * 4 / 10
	medium := n * 4 / 10
	hard := n - easy - medium

	var b strings.Builder
	fmt.Fprintf(&b, "Learner goal: %q\n", topic)
	fmt.Fprintf(&b, "Write %d questions focused entirely on this goal: %d easy, %d medium, %d hard.\n", n, easy, medium, hard)
	fmt.Fprintf(&b, "Language: %s\n\n", lang)
	b.WriteString(`Shape:
[
  {"id": 1, "question": "...", "options": ["...", "...", "...", "..."], "correct": "...", "difficulty": "easy", "topic_area": "..."}
]`)
	return b.String()
}
