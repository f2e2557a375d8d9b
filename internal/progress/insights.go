package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

// InsightWindow is the number of most recent days sent for analysis.
const InsightWindow = 7

// Insights is a generated reading of a performance history.
type Insights struct {
	Trend           string   `json:"overall_trend"`
	Strengths       []string `json:"strengths"`
	AreasToImprove  []string `json:"areas_to_improve"`
	Recommendations []string `json:"recommendations"`
	Motivation      string   `json:"motivation_message"`
}

// InsightsSchema is the structured output shape for performance analysis.
var InsightsSchema = &llm.Schema{
	Name:        "progress-insights",
	Description: "Analysis of a learner's recent daily performance",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall_trend": map[string]any{
				"type": "string",
				"enum": []any{"improving", "stable", "declining"},
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"areas_to_improve": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"recommendations": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"motivation_message": map[string]any{
				"type":        "string",
				"description": "One encouraging sentence",
			},
		},
		"required":             []any{"overall_trend", "strengths", "areas_to_improve", "recommendations", "motivation_message"},
		"additionalProperties": false,
	},
}

// MockInsights is the analysis used when none can be generated.
func MockInsights() Insights {
	return Insights{
		Trend:          TrendStable,
		Strengths:      []string{"Regular study", "Completing tasks"},
		AreasToImprove: []string{"Quiz performance"},
		Recommendations: []string{
			"Keep your daily study time",
			"Revisit the topics you found difficult",
		},
		Motivation: "You're doing well! Keep going! 🚀",
	}
}

// AdvisorConfig holds generation settings.
type AdvisorConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultAdvisorConfig returns sensible defaults.
func DefaultAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}

// Advisor produces performance insights.
type Advisor struct {
	provider llm.Provider
	cfg      AdvisorConfig
}

// NewAdvisor creates an Advisor. A nil provider always yields MockInsights.
func NewAdvisor(provider llm.Provider, cfg AdvisorConfig) *Advisor {
	return &Advisor{provider: provider, cfg: cfg}
}

const insightsSystemPrompt = `You are a learning coach reviewing a learner's recent study days. Identify the trend, what is going well and what to work on, and give practical recommendations.`

var historyTmpl = template.Must(template.New("history").Parse(`Recent days (oldest first):
{{range .}}- Day {{.Day}}: score {{.Score}}, tasks {{.CompletedTasks}}, {{if .HasQuiz}}quiz {{.QuizScore}}{{else}}no quiz{{end}}, difficulty {{.Difficulty}}/5, {{.Level}}
{{end}}`))

type historyLine struct {
	learning.PerformanceRecord
	HasQuiz   bool
	QuizScore int
}

func buildInsightsMessage(history []learning.PerformanceRecord) (string, error) {
	lines := make([]historyLine, len(history))
	for i, r := range history {
		lines[i] = historyLine{PerformanceRecord: r}
		if r.QuizScore != nil {
			lines[i].HasQuiz, lines[i].QuizScore = true, *r.QuizScore
		}
	}
	var buf bytes.Buffer
	if err := historyTmpl.Execute(&buf, lines); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Insights analyzes the last InsightWindow entries of history.
func (a *Advisor) Insights(ctx context.Context, history []learning.PerformanceRecord) normalize.Result[Insights] {
	if len(history) == 0 {
		return normalize.Degraded(MockInsights(), normalize.ReasonEmpty)
	}
	if a.provider == nil {
		return normalize.Degraded(MockInsights(), normalize.ReasonNotConfigured)
	}
	if len(history) > InsightWindow {
		history = history[len(history)-InsightWindow:]
	}

	msg, err := buildInsightsMessage(history)
	if err != nil {
		return normalize.Degraded(MockInsights(), fmt.Sprintf("build insights prompt: %v", err))
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeInsights)
	req := llm.Ask(insightsSystemPrompt, msg, a.cfg.MaxTokens, a.cfg.Temperature)
	req.Schema = InsightsSchema
	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return normalize.Degraded(MockInsights(), normalize.ReasonProviderError)
	}

	var out Insights
	if err := json.Unmarshal(resp.JSON(), &out); err != nil {
		return normalize.Degraded(MockInsights(), normalize.ReasonUnparseable)
	}
	return normalize.Ok(out)
}
