package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

// offline clears every variable that would reach an external service.
func offline(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"COACH_LLM_PROVIDER", "GOOGLE_SEARCH_API_KEY", "GOOGLE_SEARCH_ENGINE_ID", "AMQP_URL",
	} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDemo_RunsOffline(t *testing.T) {
	offline(t)
	dir := t.TempDir()

	out, err := execute(t, "demo", "--data-dir", dir)
	require.NoError(t, err)
	for _, want := range []string{"== Profile", "== Day 1 plan", "== Day 1 evaluation", "== Day 2 plan", "placeholder curriculum"} {
		assert.Contains(t, out, want)
	}
	assert.FileExists(t, filepath.Join(dir, store.MemoryFile))
}

func TestDemo_InputFile(t *testing.T) {
	offline(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "learner.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`goal: Learn Go web development
current_level: intermediate
daily_available_time: 2
preferred_learning_style: practice
report:
  day: 1
  completed_tasks: 1
`), 0o644))

	out, err := execute(t, "demo", "--data-dir", dir, "--input", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Learn Go web development")
	assert.Contains(t, out, `"completed_tasks": 1`)
}

func TestReadDemoInput_RejectsUnknownFields(t *testing.T) {
	input := filepath.Join(t.TempDir(), "learner.yaml")
	require.NoError(t, os.WriteFile(input, []byte("goal: Go\nhours: 2\n"), 0o644))

	_, err := readDemoInput(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hours")
}

func TestReadDemoInput_RequiresGoal(t *testing.T) {
	input := filepath.Join(t.TempDir(), "learner.yaml")
	require.NoError(t, os.WriteFile(input, []byte("current_level: beginner\n"), 0o644))

	_, err := readDemoInput(input)
	assert.ErrorContains(t, err, "goal is required")
}

func TestGroupUsage(t *testing.T) {
	rows := []store.LLMUsage{
		{Purpose: "quiz", Model: "m1", Requests: 2, InputTokens: 100, OutputTokens: 50, AvgLatencyMs: 100},
		{Purpose: "quiz", Model: "m2", Requests: 2, Failures: 1, InputTokens: 10, OutputTokens: 5, AvgLatencyMs: 300},
		{Purpose: "curriculum", Model: "m1", Requests: 1, InputTokens: 1000, OutputTokens: 500, AvgLatencyMs: 900},
	}

	byPurpose := groupUsage(rows, func(u store.LLMUsage) string { return u.Purpose })
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "curriculum", byPurpose[0].key)
	quiz := byPurpose[1]
	assert.Equal(t, 4, quiz.requests)
	assert.Equal(t, 1, quiz.failures)
	assert.Equal(t, 110, quiz.inputTokens)
	assert.InDelta(t, 200.0, quiz.avgLatency(), 0.001)

	byModel := groupUsage(rows, func(u store.LLMUsage) string { return u.Model })
	require.Len(t, byModel, 2)
	assert.Equal(t, 3, byModel[0].requests)
}

func TestPrintCostByModel_UnknownModel(t *testing.T) {
	var b strings.Builder
	printCostByModel(&b, []usageGroup{{key: "no-such-model", requests: 1}})
	assert.Contains(t, b.String(), "TOTAL (partial)")
	assert.Contains(t, b.String(), "Pricing unavailable for: no-such-model")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
