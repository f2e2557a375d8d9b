package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

func TestGenerator_NotConfigured(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig())
	res := g.Questions(context.Background(), "Go", 10)

	require.True(t, res.Fallback)
	assert.Equal(t, normalize.ReasonNotConfigured, res.Reason)
	assert.Len(t, res.Value, 10)
}

func TestGenerator_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	res := NewGenerator(mock, DefaultConfig()).Questions(context.Background(), "Go", 4)

	require.True(t, res.Fallback)
	assert.Equal(t, normalize.ReasonProviderError, res.Reason)
	assert.Len(t, res.Value, 4)
}

func TestGenerator_ParsesModelOutput(t *testing.T) {
	text := "Here you go:\n```json\n[" +
		`{"id":1,"question":"What is a slice?","options":["a","b","c","d"],"correct":"a","difficulty":"easy","topic_area":"types"},` +
		`{"id":2,"question":"What is a goroutine?","options":["a","b","c","d"],"correct":"b","difficulty":"hard","topic_area":"concurrency"}` +
		"]\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Text: text})
	res := NewGenerator(mock, DefaultConfig()).Questions(context.Background(), "Go", 2)

	require.False(t, res.Fallback)
	require.Len(t, res.Value, 2)
	assert.Equal(t, "concurrency", res.Value[1].TopicArea)

	req := mock.Calls[0]
	assert.Contains(t, req.Messages[0].Content, `"Go"`)
	assert.True(t, strings.Contains(req.Messages[0].Content, "0 easy, 0 medium, 2 hard"))
}

func TestGenerator_DefaultCount(t *testing.T) {
	res := NewGenerator(nil, DefaultConfig()).Questions(context.Background(), "Go", 0)
	assert.Len(t, res.Value, DefaultQuestions)
}
