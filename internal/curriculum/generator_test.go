package curriculum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

func planJSON(days int) string {
	lessons := make([]map[string]any, days)
	for i := range lessons {
		lessons[i] = map[string]any{
			"day":   i + 1,
			"theme": fmt.Sprintf("Theme %d", i+1),
			"tasks": []map[string]any{
				{"task": "Read", "type": "theory", "duration_min": 20, "description": "d"},
			},
			"tip": "keep going",
		}
	}
	b, _ := json.Marshal(map[string]any{"goal": "Go", "summary": "s", "daily_lessons": lessons})
	return string(b)
}

func TestGenerate_NotConfigured(t *testing.T) {
	res := NewGenerator(nil, DefaultConfig()).Generate(context.Background(), "Go", learning.Beginner, 2)

	require.True(t, res.Fallback)
	assert.Equal(t, normalize.ReasonNotConfigured, res.Reason)
	assert.Len(t, res.Value.DailyLessons, 14)
	assert.Equal(t, learning.SourceFallback, res.Value.Source)
}

func TestGenerate_DefaultWeeks(t *testing.T) {
	res := NewGenerator(nil, DefaultConfig()).Generate(context.Background(), "Go", learning.Beginner, 0)
	assert.Len(t, res.Value.DailyLessons, DefaultWeeks*7)
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("unavailable")})
	res := NewGenerator(mock, DefaultConfig()).Generate(context.Background(), "Go", learning.Intermediate, 1)

	require.True(t, res.Fallback)
	assert.Equal(t, normalize.ReasonProviderError, res.Reason)
	assert.Len(t, res.Value.DailyLessons, 7)
}

func TestGenerate_CapsAIDays(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: planJSON(20)})
	res := NewGenerator(mock, DefaultConfig()).Generate(context.Background(), "Go", learning.Beginner, 4)

	require.False(t, res.Fallback)
	assert.Len(t, res.Value.DailyLessons, normalize.MaxAIDays)
	assert.Equal(t, learning.SourceAI, res.Value.Source)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Length: 14 days")
}

func TestLessonFor_Clamps(t *testing.T) {
	c := learning.Curriculum{DailyLessons: []learning.DailyLesson{{Day: 1}, {Day: 2}, {Day: 3}}}

	tests := []struct {
		day  int
		want int
	}{
		{-4, 1}, {0, 1}, {2, 2}, {3, 3}, {99, 3},
	}
	for _, tt := range tests {
		l, ok := LessonFor(c, tt.day)
		require.True(t, ok)
		assert.Equal(t, tt.want, l.Day, "day %d", tt.day)
	}

	_, ok := LessonFor(learning.Curriculum{}, 1)
	assert.False(t, ok)
}
