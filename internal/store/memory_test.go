package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

func TestMemoryBank_EmptyDocument(t *testing.T) {
	m, err := NewMemoryBank(filepath.Join(t.TempDir(), MemoryFile))
	require.NoError(t, err)

	_, ok, err := m.UserProfile()
	require.NoError(t, err)
	assert.False(t, ok)

	perf, err := m.Performance()
	require.NoError(t, err)
	assert.Empty(t, perf)

	_, ok, err = m.Curriculum()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryBank_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), MemoryFile)
	m, err := NewMemoryBank(path)
	require.NoError(t, err)

	require.NoError(t, m.SaveUserProfile(learning.Profile{Goal: "python", Domain: "python", DailyHours: 1}))
	require.NoError(t, m.SaveRecommendations("python-beginner", []learning.Resource{{Title: "Docs", URL: "https://docs.python.org"}}))
	require.NoError(t, m.AppendDailyPlan(learning.DailyPlan{Day: 1, Theme: "Intro"}))
	require.NoError(t, m.AppendDailyPlan(learning.DailyPlan{Day: 2, Theme: "Loops"}))
	require.NoError(t, m.AppendPerformance(learning.PerformanceRecord{Day: 1, Score: 38, Level: "good"}))
	require.NoError(t, m.SaveCurriculum(learning.Curriculum{Goal: "python", TotalDays: 1}))

	again, err := NewMemoryBank(path)
	require.NoError(t, err)

	p, ok, err := again.UserProfile()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "python", p.Domain)

	recs, err := again.Recommendations()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "python-beginner", recs[0].Key)

	plans, err := again.DailyPlans()
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Loops", plans[1].Theme)
	assert.False(t, plans[0].CreatedAt.IsZero())

	perf, err := again.Performance()
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, "good", perf[0].Level)

	c, ok, err := again.Curriculum()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, c.TotalDays)
}
