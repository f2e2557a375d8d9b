package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

func newTestUserStore(t *testing.T) (*UserStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", UsersFile)
	s, err := NewUserStore(path)
	require.NoError(t, err)
	return s, path
}

func testCurriculum(days int) learning.Curriculum {
	c := learning.Curriculum{Goal: "Learn Go", Level: learning.Beginner, Source: learning.SourceAI, TotalDays: days}
	for d := 1; d <= days; d++ {
		c.DailyLessons = append(c.DailyLessons, learning.DailyLesson{Day: d, Week: learning.WeekOf(d), Theme: "t"})
	}
	return c
}

func registerUser(t *testing.T, s *UserStore) string {
	t.Helper()
	id, err := s.Register("ada", "Ada@Example.com", "secret")
	require.NoError(t, err)
	return id
}

func TestNewUserStore_InitializesFile(t *testing.T) {
	_, path := newTestUserStore(t)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":{}}`, string(b))
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestUserStore(t)
	id := registerUser(t, s)

	u, err := s.Login("ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.NotNil(t, u.LastLogin)
	assert.NotEqual(t, "secret", u.PasswordHash)

	_, err = s.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login("nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicates(t *testing.T) {
	s, _ := newTestUserStore(t)
	registerUser(t, s)

	_, err := s.Register("other", "ada@example.com", "x")
	assert.ErrorIs(t, err, ErrEmailTaken)
	_, err = s.Register("ADA", "new@example.com", "x")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, err = s.Register("", "e@example.com", "x")
	assert.Error(t, err)
}

func TestGetUnknownUser(t *testing.T) {
	s, _ := newTestUserStore(t)
	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveCurriculum_BecomesActiveWithClampedStart(t *testing.T) {
	s, _ := newTestUserStore(t)
	id := registerUser(t, s)

	first, err := s.SaveCurriculum(id, testCurriculum(7), learning.GoalInput{Goal: "a"}, nil, 1)
	require.NoError(t, err)
	second, err := s.SaveCurriculum(id, testCurriculum(14), learning.GoalInput{Goal: "b"}, &learning.LevelResult{Level: learning.Advanced}, 15)
	require.NoError(t, err)
	assert.Contains(t, second, "curr_")

	active, err := s.LoadCurriculum(id, "")
	require.NoError(t, err)
	assert.Equal(t, second, active.ID)
	assert.Equal(t, 14, active.Progress.CurrentDay)
	assert.Equal(t, StatusActive, active.Status)

	old, err := s.LoadCurriculum(id, first)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, old.Status)

	_, err = s.LoadCurriculum(id, "curr_missing")
	assert.ErrorIs(t, err, ErrCurriculumNotFound)
}

func TestSetActiveAndArchive(t *testing.T) {
	s, _ := newTestUserStore(t)
	id := registerUser(t, s)

	a, err := s.SaveCurriculum(id, testCurriculum(7), learning.GoalInput{}, nil, 1)
	require.NoError(t, err)
	b, err := s.SaveCurriculum(id, testCurriculum(7), learning.GoalInput{}, nil, 1)
	require.NoError(t, err)

	require.NoError(t, s.SetActive(id, a))
	rec, err := s.LoadCurriculum(id, "")
	require.NoError(t, err)
	assert.Equal(t, a, rec.ID)

	require.NoError(t, s.Archive(id, a))
	_, err = s.LoadCurriculum(id, "")
	assert.ErrorIs(t, err, ErrCurriculumNotFound)

	archived, err := s.LoadCurriculum(id, a)
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, archived.Status)
	assert.NotNil(t, archived.ArchivedAt)

	all, err := s.Curricula(id)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a, all[0].ID)
	assert.Equal(t, b, all[1].ID)

	assert.ErrorIs(t, s.SetActive(id, "nope"), ErrCurriculumNotFound)
}

func TestArchive_EmptyIDClearsActive(t *testing.T) {
	s, _ := newTestUserStore(t)
	id := registerUser(t, s)
	cid, err := s.SaveCurriculum(id, testCurriculum(7), learning.GoalInput{}, nil, 1)
	require.NoError(t, err)

	require.NoError(t, s.Archive(id, ""))

	_, err = s.LoadCurriculum(id, "")
	assert.ErrorIs(t, err, ErrCurriculumNotFound)
	_, err = s.RecordProgress(id, ProgressUpdate{Day: 1, Completed: true})
	assert.ErrorIs(t, err, ErrCurriculumNotFound)

	archived, err := s.LoadCurriculum(id, cid)
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, archived.Status)
}

func TestRecordProgress_RoundTrip(t *testing.T) {
	s, path := newTestUserStore(t)
	id := registerUser(t, s)
	_, err := s.SaveCurriculum(id, testCurriculum(7), learning.GoalInput{}, nil, 1)
	require.NoError(t, err)

	score := 80
	_, err = s.RecordProgress(id, ProgressUpdate{Day: 3, Completed: true, StudyHours: 1.5, QuizScore: &score, LessonID: "day_3"})
	require.NoError(t, err)
	_, err = s.RecordProgress(id, ProgressUpdate{Day: 1, Completed: true, StudyHours: 0.5})
	require.NoError(t, err)
	_, err = s.RecordProgress(id, ProgressUpdate{Day: 3, Completed: true})
	require.NoError(t, err)
	_, err = s.RecordProgress(id, ProgressUpdate{Day: 5, QuizScore: &score})
	require.NoError(t, err)
	day, err := s.AdvanceDay(id)
	require.NoError(t, err)
	assert.Equal(t, 2, day)

	reopened, err := NewUserStore(path)
	require.NoError(t, err)
	rec, err := reopened.LoadCurriculum(id, "")
	require.NoError(t, err)

	p := rec.Progress
	assert.Equal(t, 2, p.CurrentDay)
	assert.Equal(t, []int{1, 3}, p.CompletedDays)
	assert.Equal(t, map[int]int{3: 80, 5: 80}, p.DayQuizScores)
	assert.InDelta(t, 2.0, p.TotalStudyHours, 1e-9)
	require.Len(t, p.QuizHistory, 2)
	assert.Equal(t, "day_3", p.QuizHistory[0].LessonID)
}

func TestAdvanceDay_StopsAtLastLesson(t *testing.T) {
	s, _ := newTestUserStore(t)
	id := registerUser(t, s)
	_, err := s.SaveCurriculum(id, testCurriculum(2), learning.GoalInput{}, nil, 2)
	require.NoError(t, err)

	day, err := s.AdvanceDay(id)
	require.NoError(t, err)
	assert.Equal(t, 2, day)
}

func TestCurrentLesson_ClampsAtRead(t *testing.T) {
	rec := CurriculumRecord{Curriculum: testCurriculum(3), Progress: learning.Progress{CurrentDay: 9}}
	l, ok := rec.CurrentLesson()
	require.True(t, ok)
	assert.Equal(t, 3, l.Day)

	rec.Progress.CurrentDay = -1
	l, ok = rec.CurrentLesson()
	require.True(t, ok)
	assert.Equal(t, 1, l.Day)

	_, ok = CurriculumRecord{}.CurrentLesson()
	assert.False(t, ok)
}

func TestSaveDayQuiz(t *testing.T) {
	s, _ := newTestUserStore(t)
	id := registerUser(t, s)
	_, err := s.SaveCurriculum(id, testCurriculum(3), learning.GoalInput{}, nil, 1)
	require.NoError(t, err)

	quiz := []learning.QuizQuestion{{QuestionID: "1", Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a"}}
	require.NoError(t, s.SaveDayQuiz(id, 2, quiz))

	rec, err := s.LoadCurriculum(id, "")
	require.NoError(t, err)
	assert.Equal(t, quiz, rec.Curriculum.DailyLessons[1].Quiz)
}

func TestPendingAssessment(t *testing.T) {
	s, _ := newTestUserStore(t)
	id := registerUser(t, s)

	_, err := s.PendingAssessment(id)
	assert.ErrorIs(t, err, ErrNoPendingAssessment)

	pa := &PendingAssessment{
		Goal:      learning.GoalInput{Goal: "python", Weeks: 2},
		Questions: []learning.AssessmentQuestion{{ID: "1", Options: []string{"a"}, Correct: "a", Difficulty: learning.Easy}},
	}
	require.NoError(t, s.SetPendingAssessment(id, pa))

	got, err := s.PendingAssessment(id)
	require.NoError(t, err)
	assert.Equal(t, "python", got.Goal.Goal)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, s.SetPendingAssessment(id, nil))
	_, err = s.PendingAssessment(id)
	assert.ErrorIs(t, err, ErrNoPendingAssessment)
}

func TestStats(t *testing.T) {
	s, _ := newTestUserStore(t)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	id := registerUser(t, s)

	st, err := s.Stats(id)
	require.NoError(t, err)
	assert.Equal(t, UserStats{}, st)

	_, err = s.SaveCurriculum(id, testCurriculum(7), learning.GoalInput{}, nil, 1)
	require.NoError(t, err)
	for i, score := range []int{70, 85} {
		sc := score
		_, err = s.RecordProgress(id, ProgressUpdate{Day: i + 1, Completed: true, StudyHours: 0.75, QuizScore: &sc})
		require.NoError(t, err)
	}

	st, err = s.Stats(id)
	require.NoError(t, err)
	assert.Equal(t, UserStats{
		CompletedDays:    2,
		TotalDays:        7,
		CurrentDay:       1,
		TotalHours:       1.5,
		AverageQuizScore: 77.5,
		QuizCount:        2,
		Curricula:        1,
	}, st)
}
