package normalize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

func quizItem(id int, correct string) string {
	return fmt.Sprintf(`{"question_id":%d,"question":"Q%d?","options":["a","b","c","d"],"correct_answer":%q}`, id, id, correct)
}

func quizArray(items ...string) string {
	return "[" + strings.Join(items, ",") + "]"
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  [1,2]  ", "[1,2]"},
		{"json fence", "Here:\n```json\n[1]\n```\nbye", "[1]"},
		{"upper tag", "```JSON\n{}\n```", "{}"},
		{"bare fence", "```\n[3]\n```", "[3]"},
		{"unterminated", "```json\n[4]", "[4]"},
		{"first fence wins", "```[1]``` and ```[2]```", "[1]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSON(tc.in))
		})
	}
}

func TestThreshold(t *testing.T) {
	cases := map[int]int{-2: 0, 0: 0, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 10: 5}
	for n, want := range cases {
		assert.Equal(t, want, Threshold(n), "n=%d", n)
	}
}

func TestQuiz_InvalidJSONFallsBack(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 10} {
		res := Quiz("this is not json at all", n, "loops")
		require.True(t, res.IsFallback())
		assert.Equal(t, ReasonUnparseable, res.Reason)
		require.Len(t, res.Value, min(n, 3))
		for i, q := range res.Value {
			assert.Equal(t, fmt.Sprintf("fallback_%d", i+1), q.QuestionID)
			assert.True(t, learning.HasOption(q.Options, q.CorrectAnswer))
			assert.Equal(t, "Add API key", q.CorrectAnswer)
			assert.True(t, q.IsFallback)
			assert.Contains(t, q.Question, "loops")
		}
	}
}

func TestQuiz_ObjectIsNotAnArray(t *testing.T) {
	res := Quiz(`{"question_id":1}`, 2, "x")
	assert.True(t, res.Fallback)
	assert.Equal(t, ReasonUnparseable, res.Reason)
}

func TestQuiz_AllValid(t *testing.T) {
	raw := "```json\n" + quizArray(quizItem(1, "a"), quizItem(2, "b"), quizItem(3, "c")) + "\n```"
	res := Quiz(raw, 3, "maps")

	require.False(t, res.Fallback)
	require.Len(t, res.Value, 3)
	assert.Equal(t, "1", res.Value[0].QuestionID)
	assert.Equal(t, "maps", res.Value[0].Topic)
	assert.Equal(t, "c", res.Value[2].CorrectAnswer)
}

func TestQuiz_TruncatesToN(t *testing.T) {
	raw := quizArray(quizItem(1, "a"), quizItem(2, "a"), quizItem(3, "a"), quizItem(4, "a"))
	res := Quiz(raw, 2, "t")
	require.False(t, res.Fallback)
	assert.Len(t, res.Value, 2)
}

func TestQuiz_DropsInvalidElements(t *testing.T) {
	raw := quizArray(
		quizItem(1, "a"),
		quizItem(2, "z"), // correct answer not among options
		`{"question":"missing id","options":["a"],"correct_answer":"a"}`,
		`{"question_id":"q4","question":"Q4","options":["x","y"],"correct_answer":"y","topic":"own"}`,
	)
	res := Quiz(raw, 4, "fallback-topic")

	require.False(t, res.Fallback)
	require.Len(t, res.Value, 2)
	assert.Equal(t, "1", res.Value[0].QuestionID)
	assert.Equal(t, "q4", res.Value[1].QuestionID)
	assert.Equal(t, "own", res.Value[1].Topic)
}

func TestQuiz_CaseMismatchIsRejected(t *testing.T) {
	raw := quizArray(quizItem(1, "A"))
	res := Quiz(raw, 1, "t")
	assert.True(t, res.Fallback)
	assert.Equal(t, ReasonTooFewValid, res.Reason)
}

func TestQuiz_BelowHalfFallsBack(t *testing.T) {
	// 2 of 5 valid; threshold is 3.
	raw := quizArray(quizItem(1, "a"), quizItem(2, "b"), quizItem(3, "q"), quizItem(4, "q"), quizItem(5, "q"))
	res := Quiz(raw, 5, "t")

	require.True(t, res.Fallback)
	assert.Equal(t, ReasonTooFewValid, res.Reason)
	assert.Len(t, res.Value, 3)
}

func TestQuiz_ExactlyHalfRoundedUpIsAccepted(t *testing.T) {
	raw := quizArray(quizItem(1, "a"), quizItem(2, "b"), quizItem(3, "c"), quizItem(4, "q"), quizItem(5, "q"))
	res := Quiz(raw, 5, "t")
	require.False(t, res.Fallback)
	assert.Len(t, res.Value, 3)
}

func TestQuiz_ZeroRequested(t *testing.T) {
	res := Quiz("[]", 0, "t")
	assert.False(t, res.Fallback)
	assert.Empty(t, res.Value)
}

func TestFallbackQuiz_Deterministic(t *testing.T) {
	a := FallbackQuiz(5, "go")
	b := FallbackQuiz(5, "go")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("fallback not deterministic (-a +b):\n%s", diff)
	}
	assert.Len(t, a, 3)
	assert.Equal(t, "⚠️ AI service unavailable (go). Please configure GEMINI_API_KEY.", a[0].Question)
}

func TestAssessment_ParsesDifficultyAndArea(t *testing.T) {
	raw := `[
		{"id":1,"question":"q1","options":["a","b"],"correct":"a","difficulty":"HARD","topic_area":"syntax"},
		{"id":"2","question":"q2","options":["a","b"],"correct":"b"},
		{"id":3,"question":"q3","options":["a","b"],"correct":"a","difficulty":"weird"}
	]`
	res := Assessment(raw, 3, "python")

	require.False(t, res.Fallback)
	require.Len(t, res.Value, 3)
	assert.Equal(t, learning.Hard, res.Value[0].Difficulty)
	assert.Equal(t, "syntax", res.Value[0].TopicArea)
	assert.Equal(t, learning.Medium, res.Value[1].Difficulty)
	assert.Equal(t, "python", res.Value[1].TopicArea)
	assert.Equal(t, learning.Medium, res.Value[2].Difficulty)
}

func TestAssessment_FallbackBattery(t *testing.T) {
	res := Assessment("nope", 10, "go")
	require.True(t, res.Fallback)
	require.Len(t, res.Value, 10)

	want := []learning.Difficulty{
		learning.Easy, learning.Easy, learning.Easy,
		learning.Medium, learning.Medium, learning.Medium, learning.Medium,
		learning.Hard, learning.Hard, learning.Hard,
	}
	for i, q := range res.Value {
		assert.Equal(t, want[i], q.Difficulty, "question %d", i+1)
		assert.Equal(t, "Option A", q.Correct)
		assert.Equal(t, "General", q.TopicArea)
		assert.True(t, learning.HasOption(q.Options, q.Correct))
	}
}

func lessonDoc(n int) string {
	lessons := make([]string, n)
	for i := range lessons {
		lessons[i] = fmt.Sprintf(`{"day":%d,"theme":"Theme %d","tasks":[
			{"task":"Read","type":"theory","duration_min":"15"},
			{"task":"Code","type":"practice","duration_min":30},
			{"task":"Quiz","type":"quiz","duration_min":5.0}
		],"quiz":[%s],"resources":[{"title":"Doc","url":"https://go.dev","type":"documentation"}],"tip":"tip"}`,
			i*3+7, i+1, quizItem(i+1, "a"))
	}
	return `{"goal":"Learn Go","summary":"s","daily_lessons":[` + strings.Join(lessons, ",") + `]}`
}

func TestCurriculum_AcceptsAndRenumbers(t *testing.T) {
	res := Curriculum("```json\n"+lessonDoc(3)+"\n```", CurriculumRequest{Goal: "g", Level: learning.Beginner, Weeks: 1})

	require.False(t, res.Fallback)
	c := res.Value
	assert.Equal(t, learning.SourceAI, c.Source)
	assert.Equal(t, "Learn Go", c.Goal)
	assert.Equal(t, 3, c.TotalDays)
	for i, l := range c.DailyLessons {
		assert.Equal(t, i+1, l.Day)
		assert.Equal(t, 1, l.Week)
		require.Len(t, l.Tasks, 3)
		assert.Equal(t, learning.TaskTheory, l.Tasks[0].Type)
		assert.Equal(t, 15, l.Tasks[0].DurationMin)
		assert.Equal(t, 5, l.Tasks[2].DurationMin)
		assert.Len(t, l.Quiz, 1)
	}
}

func TestCurriculum_TruncatesToAIDays(t *testing.T) {
	res := Curriculum(lessonDoc(20), CurriculumRequest{Goal: "g", Weeks: 4})
	require.False(t, res.Fallback)
	assert.Len(t, res.Value.DailyLessons, MaxAIDays)
	assert.Equal(t, 2, res.Value.DailyLessons[13].Week)
}

func TestCurriculum_SynthesizesMissingTasks(t *testing.T) {
	raw := `{"daily_lessons":[{"theme":"t","tasks":[{"task":"Build","type":"Practice","duration_min":40}]}]}`
	res := Curriculum(raw, CurriculumRequest{Goal: "g", Weeks: 1})

	require.False(t, res.Fallback)
	tasks := res.Value.DailyLessons[0].Tasks
	got := []int{tasks[0].DurationMin, tasks[1].DurationMin, tasks[2].DurationMin}
	if diff := cmp.Diff([]int{20, 40, 10}, got); diff != "" {
		t.Fatalf("durations (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Build", tasks[1].Task)
	assert.Equal(t, "g", res.Value.Goal)
}

func TestCurriculum_CapsLessonQuiz(t *testing.T) {
	items := make([]string, 8)
	for i := range items {
		items[i] = quizItem(i+1, "a")
	}
	raw := `{"daily_lessons":[{"theme":"t","quiz":[` + strings.Join(items, ",") + `]}]}`
	res := Curriculum(raw, CurriculumRequest{Weeks: 1})
	require.False(t, res.Fallback)
	assert.Len(t, res.Value.DailyLessons[0].Quiz, MaxQuizPerLesson)
}

func TestCurriculum_EmptyLessonsFallsBack(t *testing.T) {
	res := Curriculum(`{"goal":"x","daily_lessons":[]}`, CurriculumRequest{Goal: "x", Weeks: 2})

	require.True(t, res.Fallback)
	assert.Equal(t, ReasonEmpty, res.Reason)
	c := res.Value
	assert.Equal(t, learning.SourceFallback, c.Source)
	assert.Equal(t, 14, c.TotalDays)
	require.Len(t, c.DailyLessons, 14)
	for i, l := range c.DailyLessons {
		assert.Equal(t, i+1, l.Day)
		assert.Equal(t, fmt.Sprintf("⚠️ AI service required - Day %d", i+1), l.Theme)
		assert.Equal(t, 55, l.TotalMinutes())
		assert.Empty(t, l.Quiz)
	}
}

func TestCurriculum_NullLessonsAreSkipped(t *testing.T) {
	res := Curriculum(`{"daily_lessons":[null,null]}`, CurriculumRequest{Goal: "x", Weeks: 1})
	require.True(t, res.Fallback)
	assert.Equal(t, ReasonEmpty, res.Reason)

	res = Curriculum(`{"daily_lessons":[null,{"theme":"t"},null]}`, CurriculumRequest{Goal: "x", Weeks: 1})
	require.False(t, res.Fallback)
	require.Len(t, res.Value.DailyLessons, 1)
	assert.Equal(t, "t", res.Value.DailyLessons[0].Theme)
	assert.Equal(t, 1, res.Value.DailyLessons[0].Day)
}

func TestCurriculum_UnparseableFallsBack(t *testing.T) {
	res := Curriculum("{broken", CurriculumRequest{Weeks: 0})
	require.True(t, res.Fallback)
	assert.Equal(t, ReasonUnparseable, res.Reason)
	assert.Len(t, res.Value.DailyLessons, 7)
}

func TestCurriculum_OversizedIsNotParsed(t *testing.T) {
	raw := `{"daily_lessons":[{"theme":"` + strings.Repeat("x", MaxResponseChars) + `"}]}`
	res := Curriculum(raw, CurriculumRequest{Weeks: 1})
	require.True(t, res.Fallback)
	assert.Equal(t, ReasonTooLarge, res.Reason)
}

func TestCurriculumRequest_Days(t *testing.T) {
	assert.Equal(t, 7, CurriculumRequest{Weeks: 1}.AIDays())
	assert.Equal(t, 14, CurriculumRequest{Weeks: 4}.AIDays())
	assert.Equal(t, 28, CurriculumRequest{Weeks: 4}.FallbackDays())
	assert.Equal(t, 7, CurriculumRequest{Weeks: -3}.FallbackDays())
}
