package quiz

import (
	"fmt"
	"strings"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

var pythonSample = []learning.QuizQuestion{
	{QuestionID: "py_1", Question: "Which brackets create a list in Python?", Options: []string{"()", "[]", "{}", "<>"}, CorrectAnswer: "[]", Topic: "python_basics"},
	{QuestionID: "py_2", Question: "How does a comment line start in Python?", Options: []string{"//", "#", "/*", "--"}, CorrectAnswer: "#", Topic: "python_basics"},
	{QuestionID: "py_3", Question: "What does len() return?", Options: []string{"The type", "The length", "The value", "The index"}, CorrectAnswer: "The length", Topic: "python_functions"},
	{QuestionID: "py_4", Question: "Which brackets create a dictionary in Python?", Options: []string{"()", "[]", "{}", "<>"}, CorrectAnswer: "{}", Topic: "python_data_structures"},
	{QuestionID: "py_5", Question: "How many times does 'for i in range(5):' run?", Options: []string{"4", "5", "6", "Forever"}, CorrectAnswer: "5", Topic: "python_loops"},
}

// SampleQuiz returns canned questions for topic: the Python set when the
// topic mentions python, otherwise n generic questions.
func SampleQuiz(topic string, n int) []learning.QuizQuestion {
	if n < 0 {
		n = 0
	}
	if strings.Contains(strings.ToLower(topic), "python") {
		out := make([]learning.QuizQuestion, min(n, len(pythonSample)))
		copy(out, pythonSample)
		return out
	}

	out := make([]learning.QuizQuestion, n)
	for i := range out {
		out[i] = learning.QuizQuestion{
			QuestionID:    fmt.Sprintf("gen_%d", i),
			Question:      fmt.Sprintf("Sample question %d - %s", i+1, topic),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Topic:         topic,
		}
	}
	return out
}
