package lessons

import (
	"fmt"
	"strings"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

const explainSystemPrompt = `You are a patient, encouraging tutor. You explain one topic at a time in clear markdown with practical examples.`

var levelStyle = map[learning.Level]string{
	learning.Beginner:     "simply and clearly for someone just starting out",
	learning.Intermediate: "in moderate detail for someone who knows the basics",
	learning.Advanced:     "with technical depth for an experienced learner",
}

func buildExplainUserMessage(t Topic, lang string) string {
	style, ok := levelStyle[t.Level]
	if !ok {
		style = string(t.Level)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Explain %q %s.\n", t.Topic, style)
	if t.Goal != "" {
		fmt.Fprintf(&b, "The learner's overall goal: %s\n", t.Goal)
	}
	fmt.Fprintf(&b, "Language: %s\n", lang)
	b.WriteString(`
Requirements:
- Markdown, 200 to 500 words.
- Include practical examples. Explain any code you show.

Structure:
1. Introduction
2. Core concepts
3. Practical examples
4. Key points
5. Summary

Return only the content.`)
	return b.String()
}

const wrongAnswerSystemPrompt = `You help a learner who answered a quiz question incorrectly. You are short, clear and encouraging.`

func buildWrongAnswerUserMessage(w WrongAnswer, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", w.Question)
	fmt.Fprintf(&b, "Learner's answer: %s\n", w.UserAnswer)
	fmt.Fprintf(&b, "Correct answer: %s\n", w.CorrectAnswer)
	if w.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", w.Topic)
	}
	fmt.Fprintf(&b, "Level: %s\n", w.Level)
	fmt.Fprintf(&b, "Language: %s\n", lang)
	b.WriteString(`
In 3 to 4 sentences:
1. Explain why the correct answer is right.
2. Explain where the learner went wrong.
3. Give one short tip for learning this.`)
	return b.String()
}
