package lessons

import "fmt"

// FallbackExplanation is the page shown when no explanation can be
// generated for topic.
func FallbackExplanation(topic string) string {
	return fmt.Sprintf(`# ⚠️ AI service unavailable

An explanation of **%s** could not be generated right now.

## Meanwhile

- Read the resources listed for today's lesson.
- Write down the key terms of the topic and look each one up.
- Try a small exercise on your own and check it against the documentation.
- Come back later; the explanation is generated once the AI service responds.

To enable generated explanations, add GEMINI_API_KEY to your .env file.
`, topic)
}

// FallbackWrongAnswer is the explanation used when none can be generated.
func FallbackWrongAnswer(correct string) string {
	return fmt.Sprintf("The correct answer is %s. Review the topic again.", correct)
}
