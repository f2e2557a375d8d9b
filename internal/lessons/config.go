package lessons

// MinExplanationChars is the shortest explanation accepted from the model.
const MinExplanationChars = 50

// Config holds lesson generation settings.
type Config struct {
	MaxTokens       int
	AnswerMaxTokens int
	Temperature     float64
	Language        string
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       2048,
		AnswerMaxTokens: 400,
		Temperature:     0.5,
		Language:        "en",
	}
}
