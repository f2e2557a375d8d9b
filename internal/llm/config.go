package llm

import (
	"errors"
	"fmt"
	"time"
)

// Provider names.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// discoveryOrder is the order in which Resolve looks for an API key.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// keyEnv names the environment variable that carries each provider's key.
var keyEnv = map[string]string{
	ProviderGemini:     "GEMINI_API_KEY",
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderAnthropic:  "ANTHROPIC_API_KEY",
	ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty means the first provider with an
	// API key, see Resolve.
	Provider string

	Gemini     ProviderConfig
	OpenAI     ProviderConfig
	Anthropic  ProviderConfig
	OpenRouter ProviderConfig

	Retry RetryConfig

	// Timeout bounds a single call including retries.
	Timeout time.Duration
}

// ProviderConfig is the connection setting of one backend.
type ProviderConfig struct {
	APIKey string
	// Model is a model id or one of the short aliases in models.go.
	Model string
	// BaseURL overrides the API endpoint. Tests point it at a local server.
	BaseURL string
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults with no provider selected.
func DefaultConfig() Config {
	return Config{
		Gemini:     ProviderConfig{Model: "gemini-2.5-flash"},
		OpenAI:     ProviderConfig{Model: "gpt-mini"},
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.5-flash", BaseURL: openRouterURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

func (c *Config) backend(name string) *ProviderConfig {
	switch name {
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// Resolve fills an empty Provider with the first backend that has an API
// key and reports whether the result is usable.
func (c *Config) Resolve() bool {
	if c.Provider == "" {
		for _, name := range discoveryOrder {
			if c.backend(name).APIKey != "" {
				c.Provider = name
				break
			}
		}
	}
	return c.Validate() == nil
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return errors.New("no LLM provider configured")
	case ProviderMock:
		return nil
	}
	pc := c.backend(c.Provider)
	if pc == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", keyEnv[c.Provider], c.Provider)
	}
	return nil
}
