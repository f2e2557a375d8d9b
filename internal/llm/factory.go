package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Deps are the optional collaborators of the decorator chain.
type Deps struct {
	Events  EventRecorder
	Metrics MetricsRecorder
	Logger  *zap.Logger
}

// NewProvider creates a Provider from configuration, wrapped as
// caller → timeout → retry → metrics → event log → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return wrap(base, cfg, deps), nil
}

func wrap(base Provider, cfg Config, deps Deps) Provider {
	p := base
	if deps.Events != nil {
		p = WithLogging(p, cfg.Provider, deps.Events, deps.Logger)
	}
	if deps.Metrics != nil {
		p = WithMetrics(p, deps.Metrics)
	}
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry, deps.Logger)
	}
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p
}
