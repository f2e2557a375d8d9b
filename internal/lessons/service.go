// Package lessons produces markdown topic explanations and short
// explanations of missed quiz answers.
package lessons

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

// Service generates explanations. It also holds a single prefetch slot so a
// front end can start an explanation early and pick it up later.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	gen     uint64
	pending *Prefetched
}

// Prefetched is a finished background explanation.
type Prefetched struct {
	Topic  Topic
	Result normalize.Result[string]
}

// NewService creates a lesson service. A nil provider serves fallback pages.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Explain returns a markdown explanation of t. Provider failures and
// responses shorter than MinExplanationChars yield the fallback page.
func (s *Service) Explain(ctx context.Context, t Topic) normalize.Result[string] {
	if s.provider == nil {
		return normalize.Degraded(FallbackExplanation(t.Topic), normalize.ReasonNotConfigured)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeLesson)
	resp, err := s.provider.Generate(ctx, llm.Ask(explainSystemPrompt, buildExplainUserMessage(t, s.cfg.Language), s.cfg.MaxTokens, s.cfg.Temperature))
	if err != nil {
		return normalize.Degraded(FallbackExplanation(t.Topic), normalize.ReasonProviderError)
	}

	text := strings.TrimSpace(resp.Text)
	if utf8.RuneCountInString(text) < MinExplanationChars {
		return normalize.Degraded(FallbackExplanation(t.Topic), normalize.ReasonTooShort)
	}
	return normalize.Ok(text)
}

// ExplainWrongAnswer explains a missed question in a few sentences.
func (s *Service) ExplainWrongAnswer(ctx context.Context, w WrongAnswer) normalize.Result[string] {
	if s.provider == nil {
		return normalize.Degraded(FallbackWrongAnswer(w.CorrectAnswer), normalize.ReasonNotConfigured)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeExplainAnswer)
	resp, err := s.provider.Generate(ctx, llm.Ask(wrongAnswerSystemPrompt, buildWrongAnswerUserMessage(w, s.cfg.Language), s.cfg.AnswerMaxTokens, s.cfg.Temperature))
	if err != nil {
		return normalize.Degraded(FallbackWrongAnswer(w.CorrectAnswer), normalize.ReasonProviderError)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return normalize.Degraded(FallbackWrongAnswer(w.CorrectAnswer), normalize.ReasonTooShort)
	}
	return normalize.Ok(text)
}

// Prefetch starts generating an explanation in the background. Only one
// explanation is in flight at a time; a newer request replaces an older one
// and the older result is discarded when it arrives.
func (s *Service) Prefetch(ctx context.Context, t Topic) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending = nil
	s.mu.Unlock()

	go func() {
		res := s.Explain(ctx, t)
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = &Prefetched{Topic: t, Result: res}
	}()
}

// Consume returns the prefetched explanation if one is ready and clears the
// slot. Returns (nil, false) if nothing is ready yet.
func (s *Service) Consume() (*Prefetched, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p, p != nil
}
