package lessons

import (
	"strings"
	"testing"
	"time"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

const validExplanation = "# Goroutines\n\nA goroutine is a function running concurrently with other functions in the same address space."

func waitForPrefetch(t *testing.T, svc *Service) *Prefetched {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if p, ok := svc.Consume(); ok {
			return p
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected prefetched explanation")
	return nil
}

func TestService_Explain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  " + validExplanation + "\n"})
	svc := NewService(mock, DefaultConfig())

	res := svc.Explain(t.Context(), Topic{Topic: "Goroutines", Level: learning.Beginner, Goal: "Learn Go"})
	if res.Fallback {
		t.Fatalf("unexpected fallback: %s", res.Reason)
	}
	if res.Value != validExplanation {
		t.Errorf("expected trimmed explanation, got %q", res.Value)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "simply and clearly") {
		t.Errorf("expected beginner style in prompt, got %q", msg)
	}
	if !strings.Contains(msg, "Learn Go") {
		t.Errorf("expected goal in prompt, got %q", msg)
	}
}

func TestService_ExplainTooShort(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Goroutines are threads."})
	svc := NewService(mock, DefaultConfig())

	res := svc.Explain(t.Context(), Topic{Topic: "Goroutines"})
	if !res.Fallback || res.Reason != normalize.ReasonTooShort {
		t.Fatalf("expected too-short fallback, got %+v", res)
	}
	if !strings.Contains(res.Value, "**Goroutines**") {
		t.Errorf("expected topic in fallback page, got %q", res.Value)
	}
}

func TestService_ExplainProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	res := NewService(mock, DefaultConfig()).Explain(t.Context(), Topic{Topic: "Maps"})
	if !res.Fallback || res.Reason != normalize.ReasonProviderError {
		t.Fatalf("expected provider-error fallback, got %+v", res)
	}
}

func TestService_NotConfigured(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	if res := svc.Explain(t.Context(), Topic{Topic: "Maps"}); res.Reason != normalize.ReasonNotConfigured {
		t.Errorf("expected not-configured reason, got %q", res.Reason)
	}
	res := svc.ExplainWrongAnswer(t.Context(), WrongAnswer{CorrectAnswer: "[]"})
	if res.Value != "The correct answer is []. Review the topic again." {
		t.Errorf("unexpected wrong-answer fallback %q", res.Value)
	}
}

func TestService_ExplainWrongAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Lists use square brackets. Parentheses create tuples."})
	svc := NewService(mock, DefaultConfig())

	q := learning.QuizQuestion{Question: "Which brackets create a list?", CorrectAnswer: "[]", Topic: "lists"}
	res := svc.ExplainWrongAnswer(t.Context(), WrongAnswerFor(q, "()", learning.Beginner))
	if res.Fallback {
		t.Fatalf("unexpected fallback: %s", res.Reason)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Learner's answer: ()") || !strings.Contains(msg, "Correct answer: []") {
		t.Errorf("expected answers in prompt, got %q", msg)
	}
	if mock.Calls[0].MaxTokens != DefaultConfig().AnswerMaxTokens {
		t.Errorf("expected answer token budget, got %d", mock.Calls[0].MaxTokens)
	}
}

func TestService_PrefetchAndConsume(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: validExplanation})
	svc := NewService(mock, DefaultConfig())

	svc.Prefetch(t.Context(), Topic{Topic: "Goroutines"})
	p := waitForPrefetch(t, svc)

	if p.Topic.Topic != "Goroutines" {
		t.Errorf("expected topic Goroutines, got %q", p.Topic.Topic)
	}
	if p.Result.Fallback {
		t.Errorf("unexpected fallback: %s", p.Result.Reason)
	}

	if _, ok := svc.Consume(); ok {
		t.Error("expected second Consume to return false")
	}
}

func TestService_PrefetchFallbackIsDelivered(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	svc.Prefetch(t.Context(), Topic{Topic: "Maps"})

	p := waitForPrefetch(t, svc)
	if !p.Result.Fallback {
		t.Error("expected fallback result")
	}
}
