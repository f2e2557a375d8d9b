package explain

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
)

func TestExplainScreen_DefaultTopic(t *testing.T) {
	s := New(context.Background(), coach.New(coach.Deps{}))
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter did not ask")
	}
	if !strings.Contains(s.View(100, 40), "Explaining") {
		t.Error("expected the waiting view")
	}
	if _, again := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); again != nil {
		t.Error("asked twice while waiting")
	}

	s.Update(cmd())
	if s.topic != DefaultTopic {
		t.Errorf("topic = %q, want %q", s.topic, DefaultTopic)
	}
	if s.result == nil || !s.result.Fallback {
		t.Fatalf("expected a placeholder result, got %+v", s.result)
	}
	if view := s.View(100, 200); !strings.Contains(view, "placeholder lesson") {
		t.Errorf("view missing banner:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.result != nil {
		t.Error("enter did not return to the prompt")
	}
}

func TestExplainScreen_TypedTopic(t *testing.T) {
	s := New(context.Background(), coach.New(coach.Deps{}))
	s.Init()
	for _, r := range "CSS" {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())
	if s.topic != "CSS" {
		t.Errorf("topic = %q, want CSS", s.topic)
	}
}
