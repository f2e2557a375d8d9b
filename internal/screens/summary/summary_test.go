package summary

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/router"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

func newCoach(t *testing.T) *coach.Coach {
	t.Helper()
	memory, err := store.NewMemoryBank(filepath.Join(t.TempDir(), store.MemoryFile))
	if err != nil {
		t.Fatalf("memory bank: %v", err)
	}
	return coach.New(coach.Deps{Memory: memory})
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(context.Background(), newCoach(t), Request{Input: coach.DemoInput()})
	if s.Title() != "Your Plan" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestSummaryScreen_FlowAndDayEnd(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t)
	level := learning.LevelResult{Score: 40, Level: learning.Beginner, RecommendedStartDay: 1}
	s := New(ctx, c, Request{Input: coach.DemoInput(), Level: &level})

	if view := s.View(100, 500); !strings.Contains(view, "Building your curriculum") {
		t.Errorf("expected loading text, got:\n%s", view)
	}

	res, err := c.RunInitialFlow(ctx, coach.DemoInput())
	if err != nil {
		t.Fatalf("initial flow: %v", err)
	}
	s.Update(flowMsg{Result: res})
	s.Update(explanationMsg{Result: normalize.Degraded("# Python\n\nVariables hold values.", normalize.ReasonNotConfigured)})

	view := s.View(100, 500)
	for _, want := range []string{"Your level", "Beginner (40%)", "Day 1:", "placeholder plan", "placeholder lesson", "Variables"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if cmd == nil {
		t.Fatal("expected a command to finish the day")
	}
	msg := cmd()
	if _, again := s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"}); again != nil {
		t.Error("second day-end started while the first was running")
	}
	s.Update(msg)

	view = s.View(100, 500)
	if !strings.Contains(view, "Day 1 evaluation") || !strings.Contains(view, "Day 2:") {
		t.Errorf("day-end missing from view:\n%s", view)
	}
	if s.daily.Evaluation.DailyScore == 0 {
		t.Error("expected a daily score")
	}
}

func TestSummaryScreen_ConsumesPrefetch(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t)
	in := coach.DemoInput()
	s := New(ctx, c, Request{Input: in, Prefetched: true})

	s.Update(pollMsg{})
	if s.explained {
		t.Fatal("explained before anything was prefetched")
	}

	c.Lessons().Prefetch(ctx, s.topic())
	for i := 0; i < 200 && !s.explained; i++ {
		time.Sleep(5 * time.Millisecond)
		s.Update(pollMsg{})
	}
	if !s.explained || !s.explainFell {
		t.Errorf("explained = %v, fallback = %v", s.explained, s.explainFell)
	}
}

func TestSummaryScreen_EnterGoesHome(t *testing.T) {
	s := New(context.Background(), newCoach(t), Request{Input: coach.DemoInput()})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.HomeMsg); !ok {
		t.Error("enter did not go home")
	}
}
