package profileform

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/router"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/placement"
)

func press(s *Screen, code rune) {
	s.Update(tea.KeyPressMsg{Code: code})
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestInputDefaults(t *testing.T) {
	s := New(context.Background(), coach.New(coach.Deps{}))
	in := s.Input()
	if in.Goal != DefaultGoal || in.Level != "beginner" || in.DailyHours != 1 || in.Style != "balanced" || in.Weeks != 4 {
		t.Errorf("defaults = %+v", in)
	}
}

func TestFillAndSubmit(t *testing.T) {
	s := New(context.Background(), coach.New(coach.Deps{}))
	s.Init()

	typeText(s, "Web")
	press(s, tea.KeyTab)
	press(s, tea.KeyRight) // intermediate
	press(s, tea.KeyTab)
	typeText(s, "2.5")
	press(s, tea.KeyTab)
	press(s, tea.KeyLeft) // practice
	press(s, tea.KeyTab)
	typeText(s, "2")

	in := s.Input()
	if in.Goal != "Web" || in.Level != "intermediate" || in.DailyHours != 2.5 || in.Style != "practice" || in.Weeks != 2 {
		t.Fatalf("input = %+v", in)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on the last field did not submit")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*placement.Screen); !ok {
		t.Errorf("next screen is %T", msg.Screen)
	}
}

func TestSelectorsWrap(t *testing.T) {
	s := New(context.Background(), coach.New(coach.Deps{}))
	press(s, tea.KeyTab)
	press(s, tea.KeyLeft)
	if s.Input().Level != "advanced" {
		t.Errorf("level = %q, want advanced", s.Input().Level)
	}
	press(s, tea.KeyUp)
	if s.focus != fieldGoal {
		t.Errorf("focus = %d after up", s.focus)
	}
}
