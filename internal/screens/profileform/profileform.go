// Package profileform collects the learner's goal and preferences.
package profileform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/profile"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/router"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screen"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/placement"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/components"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/layout"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/theme"
)

// DefaultGoal is used when the goal field is left empty.
const DefaultGoal = "Python programlama öğrenmek"

type choice struct {
	label string
	value string
}

var (
	levels = []choice{
		{"Beginner (new to it)", "beginner"},
		{"Intermediate (know the basics)", "intermediate"},
		{"Advanced (experienced)", "advanced"},
	}
	styles = []choice{
		{"Mostly theory", "theory"},
		{"Mostly practice", "practice"},
		{"Mixed", "balanced"},
	}
)

const (
	fieldGoal = iota
	fieldLevel
	fieldHours
	fieldStyle
	fieldWeeks
	fieldCount
)

// Screen is the profile form.
type Screen struct {
	ctx   context.Context
	coach *coach.Coach

	goal  components.TextInput
	hours components.TextInput
	weeks components.TextInput
	level int
	style int
	focus int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates an empty form.
func New(ctx context.Context, c *coach.Coach) *Screen {
	s := &Screen{
		ctx:   ctx,
		coach: c,
		goal:  components.NewTextInput(DefaultGoal, false, 120),
		hours: components.NewTextInput("1", true, 4),
		weeks: components.NewTextInput("4", true, 2),
		style: 2,
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.goal.Focus()
}

func (s *Screen) Title() string {
	return "Create Profile"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Next / Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.move(1)
	case "shift+tab", "up":
		return s, s.move(-1)
	case "enter":
		if s.focus == fieldCount-1 {
			return s, router.Replace(placement.New(s.ctx, s.coach, s.Input()))
		}
		return s, s.move(1)
	case "left", "right":
		step := 1
		if kmsg.String() == "left" {
			step = -1
		}
		switch s.focus {
		case fieldLevel:
			s.level = (s.level + step + len(levels)) % len(levels)
			return s, nil
		case fieldStyle:
			s.style = (s.style + step + len(styles)) % len(styles)
			return s, nil
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldGoal:
		s.goal, cmd = s.goal.Update(msg)
	case fieldHours:
		s.hours, cmd = s.hours.Update(msg)
	case fieldWeeks:
		s.weeks, cmd = s.weeks.Update(msg)
	}
	return s, cmd
}

func (s *Screen) move(step int) tea.Cmd {
	s.goal.Blur()
	s.hours.Blur()
	s.weeks.Blur()
	s.focus = (s.focus + step + fieldCount) % fieldCount
	switch s.focus {
	case fieldGoal:
		return s.goal.Focus()
	case fieldHours:
		return s.hours.Focus()
	case fieldWeeks:
		return s.weeks.Focus()
	}
	return nil
}

// Input returns the form as profile input, with defaults for empty fields.
func (s *Screen) Input() coach.FlowInput {
	goal := s.goal.Value()
	if goal == "" {
		goal = DefaultGoal
	}
	weeks, err := strconv.Atoi(s.weeks.Value())
	if err != nil || weeks <= 0 {
		weeks = 4
	}
	return coach.FlowInput{
		Input: profile.Input{
			Goal:       goal,
			Level:      levels[s.level].value,
			DailyHours: s.hours.Float(profile.DefaultDailyHours),
			Style:      styles[s.style].value,
		},
		Weeks: weeks,
	}
}

func (s *Screen) View(width, height int) string {
	rows := []string{
		s.row(fieldGoal, "Learning goal", s.goal.View()),
		s.row(fieldLevel, "Current level", selector(levels, s.level, s.focus == fieldLevel)),
		s.row(fieldHours, "Hours per day", s.hours.View()),
		s.row(fieldStyle, "Learning style", selector(styles, s.style, s.focus == fieldStyle)),
		s.row(fieldWeeks, "Weeks", s.weeks.View()),
	}
	body := theme.Title.Render("Tell the coach about yourself") + "\n\n" +
		strings.Join(rows, "\n\n") + "\n\n" +
		theme.Hint.Render("Examples: 'Python öğrenmek', 'Web geliştirme', 'Veri bilimi'")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Width(min(width-4, 72)).Render(body))
}

func (s *Screen) row(field int, label, value string) string {
	style := theme.Subtitle
	if s.focus == field {
		style = theme.Label
	}
	return style.Render(fmt.Sprintf("%-15s", label)) + " " + value
}

func selector(cs []choice, i int, focused bool) string {
	text := "‹ " + cs[i].label + " ›"
	if focused {
		return theme.Selected.Render(text)
	}
	return theme.Unselected.Render(text)
}
