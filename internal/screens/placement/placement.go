// Package placement runs the placement assessment in the console.
package placement

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/assessment"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/lessons"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/router"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screen"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/summary"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/components"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/layout"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/theme"
)

// questionsMsg carries the generated battery.
type questionsMsg struct {
	res normalize.Result[[]learning.AssessmentQuestion]
}

// Screen asks the placement questions one at a time.
type Screen struct {
	ctx   context.Context
	coach *coach.Coach
	input coach.FlowInput

	questions []learning.AssessmentQuestion
	fallback  bool
	loaded    bool
	current   int
	choice    components.MultiChoice
	answers   assessment.Answers
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the assessment for the learner in input.
func New(ctx context.Context, c *coach.Coach, input coach.FlowInput) *Screen {
	return &Screen{ctx: ctx, coach: c, input: input, answers: assessment.Answers{}}
}

// Init starts generating the battery and prefetches the first lesson
// explanation while the learner answers.
func (s *Screen) Init() tea.Cmd {
	ctx, c, goal := s.ctx, s.coach, s.input.Goal
	c.Lessons().Prefetch(ctx, lessons.Topic{
		Topic: goal,
		Level: learning.ParseLevel(s.input.Level),
		Goal:  goal,
	})
	return func() tea.Msg {
		return questionsMsg{res: c.PlacementQuestions(ctx, goal)}
	}
}

func (s *Screen) Title() string {
	return "Placement Assessment"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-D", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		s.questions = msg.res.Value
		s.fallback = msg.res.Fallback
		s.loaded = true
		if len(s.questions) == 0 {
			return s, s.finish()
		}
		s.ask(0)
		return s, nil

	case tea.KeyPressMsg:
		if !s.loaded || s.current >= len(s.questions) {
			return s, nil
		}
		s.choice, _ = s.choice.Update(msg)
		if !s.choice.Submitted {
			return s, nil
		}
		s.answers[s.questions[s.current].ID] = s.choice.Answer()
		if s.current+1 < len(s.questions) {
			s.ask(s.current + 1)
			return s, nil
		}
		s.current = len(s.questions)
		return s, s.finish()
	}
	return s, nil
}

func (s *Screen) ask(i int) {
	s.current = i
	q := s.questions[i]
	s.choice = components.NewMultiChoice(fmt.Sprintf("%d. %s", i+1, q.Question), q.Options)
}

// finish scores the answers and hands over to the plan summary.
func (s *Screen) finish() tea.Cmd {
	level := s.coach.ScoreAnswers(s.answers, s.questions)
	in := s.input
	in.Level = string(level.Level)
	return router.Replace(summary.New(s.ctx, s.coach, summary.Request{
		Input:      in,
		Level:      &level,
		Prefetched: true,
	}))
}

// Answers returns the answers given so far.
func (s *Screen) Answers() assessment.Answers {
	return s.answers
}

func (s *Screen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Preparing your assessment for "+s.input.Goal+" ..."))
	}

	cw := min(width-4, 80)
	var body string
	if s.fallback {
		body += theme.Banner.Render("AI service unavailable: these are sample questions.") + "\n\n"
	}
	bar := components.ProgressBar{Label: "Progress", Done: s.current, Total: len(s.questions), Width: cw - 6}
	body += bar.View() + "\n\n"
	if s.current < len(s.questions) {
		q := s.questions[s.current]
		body += theme.Hint.Render(fmt.Sprintf("%s · %s", q.TopicArea, q.Difficulty)) + "\n"
		body += s.choice.View()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Width(cw).Render(body))
}
