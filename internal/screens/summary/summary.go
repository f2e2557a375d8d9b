// Package summary shows the learner's level, first-day plan and lesson
// explanation, and simulates the end of the first day.
package summary

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/lessons"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/progress"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/router"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screen"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/layout"
)

const (
	pollInterval = 250 * time.Millisecond
	// maxPolls bounds the wait for a prefetched explanation before asking
	// for one directly.
	maxPolls = 240

	// SimulatedQuizScore is the quiz score reported for the simulated day.
	SimulatedQuizScore = 80
)

// Request is what the summary is built from.
type Request struct {
	Input coach.FlowInput
	// Level is the scored placement, nil when the assessment was skipped.
	Level *learning.LevelResult
	// Prefetched means the explanation of the goal is already being
	// generated by the lesson service.
	Prefetched bool
}

// Screen is the plan summary.
type Screen struct {
	ctx   context.Context
	coach *coach.Coach
	req   Request

	initial     *coach.InitialResult
	daily       *coach.DailyResult
	explanation string
	explainFell bool
	explained   bool
	// rendered caches the explanation rendered at renderedWidth.
	rendered      string
	renderedWidth int
	running       bool
	polls         int
	err           error
	scroll        int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the summary for req.
func New(ctx context.Context, c *coach.Coach, req Request) *Screen {
	return &Screen{ctx: ctx, coach: c, req: req, running: true}
}

func (s *Screen) topic() lessons.Topic {
	return lessons.Topic{
		Topic: s.req.Input.Goal,
		Level: learning.ParseLevel(s.req.Input.Level),
		Goal:  s.req.Input.Goal,
	}
}

func (s *Screen) Init() tea.Cmd {
	ctx, c, in := s.ctx, s.coach, s.req.Input
	flow := func() tea.Msg {
		res, err := c.RunInitialFlow(ctx, in)
		return flowMsg{Result: res, Err: err}
	}
	if s.req.Prefetched {
		return tea.Batch(flow, poll())
	}
	return tea.Batch(flow, s.explain())
}

func (s *Screen) explain() tea.Cmd {
	ctx, c, t := s.ctx, s.coach, s.topic()
	return func() tea.Msg {
		return explanationMsg{Result: c.Explain(ctx, t)}
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (s *Screen) Title() string {
	return "Your Plan"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.initial != nil && s.daily == nil {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "Finish day 1"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Home"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case flowMsg:
		s.running = false
		s.initial, s.err = msg.Result, msg.Err
		return s, nil

	case explanationMsg:
		s.explained = true
		s.explanation = msg.Result.Value
		s.explainFell = msg.Result.Fallback
		s.renderedWidth = 0
		return s, nil

	case pollMsg:
		if s.explained {
			return s, nil
		}
		if p, ok := s.coach.Lessons().Consume(); ok && p.Topic.Topic == s.req.Input.Goal {
			return s.Update(explanationMsg{Result: p.Result})
		}
		s.polls++
		if s.polls >= maxPolls {
			return s, s.explain()
		}
		return s, poll()

	case dailyMsg:
		s.running = false
		s.daily, s.err = msg.Result, msg.Err
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.scroll = max(s.scroll-1, 0)
		case "down", "j":
			s.scroll++
		case "pgdown", "space":
			s.scroll += 10
		case "pgup":
			s.scroll = max(s.scroll-10, 0)
		case "n":
			return s, s.finishDay()
		case "enter":
			return s, router.GoHome
		}
	}
	return s, nil
}

// finishDay reports day 1 as fully done at the simulated quiz score and
// plans day 2.
func (s *Screen) finishDay() tea.Cmd {
	if s.initial == nil || s.daily != nil || s.running {
		return nil
	}
	s.running = true
	score := SimulatedQuizScore
	report := progress.DayReport{
		Day:            s.initial.Plan.Day,
		CompletedTasks: len(s.initial.Plan.Tasks),
		QuizScore:      &score,
		Difficulty:     progress.DefaultDifficulty,
	}
	ctx, c := s.ctx, s.coach
	return func() tea.Msg {
		res, err := c.RunDailyCycle(ctx, report)
		return dailyMsg{Result: res, Err: err}
	}
}

func (s *Screen) View(width, height int) string {
	lines := strings.Split(s.render(min(width-4, 100)), "\n")
	maxScroll := max(len(lines)-height, 0)
	s.scroll = min(s.scroll, maxScroll)
	end := min(s.scroll+height, len(lines))
	return strings.Join(lines[s.scroll:end], "\n")
}
