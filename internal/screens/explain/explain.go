// Package explain asks the lesson service about a single topic.
package explain

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/lessons"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screen"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/components"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/layout"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/theme"
)

// DefaultTopic is explained when the input is left empty.
const DefaultTopic = "Python değişkenler"

type explainedMsg struct {
	topic  string
	result normalize.Result[string]
}

// Screen is a topic prompt followed by the rendered explanation.
type Screen struct {
	ctx   context.Context
	coach *coach.Coach
	input components.TextInput

	topic   string
	result  *normalize.Result[string]
	waiting bool
	scroll  int

	rendered      string
	renderedWidth int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the prompt.
func New(ctx context.Context, c *coach.Coach) *Screen {
	return &Screen{ctx: ctx, coach: c, input: components.NewTextInput(DefaultTopic, false, 120)}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *Screen) Title() string {
	return "Explain a Topic"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Enter", Description: "Ask again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Explain"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		s.waiting = false
		s.topic = msg.topic
		s.result = &msg.result
		s.scroll = 0
		s.renderedWidth = 0
		return s, nil

	case tea.KeyPressMsg:
		if s.waiting {
			return s, nil
		}
		if s.result != nil {
			switch msg.String() {
			case "up", "k":
				s.scroll = max(s.scroll-1, 0)
			case "down", "j":
				s.scroll++
			case "enter":
				s.result = nil
				s.input.Model.SetValue("")
				return s, s.input.Focus()
			}
			return s, nil
		}
		if msg.String() == "enter" {
			return s, s.ask()
		}
	}

	if s.result != nil || s.waiting {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) ask() tea.Cmd {
	topic := s.input.Value()
	if topic == "" {
		topic = DefaultTopic
	}
	s.waiting = true
	s.input.Blur()
	ctx, c := s.ctx, s.coach
	return func() tea.Msg {
		res := c.Explain(ctx, lessons.Topic{Topic: topic, Level: learning.Beginner})
		return explainedMsg{topic: topic, result: res}
	}
}

func (s *Screen) View(width, height int) string {
	cw := min(width-4, 100)
	switch {
	case s.waiting:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Explaining ..."))
	case s.result == nil:
		body := theme.Title.Render("Which topic should the coach explain?") + "\n\n" +
			s.input.View() + "\n\n" +
			theme.Hint.Render("For example 'Python listeler' or 'CSS flexbox'")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Width(cw).Render(body))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.topic) + "\n\n")
	if s.result.Fallback {
		b.WriteString(theme.Banner.Render("AI service unavailable ("+s.result.Reason+"): placeholder lesson.") + "\n")
	}
	if s.renderedWidth != cw {
		s.rendered, s.renderedWidth = components.Markdown(s.result.Value, cw), cw
	}
	b.WriteString(s.rendered)

	lines := strings.Split(b.String(), "\n")
	s.scroll = min(s.scroll, max(len(lines)-height, 0))
	return strings.Join(lines[s.scroll:min(s.scroll+height, len(lines))], "\n")
}
