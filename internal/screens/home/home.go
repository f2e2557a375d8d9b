// Package home is the console demo's start screen.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/router"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screen"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/explain"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/profileform"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/summary"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/components"
)

// Status describes which external services are configured.
type Status struct {
	AIConfigured     bool
	AIModel          string
	SearchConfigured bool
	DataDir          string
}

// Screen offers the quick demo, profile creation and topic explanations.
type Screen struct {
	menu   components.Menu
	status Status
}

var _ screen.Screen = (*Screen)(nil)

// New creates the home screen.
func New(ctx context.Context, c *coach.Coach, status Status) *Screen {
	items := []components.MenuItem{
		{
			Label: "Quick demo",
			Help:  "Run the first day with a ready-made Python profile.",
			Action: func() tea.Cmd {
				return router.Push(summary.New(ctx, c, summary.Request{Input: coach.DemoInput()}))
			},
		},
		{
			Label: "Create my profile",
			Help:  "Enter your goal, take a placement assessment and get a plan.",
			Action: func() tea.Cmd {
				return router.Push(profileform.New(ctx, c))
			},
		},
		{
			Label: "Explain a topic",
			Help:  "Ask for a lesson explanation of any topic.",
			Action: func() tea.Cmd {
				return router.Push(explain.New(ctx, c))
			},
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
	return &Screen{menu: components.NewMenu(items), status: status}
}

func (h *Screen) Init() tea.Cmd {
	return nil
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	compact := height < 24 || width < 80
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact), renderStatus(h.status, cw)}
	if !h.status.AIConfigured {
		sections = append(sections, renderAIBanner(cw))
	}
	sections = append(sections, h.menu.View())

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *Screen) Title() string {
	return "Home"
}
