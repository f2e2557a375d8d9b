// Package app is the root model of the interactive console demo.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/router"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screen"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/home"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/layout"
)

// Options configure the console demo.
type Options struct {
	Coach  *coach.Coach
	Status home.Status
}

// Model is the root Bubble Tea model: a router plus the frame.
type Model struct {
	router       *router.Router
	aiConfigured bool
	width        int
	height       int
}

// New creates the model with the home screen at the bottom of the stack.
func New(ctx context.Context, opts Options) Model {
	return Model{
		router:       router.New(home.New(ctx, opts.Coach, opts.Status)),
		aiConfigured: opts.Status.AIConfigured,
	}
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.aiConfigured, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m Model) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the console demo and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Coach == nil {
		return fmt.Errorf("console demo: coach is required")
	}
	p := tea.NewProgram(New(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run console demo: %w", err)
	}
	return nil
}
