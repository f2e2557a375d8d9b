// Package screen defines what the console router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/layout"
)

// Screen is one page of the console demo.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the area between header and footer.
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
