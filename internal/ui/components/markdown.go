package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders md for a terminal of the given width. The raw text is
// returned when rendering fails.
func Markdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
