package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/theme"
)

const titleArt = ` ╔═╗╔═╗╔═╗╔═╗╦ ╦
 ║  ║ ║╠═╣║  ╠═╣
 ╚═╝╚═╝╩ ╩╚═╝╩ ╩`

// contentWidth is the shared width of every home section.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

func renderTitle(cw int, compact bool) string {
	text := titleArt
	if compact {
		text = "C · O · A · C · H"
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(text) + "\n" + theme.Subtitle.Render("AI-powered personal learning coach"))
}

// renderStatus lists which external services are live.
func renderStatus(s Status, cw int) string {
	lines := []string{
		statusLine("Generative AI", s.AIConfigured, s.AIModel, "placeholder content"),
		statusLine("Web search", s.SearchConfigured, "Google Custom Search", "canned results"),
	}
	if s.DataDir != "" {
		lines = append(lines, theme.Hint.Render("data: "+s.DataDir))
	}
	return theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
}

func statusLine(name string, ok bool, live, off string) string {
	label := theme.Label.Render(name + ": ")
	if ok {
		return label + theme.Good.Render("✓ "+live)
	}
	return label + lipgloss.NewStyle().Foreground(theme.Warning).Render("⚠ "+off)
}

// renderAIBanner tells the user how to get real content.
func renderAIBanner(cw int) string {
	return theme.Banner.Width(cw).Render("Add GEMINI_API_KEY (or another provider key) to .env for generated content.")
}

func renderFrame(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
