package summary

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/components"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/ui/theme"
)

// render builds the whole summary; View scrolls over it.
func (s *Screen) render(width int) string {
	var b strings.Builder

	if s.req.Level != nil {
		b.WriteString(renderLevel(*s.req.Level))
		b.WriteString("\n\n")
	}

	switch {
	case s.err != nil:
		b.WriteString(theme.Bad.Render("Something went wrong: " + s.err.Error()))
		b.WriteString("\n\n")
	case s.initial == nil:
		b.WriteString(theme.Subtitle.Render("Building your curriculum ..."))
		b.WriteString("\n\n")
	default:
		p := s.initial.Profile
		b.WriteString(section("Profile"))
		fmt.Fprintf(&b, "%s  %s\n", theme.Label.Render("Goal"), p.Goal)
		fmt.Fprintf(&b, "%s  %s · %.1f h/day · %s\n\n",
			theme.Label.Render("Domain"), p.Domain, p.DailyHours, p.Style)

		if s.initial.Curriculum.Fallback {
			b.WriteString(theme.Banner.Render("AI service unavailable: this is a placeholder plan."))
			b.WriteString("\n\n")
		}
		b.WriteString(renderPlan(s.initial.Plan))
	}

	b.WriteString(section("Lesson"))
	if !s.explained {
		b.WriteString(theme.Subtitle.Render("Preparing the lesson explanation ..."))
	} else {
		if s.explainFell {
			b.WriteString(theme.Banner.Render("AI service unavailable: placeholder lesson."))
			b.WriteString("\n")
		}
		if s.renderedWidth != width {
			s.rendered, s.renderedWidth = components.Markdown(s.explanation, width), width
		}
		b.WriteString(s.rendered)
	}
	b.WriteString("\n\n")

	if s.daily != nil {
		b.WriteString(renderDaily(s.daily.Evaluation.DailyScore, s.daily.Evaluation.Level, s.daily.Evaluation.Suggestions))
		b.WriteString(renderPlan(s.daily.NextPlan))
	} else if s.running && s.initial != nil {
		b.WriteString(theme.Subtitle.Render("Evaluating day 1 ..."))
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func section(title string) string {
	return theme.Title.Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", 40)) + "\n"
}

func renderLevel(l learning.LevelResult) string {
	var b strings.Builder
	b.WriteString(section("Assessment"))
	fmt.Fprintf(&b, "%s  %s (%d%%)\n", theme.Label.Render("Your level"), capitalize(string(l.Level)), l.Score)
	fmt.Fprintf(&b, "%s  easy %d%% · medium %d%% · hard %d%%\n",
		theme.Label.Render("Bands"), l.Bands.Easy, l.Bands.Medium, l.Bands.Hard)
	fmt.Fprintf(&b, "%s  day %d\n", theme.Label.Render("Start at"), l.RecommendedStartDay)
	if len(l.Strengths) > 0 {
		b.WriteString(theme.Good.Render("Strengths: ") + strings.Join(l.Strengths, ", ") + "\n")
	}
	if len(l.Weaknesses) > 0 {
		b.WriteString(theme.Bad.Render("To work on: ") + strings.Join(l.Weaknesses, ", ") + "\n")
	}
	if l.Summary != "" {
		b.WriteString(theme.Hint.Render(l.Summary))
	}
	return b.String()
}

func renderPlan(p learning.DailyPlan) string {
	var b strings.Builder
	b.WriteString(section(fmt.Sprintf("Day %d: %s", p.Day, p.Theme)))
	for _, t := range p.Tasks {
		fmt.Fprintf(&b, "  • %s %s %s\n",
			theme.Body.Bold(true).Render(t.Task),
			theme.Hint.Render(fmt.Sprintf("[%s, %d min]", t.Type, t.DurationMin)),
			t.Description)
	}
	if p.Tip != "" {
		b.WriteString("\n" + theme.Label.Render("Tip  ") + p.Tip + "\n")
	}
	if len(p.Resources) > 0 {
		b.WriteString("\n" + theme.Label.Render("Resources") + "\n")
		for _, r := range p.Resources {
			fmt.Fprintf(&b, "  • %s %s\n    %s\n", r.Title, theme.Hint.Render("("+r.Type+")"), r.URL)
		}
	}
	b.WriteString("\n")
	return b.String()
}

func renderDaily(score int, level string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(section("Day 1 evaluation"))
	fmt.Fprintf(&b, "%s  %d (%s)\n", theme.Label.Render("Score"), score, strings.ReplaceAll(level, "_", " "))
	for _, s := range suggestions {
		b.WriteString("  • " + s + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
