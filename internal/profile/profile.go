// Package profile turns the learner's stated goal and preferences into a
// profile with a detected subject domain.
package profile

import (
	"strings"
	"time"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// Domains detected from the goal text.
const (
	DomainPython  = "python"
	DomainWeb     = "web"
	DomainData    = "data"
	DomainEnglish = "english"
	DomainGeneral = "general"
)

// Profile defaults.
const (
	DefaultLevel      = "unknown"
	DefaultDailyHours = 1.0
	DefaultStyle      = "balanced"
)

// domainKeywords is checked in order; the first domain with a matching
// keyword wins.
var domainKeywords = []struct {
	domain   string
	keywords []string
}{
	{DomainPython, []string{"python"}},
	{DomainWeb, []string{"web", "html", "css", "js", "javascript"}},
	{DomainData, []string{"data", "veri", "analiz", "pandas"}},
	{DomainEnglish, []string{"english", "ingilizce"}},
}

// Input is the raw profile form.
type Input struct {
	Goal       string    `json:"goal" yaml:"goal"`
	Level      string    `json:"current_level" yaml:"current_level"`
	DailyHours float64   `json:"daily_available_time" yaml:"daily_available_time"`
	Style      string    `json:"preferred_learning_style" yaml:"preferred_learning_style"`
	CreatedAt  time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

// DetectDomain maps free text to a subject domain by keyword.
func DetectDomain(text string) string {
	t := strings.ToLower(text)
	for _, d := range domainKeywords {
		for _, k := range d.keywords {
			if strings.Contains(t, k) {
				return d.domain
			}
		}
	}
	return DomainGeneral
}

// Analyze fills defaults and detects the domain. now supplies CreatedAt when
// the input has none.
func Analyze(in Input, now time.Time) learning.Profile {
	p := learning.Profile{
		Goal:       strings.TrimSpace(in.Goal),
		Level:      strings.TrimSpace(in.Level),
		DailyHours: in.DailyHours,
		Style:      strings.TrimSpace(in.Style),
		CreatedAt:  in.CreatedAt,
	}
	if p.Level == "" {
		p.Level = DefaultLevel
	}
	if p.DailyHours <= 0 {
		p.DailyHours = DefaultDailyHours
	}
	if p.Style == "" {
		p.Style = DefaultStyle
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now.UTC()
	}
	p.Domain = DetectDomain(p.Goal)
	return p
}
