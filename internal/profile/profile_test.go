package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectDomain(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Learn Python for data science", DomainPython},
		{"Build a web site with HTML", DomainWeb},
		{"Modern JavaScript", DomainWeb},
		{"Veri analizi", DomainData},
		{"pandas basics", DomainData},
		{"Improve my English", DomainEnglish},
		{"ingilizce konuşma", DomainEnglish},
		{"Learn Rust", DomainGeneral},
		{"", DomainGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectDomain(tt.text), tt.text)
	}
}

func TestAnalyze_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := Analyze(Input{Goal: "  Learn Python  "}, now)

	assert.Equal(t, "Learn Python", p.Goal)
	assert.Equal(t, DefaultLevel, p.Level)
	assert.Equal(t, DefaultDailyHours, p.DailyHours)
	assert.Equal(t, DefaultStyle, p.Style)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, DomainPython, p.Domain)
}

func TestAnalyze_KeepsGivenValues(t *testing.T) {
	created := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	p := Analyze(Input{
		Goal:       "CSS layouts",
		Level:      "beginner",
		DailyHours: 2.5,
		Style:      "visual",
		CreatedAt:  created,
	}, time.Now())

	assert.Equal(t, "beginner", p.Level)
	assert.Equal(t, 2.5, p.DailyHours)
	assert.Equal(t, "visual", p.Style)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, DomainWeb, p.Domain)
}
