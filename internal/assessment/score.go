// Package assessment builds placement batteries and turns answers into a
// level classification.
package assessment

import (
	"fmt"
	"math"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// Level thresholds on the weighted score, checked in order.
const (
	AdvancedThreshold     = 80
	IntermediateThreshold = 50

	AdvancedStartDay     = 15
	IntermediateStartDay = 8
	BeginnerStartDay     = 1
)

// Answers maps question id to the chosen option text. Unanswered questions
// are absent.
type Answers map[string]string

type tally struct {
	correct, total int
}

func (t tally) ratio() float64 {
	return float64(t.correct) / float64(t.total)
}

func (t tally) pct() int {
	if t.total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(t.correct) / float64(t.total)))
}

// Score classifies answers against a difficulty-tagged battery. Correctness
// is exact string equality. An empty battery scores 0 and is beginner.
func Score(answers Answers, questions []learning.AssessmentQuestion) learning.LevelResult {
	var earned, possible int
	bands := map[learning.Difficulty]*tally{}
	for _, d := range learning.Bands {
		bands[d] = &tally{}
	}

	var areas []string
	byArea := map[string]map[learning.Difficulty]*tally{}

	for _, q := range questions {
		d := learning.ParseDifficulty(string(q.Difficulty))
		w := d.Weight()
		ans, answered := answers[q.ID]
		ok := answered && ans == q.Correct

		possible += w
		bands[d].total++
		if ok {
			earned += w
			bands[d].correct++
		}

		area := q.TopicArea
		if area == "" {
			area = "general"
		}
		if _, seen := byArea[area]; !seen {
			areas = append(areas, area)
			byArea[area] = map[learning.Difficulty]*tally{}
		}
		t := byArea[area][d]
		if t == nil {
			t = &tally{}
			byArea[area][d] = t
		}
		t.total++
		if ok {
			t.correct++
		}
	}

	score := 0
	if possible > 0 {
		score = int(math.Round(100 * float64(earned) / float64(possible)))
	}

	level, start := Classify(score)

	strengths, weaknesses := []string{}, []string{}
	for _, area := range areas {
		b := byArea[area]
		if isStrength(b) {
			strengths = append(strengths, area)
		}
		if isWeakness(b) {
			weaknesses = append(weaknesses, area)
		}
	}

	return learning.LevelResult{
		Score: score,
		Bands: learning.BandScores{
			Easy:   bands[learning.Easy].pct(),
			Medium: bands[learning.Medium].pct(),
			Hard:   bands[learning.Hard].pct(),
		},
		Level:               level,
		RecommendedStartDay: start,
		Strengths:           strengths,
		Weaknesses:          weaknesses,
		Summary:             fmt.Sprintf("You are at the %s level (score %d/100). Recommended start: day %d.", level.Label(), score, start),
	}
}

// Classify maps a 0-100 score to a level and recommended start day. There
// is no minimum battery size.
func Classify(score int) (learning.Level, int) {
	switch {
	case score >= AdvancedThreshold:
		return learning.Advanced, AdvancedStartDay
	case score >= IntermediateThreshold:
		return learning.Intermediate, IntermediateStartDay
	default:
		return learning.Beginner, BeginnerStartDay
	}
}

func isStrength(b map[learning.Difficulty]*tally) bool {
	if t := b[learning.Hard]; t != nil && t.ratio() > 0.6 {
		return true
	}
	if t := b[learning.Medium]; t != nil && t.ratio() > 0.8 {
		return true
	}
	return false
}

func isWeakness(b map[learning.Difficulty]*tally) bool {
	if t := b[learning.Easy]; t != nil && t.ratio() < 0.5 {
		return true
	}
	if t := b[learning.Hard]; t != nil && t.ratio() < 0.3 {
		return true
	}
	return false
}
