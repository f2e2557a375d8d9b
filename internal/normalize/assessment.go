package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

type assessmentElementJSON struct {
	ID         json.RawMessage `json:"id"`
	Question   string          `json:"question"`
	Options    []string        `json:"options"`
	Correct    string          `json:"correct"`
	Difficulty any             `json:"difficulty"`
	TopicArea  any             `json:"topic_area"`
}

// Assessment normalizes raw model output into at most n placement
// questions using the same acceptance rule as Quiz. The fallback is a
// full static battery of n questions so the result can still be scored.
func Assessment(raw string, n int, topic string) Result[[]learning.AssessmentQuestion] {
	if n < 0 {
		n = 0
	}

	elems, err := parseArray(ExtractJSON(raw))
	if err != nil {
		return Degraded(FallbackAssessment(n, topic), ReasonUnparseable)
	}

	valid := make([]learning.AssessmentQuestion, 0, len(elems))
	for _, e := range elems {
		if q, ok := assessmentQuestion(e, topic); ok {
			valid = append(valid, q)
		}
	}

	if len(valid) < Threshold(n) {
		return Degraded(FallbackAssessment(n, topic), ReasonTooFewValid)
	}
	if len(valid) > n {
		valid = valid[:n]
	}
	return Ok(valid)
}

func assessmentQuestion(raw json.RawMessage, topic string) (learning.AssessmentQuestion, bool) {
	if assessmentElement.Validate(raw) != nil {
		return learning.AssessmentQuestion{}, false
	}

	var e assessmentElementJSON
	if err := json.Unmarshal(raw, &e); err != nil {
		return learning.AssessmentQuestion{}, false
	}
	if !learning.HasOption(e.Options, e.Correct) {
		return learning.AssessmentQuestion{}, false
	}

	diff, _ := e.Difficulty.(string)
	area, _ := e.TopicArea.(string)
	if area == "" {
		area = topic
	}

	return learning.AssessmentQuestion{
		ID:         idString(e.ID),
		Question:   e.Question,
		Options:    e.Options,
		Correct:    e.Correct,
		Difficulty: learning.ParseDifficulty(diff),
		TopicArea:  area,
	}, true
}

// FallbackAssessment returns a static battery of n questions: three easy,
// four medium, the rest hard. The first option is always correct.
func FallbackAssessment(n int, topic string) []learning.AssessmentQuestion {
	if n < 0 {
		n = 0
	}

	out := make([]learning.AssessmentQuestion, n)
	for i := range out {
		diff := learning.Hard
		switch {
		case i < 3:
			diff = learning.Easy
		case i < 7:
			diff = learning.Medium
		}
		opts := []string{"Option A", "Option B", "Option C", "Option D"}
		out[i] = learning.AssessmentQuestion{
			ID:         strconv.Itoa(i + 1),
			Question:   fmt.Sprintf("Sample question %d about %s (%s)", i+1, topic, diff),
			Options:    opts,
			Correct:    opts[0],
			Difficulty: diff,
			TopicArea:  "General",
			IsFallback: true,
		}
	}
	return out
}
