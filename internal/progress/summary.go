package progress

import (
	"math"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// Trends.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
)

// Summary condenses a performance history.
type Summary struct {
	TotalDays    int     `json:"total_days"`
	AverageScore float64 `json:"average_score"`
	BestScore    float64 `json:"best_score"`
	Trend        string  `json:"trend"`
}

// Summarize returns the summary of history, and false when it is empty.
// The trend is improving when the last score beats the first.
func Summarize(history []learning.PerformanceRecord) (Summary, bool) {
	if len(history) == 0 {
		return Summary{}, false
	}

	var sum float64
	best := history[0].Score
	for _, r := range history {
		sum += r.Score
		best = max(best, r.Score)
	}

	trend := TrendStable
	if len(history) > 1 && history[len(history)-1].Score > history[0].Score {
		trend = TrendImproving
	}

	return Summary{
		TotalDays:    len(history),
		AverageScore: math.Round(sum/float64(len(history))*100) / 100,
		BestScore:    best,
		Trend:        trend,
	}, true
}
