package summary

import (
	"time"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
)

// flowMsg is sent when the initial flow finishes.
type flowMsg struct {
	Result *coach.InitialResult
	Err    error
}

// explanationMsg carries the lesson explanation.
type explanationMsg struct {
	Result normalize.Result[string]
}

// pollMsg checks the prefetch slot again.
type pollMsg time.Time

// dailyMsg is sent when the simulated day-end cycle finishes.
type dailyMsg struct {
	Result *coach.DailyResult
	Err    error
}
