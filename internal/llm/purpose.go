package llm

import "context"

// Purposes label requests in the event log, the logs and the metrics.
const (
	PurposeAssessment    = "assessment"
	PurposeCurriculum    = "curriculum"
	PurposeQuiz          = "quiz"
	PurposeLesson        = "lesson"
	PurposeExplainAnswer = "explain-answer"
	PurposeInsights      = "insights"

	purposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose labels every request made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return purposeUnknown
}
