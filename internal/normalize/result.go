// Package normalize coerces untrusted generative output into validated
// quiz, assessment and curriculum structures, or into deterministic
// placeholder content when the output cannot be used.
package normalize

// Fallback reasons.
const (
	ReasonNotConfigured = "ai service not configured"
	ReasonProviderError = "ai service request failed"
	ReasonUnparseable   = "response is not valid JSON"
	ReasonTooFewValid   = "too few valid items"
	ReasonEmpty         = "response contained no daily lessons"
	ReasonTooLarge      = "response exceeds size ceiling"
	ReasonTooShort      = "response too short"
)

// Result carries either a validated value or a placeholder together with
// the reason it was substituted. Callers must check Fallback before
// presenting Value as generated content.
type Result[T any] struct {
	Value    T
	Fallback bool
	Reason   string
}

// Ok wraps a validated value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Degraded wraps placeholder content substituted for reason.
func Degraded[T any](v T, reason string) Result[T] {
	return Result[T]{Value: v, Fallback: true, Reason: reason}
}

// IsFallback reports whether Value is placeholder content.
func (r Result[T]) IsFallback() bool {
	return r.Fallback
}
