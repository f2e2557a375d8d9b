package normalize

import (
	"encoding/json"
	"strings"
)

const fence = "```"

// ExtractJSON returns the body of the first fenced code block in text, or
// the trimmed text when it has no fence. A "json" language tag on the
// opening fence is dropped.
func ExtractJSON(text string) string {
	start := strings.Index(text, fence)
	if start < 0 {
		return strings.TrimSpace(text)
	}

	body := text[start+len(fence):]
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
	}
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// parseArray decodes text as a JSON array, keeping elements raw.
func parseArray(text string) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// Threshold is the minimum number of valid items needed out of n requested.
func Threshold(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 1) / 2
}

// idString renders a JSON string or number identifier as text.
func idString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
