package llm

import "strings"

// modelAliases maps the short names accepted in configuration to model
// ids. Anything else is passed to the provider unchanged.
var modelAliases = map[string]string{
	"gemini-flash":      "gemini-2.5-flash",
	"gemini-flash-lite": "gemini-2.5-flash-lite",
	"gemini-pro":        "gemini-2.5-pro",
	"gpt-mini":          "gpt-4o-mini",
	"gpt":               "gpt-4o",
	"claude-haiku":      "claude-haiku-4-5-20251001",
	"claude-sonnet":     "claude-sonnet-4-5-20250929",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id
	}
	return strings.TrimSpace(name)
}
