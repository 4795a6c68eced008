package ai

import "strings"

// StripJSONFences removes a markdown code fence wrapped around a JSON
// response. Some models fence their output even when asked not to.
func StripJSONFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
