package council

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first bracket-delimited JSON object out of a raw
// model reply and unmarshals it into dest. Markdown code fences are
// stripped first. Returns false when no parsable object is found; callers
// then fall back to treating the whole reply as freeform thesis text.
func ExtractJSON(text string, dest interface{}) bool {
	clean := strings.TrimSpace(text)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end <= start {
		return false
	}

	return json.Unmarshal([]byte(clean[start:end+1]), dest) == nil
}
