package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseResult decodes the model's response into a Result. Models asked
// for bare JSON still sometimes wrap it in markdown fences or prose, so
// after a direct parse fails the raw text is scanned for its outermost
// JSON object.
func ParseResult(raw string) (*Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err == nil {
		return &result, nil
	}

	stripped := stripFences(raw)
	if err := json.Unmarshal([]byte(stripped), &result); err == nil {
		return &result, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err == nil {
			return &result, nil
		}
	}

	return nil, fmt.Errorf("no parseable JSON in model response (%d bytes)", len(raw))
}

// stripFences removes a surrounding ```json ... ``` block, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
