package ai

import (
	"encoding/json"
	"strings"
)

// ParseError reports model text that could not be coerced into the expected
// JSON shape even after repair. Raw carries the full model output so the
// failure can be surfaced to callers for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "no parsable JSON object in model response"
}

// ExtractJSON coerces free-form model text into target. It first tries the
// whole text (minus markdown fences), then falls back to the last balanced
// brace-delimited region of the text. Model output usually contains a clean
// JSON object but is sometimes preceded by commentary; the fallback is a
// best-effort heuristic, not a full JSON-in-text grammar (braces inside
// string values can defeat the balance scan).
func ExtractJSON(raw string, target any) error {
	clean := stripFences(raw)
	if json.Unmarshal([]byte(clean), target) == nil {
		return nil
	}
	if tail := trailingObject(clean); tail != "" {
		if json.Unmarshal([]byte(tail), target) == nil {
			return nil
		}
	}
	return &ParseError{Raw: raw}
}

// stripFences removes markdown code block markers (e.g. ```json ... ```).
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// trailingObject returns the last balanced {...} region ending at the last
// closing brace of s, or "" when no such region exists.
func trailingObject(s string) string {
	end := strings.LastIndex(s, "}")
	if end == -1 {
		return ""
	}
	depth := 0
	for i := end; i >= 0; i-- {
		switch s[i] {
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				return s[i : end+1]
			}
		}
	}
	return ""
}
