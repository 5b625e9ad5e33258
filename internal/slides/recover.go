package slides

import (
	"encoding/json"
	"strings"
)

// ExtractJSON returns the first balanced JSON object embedded anywhere in a
// noisy text blob. Well-behaved output that already starts with "{" is parsed
// directly; otherwise the text is scanned with a brace-depth counter and each
// substring that returns the depth to zero is tried in order. The first
// candidate that parses wins. A stray "}" before any "{" has nothing to pop
// and is ignored, so unbalanced braces in preamble prose do not corrupt later
// matching.
func ExtractJSON(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &RecoveryError{Reason: "model output is empty"}
	}
	if strings.HasPrefix(trimmed, "{") {
		if obj, ok := tryParseObject(trimmed); ok {
			return obj, nil
		}
	}
	depth := 0
	start := -1
	for idx := 0; idx < len(text); idx++ {
		switch text[idx] {
		case '{':
			if start < 0 {
				start = idx
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				if obj, ok := tryParseObject(text[start : idx+1]); ok {
					return obj, nil
				}
				start = -1
			}
		}
	}
	return nil, &RecoveryError{Reason: "no balanced JSON object parses"}
}

func tryParseObject(candidate string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	return obj, true
}
