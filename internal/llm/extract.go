package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON returns the first balanced JSON object or array inside raw.
// Models that ignore structured output directives often wrap their JSON
// answer in prose ("Here is the quiz: {...}"); this recovers the payload.
// The scan respects string literals and escapes, so braces inside values
// do not end the value early.
func ExtractJSON(raw []byte) (json.RawMessage, error) {
	s := string(raw)
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return nil, fmt.Errorf("no JSON object or array found")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			if inString {
				escaped = true
			}
		case c == '"':
			inString = !inString
		case inString:
			// Structural characters inside strings are data.
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
			if depth == 0 {
				return json.RawMessage(s[start : i+1]), nil
			}
		}
	}

	return nil, fmt.Errorf("unbalanced JSON starting at byte %d", start)
}
