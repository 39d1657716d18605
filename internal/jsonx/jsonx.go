// Package jsonx extracts JSON values from LLM output that may be wrapped in
// markdown fences or surrounded by commentary.
package jsonx

import (
	"encoding/json"
	"strings"
)

// Kind selects the top-level JSON value shape to look for.
type Kind int

const (
	// Object looks for a {...} value.
	Object Kind = iota
	// Array looks for a [...] value.
	Array
)

// StripFence removes a leading markdown code fence (``` or ```json) and a
// trailing ``` from s. Text without fences is returned trimmed but otherwise
// unchanged.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" up to the first newline.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if first == "" || isLangTag(first) {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isLangTag(s string) bool {
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlpha {
			return false
		}
	}
	return true
}

// FirstValue returns the first valid balanced JSON value of the given kind
// in s, skipping any leading commentary. The scan is string-aware: brackets
// inside quoted strings (including escaped quotes) do not affect nesting
// depth. A balanced candidate that is not valid JSON (a quoted brace in the
// commentary can produce one) is discarded and the scan resumes after it.
// Returns false if no valid value is found.
func FirstValue(s string, kind Kind) (string, bool) {
	opener, closer := byte('{'), byte('}')
	if kind == Array {
		opener, closer = '[', ']'
	}

	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case opener:
			if start < 0 {
				start = i
			}
			depth++
		case closer:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				start = -1
			}
		}
	}

	return "", false
}
