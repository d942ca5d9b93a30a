package vlm

import "strings"

// ExtractObject pulls the first balanced JSON object out of a model response.
// Models often wrap JSON in markdown fences or prose; this scans from the
// first '{' and returns the balanced slice, or "" if none is found.
func ExtractObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// ExtractArray pulls the first balanced JSON array out of a model response.
func ExtractArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	// Unbalanced
	return ""
}
