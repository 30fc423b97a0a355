// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers and conversational
// preambles from JSON responses.
func CleanJSONBlock(text string) string {
	text = stripFence(strings.TrimSpace(text))
	if text == "" {
		return text
	}

	switch text[0] {
	case '{':
		if obj := extractJSONObject(text); obj != "" {
			return obj
		}
	case '[':
		if arr := extractJSONArray(text); arr != "" {
			return arr
		}
	}

	// Preamble before the payload: take whichever structure starts first.
	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	if arrIdx >= 0 && (objIdx < 0 || arrIdx < objIdx) {
		if arr := extractJSONArray(text[arrIdx:]); arr != "" {
			return arr
		}
	}
	if objIdx >= 0 {
		if obj := extractJSONObject(text[objIdx:]); obj != "" {
			return obj
		}
	}
	return text
}

// CleanCodeBlock strips a surrounding ``` fence (with optional language tag)
// from a generated code fragment such as HTML.
func CleanCodeBlock(text string) string {
	return stripFence(strings.TrimSpace(text))
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip potential language identifier on first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.ContainsAny(firstLine, "{[<") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractJSONObject returns the balanced {...} prefix of s, or "".
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of s, or "".
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, closing byte) string {
	if s == "" || s[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
