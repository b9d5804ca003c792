package hint

import "strings"

// Low-level text scanning shared by the hint file parser. All helpers
// respect string and character literals; the split helpers additionally
// respect bracket nesting.

// stripComments removes // and /* */ comments while preserving every
// newline, so line numbers stay stable.
func stripComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))
	inString, inChar, inLine, inBlock := false, false, false, false
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case inLine:
			if ch == '\n' {
				inLine = false
				out.WriteByte(ch)
			}
		case inBlock:
			if ch == '\n' {
				out.WriteByte(ch)
			} else if ch == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlock = false
				i++
			}
		case inString:
			out.WriteByte(ch)
			if ch == '\\' && i+1 < len(src) {
				out.WriteByte(src[i+1])
				i++
			} else if ch == '"' {
				inString = false
			}
		case inChar:
			out.WriteByte(ch)
			if ch == '\\' && i+1 < len(src) {
				out.WriteByte(src[i+1])
				i++
			} else if ch == '\'' {
				inChar = false
			}
		case ch == '/' && i+1 < len(src) && src[i+1] == '/':
			inLine = true
			i++
		case ch == '/' && i+1 < len(src) && src[i+1] == '*':
			inBlock = true
			i++
		case ch == '"':
			inString = true
			out.WriteByte(ch)
		case ch == '\'':
			inChar = true
			out.WriteByte(ch)
		default:
			out.WriteByte(ch)
		}
	}
	return out.String()
}

// topLevelIndex returns the first index of sep outside literals and
// brackets, or -1.
func topLevelIndex(s, sep string) int {
	inString, inChar := false, false
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inString:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				inString = false
			}
		case inChar:
			if ch == '\\' {
				i++
			} else if ch == '\'' {
				inChar = false
			}
		case ch == '"':
			inString = true
		case ch == '\'':
			inChar = true
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			depth--
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on every top-level occurrence of sep.
func splitTopLevel(s, sep string) []string {
	var parts []string
	for {
		idx := topLevelIndex(s, sep)
		if idx < 0 {
			parts = append(parts, s)
			return parts
		}
		parts = append(parts, s[:idx])
		s = s[idx+len(sep):]
	}
}
