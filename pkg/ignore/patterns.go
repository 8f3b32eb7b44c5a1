package ignore

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// parsePatternLine turns one ignore-file line into a Pattern.
// It returns nil for blank lines and comments.
func parsePatternLine(line string) *Pattern {
	rule := strings.TrimRight(line, "\r")
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	body := strings.TrimPrefix(trimmed, "!")
	dirOnly := strings.HasSuffix(strings.TrimRight(body, " "), "/")
	if strings.Trim(body, "/ ") == "" {
		return nil
	}

	return &Pattern{
		Pattern: gitignore.ParsePattern(normalizeClasses(trimmed), nil),
		Negate:  strings.HasPrefix(trimmed, "!"),
		DirOnly: dirOnly,
		Line:    line,
	}
}

// normalizeClasses rewrites bracket expressions into the filepath.Match
// dialect: "[!...]" negates with '^', a ']' right after the opening bracket
// is literal, and an unterminated '[' matches itself.
func normalizeClasses(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '\\' && i+1 < len(glob):
			b.WriteString(glob[i : i+2])
			i++
		case c == '[':
			end := classEnd(glob, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteByte('[')
			body := glob[i+1 : end]
			if strings.HasPrefix(body, "!") || strings.HasPrefix(body, "^") {
				b.WriteByte('^')
				body = body[1:]
			}
			if strings.HasPrefix(body, "]") {
				b.WriteString(`\]`)
				body = body[1:]
			}
			b.WriteString(body)
			b.WriteByte(']')
			i = end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// classEnd returns the index of the ']' closing the class opened at start,
// or -1 if the class is unterminated.
func classEnd(glob string, start int) int {
	i := start + 1
	if i < len(glob) && (glob[i] == '!' || glob[i] == '^') {
		i++
	}
	if i < len(glob) && glob[i] == ']' {
		i++
	}
	for ; i < len(glob); i++ {
		if glob[i] == '\\' {
			i++
			continue
		}
		if glob[i] == ']' {
			return i
		}
	}
	return -1
}
