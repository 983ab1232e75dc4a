package engine

import (
	"regexp"
	"strings"
)

// ConvertPattern translates a SQL-style wildcard pattern into an anchored
// regular expression.
//
// Token translation:
//
//	%      zero or more of any character
//	_      exactly one of any character
//	[abc]  one character from the set
//	[a-z]  one character from the range
//	[^..]  negated set or range
//	other  literal, with regexp metacharacters escaped
//
// An empty pattern yields "^$", matching only the empty string. The
// translation is total and pure: identical input always yields an
// identical expression. Case-insensitivity is applied by the caller when
// compiling, not encoded in the expression.
func ConvertPattern(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		case '[':
			end := findClassEnd(runes, i)
			if end < 0 {
				// Unterminated class: the bracket is a literal.
				b.WriteString(regexp.QuoteMeta("["))
				continue
			}
			writeClass(&b, runes[i+1:end])
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteByte('$')
	return b.String()
}

// findClassEnd locates the index of the ']' terminating a character
// class opened at start. Returns -1 when the class never closes or is
// empty ("[]" is not a class, it is two literals).
func findClassEnd(runes []rune, start int) int {
	content := start + 1
	// A leading '^' belongs to the class, not the content.
	if content < len(runes) && runes[content] == '^' {
		content++
	}
	for j := content; j < len(runes); j++ {
		if runes[j] == ']' {
			if j == content {
				return -1
			}
			return j
		}
	}
	return -1
}

// writeClass emits a regexp character class for the given set/range
// content, preserving a leading '^' negation and '-' ranges while
// escaping characters that are metacharacters inside a class.
func writeClass(b *strings.Builder, content []rune) {
	b.WriteByte('[')
	for i, r := range content {
		switch r {
		case '^':
			if i == 0 {
				b.WriteByte('^')
			} else {
				b.WriteString(`\^`)
			}
		case '\\':
			b.WriteString(`\\`)
		case ']':
			b.WriteString(`\]`)
		case '[':
			b.WriteString(`\[`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(']')
}

// compilePattern compiles a wildcard pattern for case-insensitive
// matching.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + ConvertPattern(pattern))
}
