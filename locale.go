package calcline

import (
	"strings"
	"unicode"
)

// GroupSeparator is the rune inserted between blocks of three integer digits.
const GroupSeparator = '\u00a0'

// DecimalSeparator is the fractional separator used in displayed text.
const DecimalSeparator = ','

// canonicalSeparator is the fractional separator understood by the decimal
// parser.
const canonicalSeparator = '.'

// isSpace reports whether r is whitespace for formatting purposes. This
// includes the group separator.
func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// lastNonSpace returns the index of the last non-whitespace rune in s at or
// before from, or -1 if there is none.
func lastNonSpace(s []rune, from int) int {
	if from >= len(s) {
		from = len(s) - 1
	}
	for i := from; i >= 0; i-- {
		if !isSpace(s[i]) {
			return i
		}
	}
	return -1
}

// normalizeNumeric removes all whitespace, including group separators, and
// replaces the display decimal separator with the canonical one.
func normalizeNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case isSpace(r):
			return -1
		case r == DecimalSeparator:
			return canonicalSeparator
		default:
			return r
		}
	}, s)
}

// groupDigits inserts GroupSeparator between every block of three digits,
// counting from the right. digits must not contain a sign.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3*2)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteRune(GroupSeparator)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
