package calcline

// TokenKind is the kind of a span found by the lenient scanner.
type TokenKind int8

const (
	NumberToken TokenKind = iota + 1
	OperatorToken
)

func (k TokenKind) String() string {
	switch k {
	case NumberToken:
		return "Number"
	case OperatorToken:
		return "Operator"
	default:
		return "TokenKind(?)"
	}
}

// Token is a half-open span [Start, End) of runes in a source string.
type Token struct {
	Kind  TokenKind
	Value string
	Start int
	End   int
}

// FindNumbers scans s for number-like spans: an optional leading -, a digit,
// any further digits or whitespace, and optionally the decimal separator
// followed by zero or more digits. Spans never overlap and FindNumbers never
// fails; text outside the spans is left to the caller. Offsets are in runes.
func FindNumbers(s string) []Token {
	return findNumbers([]rune(s))
}

func findNumbers(s []rune) []Token {
	var spans []Token
	for i := 0; i < len(s); {
		end := matchNumber(s, i)
		if end < 0 {
			i++
			continue
		}
		spans = append(spans, Token{Kind: NumberToken, Value: string(s[i:end]), Start: i, End: end})
		i = end
	}
	return spans
}

// matchNumber returns the end of the number span starting at s[i], or -1 if
// no span starts there.
func matchNumber(s []rune, i int) int {
	j := i
	if s[j] == '-' {
		j++
	}
	if j >= len(s) || !isDigit(s[j]) {
		return -1
	}
	j++
	for j < len(s) && (isDigit(s[j]) || isSpace(s[j])) {
		j++
	}
	if j < len(s) && s[j] == DecimalSeparator {
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}
	return j
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
