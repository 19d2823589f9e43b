package calcline

import "strings"

// Associativity is the grouping direction of a binary operator.
type Associativity int8

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// Spacing describes how the formatter renders an operator.
type Spacing int8

const (
	// BinarySpaced operators are rendered with exactly one space on each side.
	BinarySpaced Spacing = iota
	// Tight operators are rendered with no surrounding space. Unary + and -
	// are tight.
	Tight
)

// Operator describes an operator token. The same table drives the parser's
// precedence and the formatter's spacing.
type Operator struct {
	Token         string
	Arity         int
	Precedence    int
	Associativity Associativity
	Spacing       Spacing
}

// Operators lists the binary operators, longest tokens first. + and - are
// additionally unary depending on context; see UnaryOperators.
var Operators = []Operator{
	{Token: "**", Arity: 2, Precedence: 3, Associativity: RightAssoc, Spacing: BinarySpaced},
	{Token: "*", Arity: 2, Precedence: 2, Associativity: LeftAssoc, Spacing: BinarySpaced},
	{Token: "/", Arity: 2, Precedence: 2, Associativity: LeftAssoc, Spacing: BinarySpaced},
	{Token: "%", Arity: 2, Precedence: 2, Associativity: LeftAssoc, Spacing: BinarySpaced},
	{Token: "+", Arity: 2, Precedence: 1, Associativity: LeftAssoc, Spacing: BinarySpaced},
	{Token: "-", Arity: 2, Precedence: 1, Associativity: LeftAssoc, Spacing: BinarySpaced},
}

// UnaryOperators lists the prefix operators.
var UnaryOperators = []Operator{
	{Token: "+", Arity: 1, Precedence: 4, Associativity: RightAssoc, Spacing: Tight},
	{Token: "-", Arity: 1, Precedence: 4, Associativity: RightAssoc, Spacing: Tight},
}

// operatorRunes contains every rune that begins an operator token.
const operatorRunes = "+-*/%"

// LookupOperator returns the binary operator descriptor for a token.
func LookupOperator(token string) (Operator, bool) {
	for _, op := range Operators {
		if op.Token == token {
			return op, true
		}
	}
	return Operator{}, false
}

// IsOperator reports whether token is a binary operator token.
func IsOperator(token string) bool {
	_, ok := LookupOperator(token)
	return ok
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune(operatorRunes, r)
}

// operatorAt returns the operator token starting at s[i], matching ** before
// *, or the empty string if there is none.
func operatorAt(s []rune, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	if s[i] == '*' && i+1 < len(s) && s[i+1] == '*' {
		return "**"
	}
	if isOperatorRune(s[i]) {
		return string(s[i])
	}
	return ""
}

// operatorEndingAt returns the operator token whose last rune is s[i],
// matching ** before *, or the empty string if there is none.
func operatorEndingAt(s []rune, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	if s[i] == '*' && i > 0 && s[i-1] == '*' {
		return "**"
	}
	if isOperatorRune(s[i]) {
		return string(s[i])
	}
	return ""
}
