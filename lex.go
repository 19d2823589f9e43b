package calcline

import (
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal literal, possibly with a folded leading -.
	tokenNum
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// sanitize prepares display text for the strict lexer: all whitespace,
// including group separators, is removed and the decimal separator is
// replaced with a period.
func sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == DecimalSeparator:
			return canonicalSeparator
		}
		return r
	}, text)
}

type lexer struct {
	src  []rune
	i    int
	p    lexToken
	prev tokenKind
}

func lex(src string) *lexer {
	return &lexer{src: []rune(src)}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calcline: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calcline: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// next scans the next token from the input. Once the input is exhausted, next
// returns EOF tokens indefinitely. Positions are 1-based rune columns of the
// sanitized input.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	tok := lexToken{pos: l.i + 1}
	if l.i >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	r := l.src[l.i]
	switch {
	case isDigit(r), r == canonicalSeparator:
		return l.scanNum(tok, l.i)
	case r == '-' && l.signFolds():
		return l.scanNum(tok, l.i+1)
	case r == '(':
		tok.kind, tok.text = tokenOpen, "("
		l.i++
	case r == ')':
		tok.kind, tok.text = tokenClose, ")"
		l.i++
	default:
		op := operatorAt(l.src, l.i)
		if op == "" {
			return tok, &LexError{Text: string(r), Col: tok.pos}
		}
		tok.kind, tok.text = tokenOp, op
		l.i += len(op)
	}
	l.prev = tok.kind
	return tok, nil
}

// signFolds reports whether a - at the current position begins a negative
// literal: it must be followed by a digit and be either the first token or
// follow an operator or open parenthesis.
func (l *lexer) signFolds() bool {
	if l.i+1 >= len(l.src) || !isDigit(l.src[l.i+1]) {
		return false
	}
	switch l.prev {
	case tokenNone, tokenOp, tokenOpen:
		return true
	}
	return false
}

// scanNum scans a decimal literal whose digits begin at from. The literal may
// omit either its integer or its fractional digits, but not both.
func (l *lexer) scanNum(tok lexToken, from int) (lexToken, error) {
	j := from
	var dig, dot bool
	for ; j < len(l.src); j++ {
		r := l.src[j]
		if isDigit(r) {
			dig = true
			continue
		}
		if r != canonicalSeparator {
			break
		}
		if dot {
			return tok, &LexError{Text: string(l.src[l.i : j+1]), Kind: "number", Col: tok.pos}
		}
		dot = true
	}
	if !dig {
		return tok, &LexError{Text: string(l.src[l.i:j]), Kind: "number", Col: tok.pos}
	}
	tok.kind = tokenNum
	tok.text = string(l.src[l.i:j])
	l.i = j
	l.prev = tokenNum
	return tok, nil
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, including the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string if the rune cannot begin any token.
	Kind string
	// Col is the 1-based column of the start of the token in the input with
	// whitespace removed.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}
