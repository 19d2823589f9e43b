package calcline

import "testing"

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		err    *LexError
	}{
		// spaces
		{"", []lexToken{{kind: tokenEOF, pos: 1}}, nil},
		{" \t\u00a0 ", []lexToken{{kind: tokenEOF, pos: 1}}, nil},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 2}}, nil},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, nil},
		{"1\u00a0000", []lexToken{{text: "1000", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}, nil},
		{"1 0", []lexToken{{text: "10", kind: tokenNum, pos: 1}}, nil},
		{"1,5", []lexToken{{text: "1.5", kind: tokenNum, pos: 1}}, nil},
		{"1.5", []lexToken{{text: "1.5", kind: tokenNum, pos: 1}}, nil},
		{",5", []lexToken{{text: ".5", kind: tokenNum, pos: 1}}, nil},
		{"5,", []lexToken{{text: "5.", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 3}}, nil},
		{"1,2,3", nil, &LexError{Text: "1.2.", Kind: "number", Col: 1}},
		{",", nil, &LexError{Text: ".", Kind: "number", Col: 1}},
		// signs
		{"-1", []lexToken{{text: "-1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 3}}, nil},
		{"2-1", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "1", kind: tokenNum, pos: 3}}, nil},
		{"2 - 1", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "1", kind: tokenNum, pos: 3}}, nil},
		{"2*-1", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "-1", kind: tokenNum, pos: 3}}, nil},
		{"(-1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "-1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 4}}, nil},
		{"(1)-2", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}, {text: "-", kind: tokenOp, pos: 4}, {text: "2", kind: tokenNum, pos: 5}}, nil},
		{"-(1)", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, nil},
		{"--1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "-1", kind: tokenNum, pos: 2}}, nil},
		{"+1", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, nil},
		{"-,5", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: ".5", kind: tokenNum, pos: 2}}, nil},
		// operators
		{"2**3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "**", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 4}}, nil},
		{"***", []lexToken{{text: "**", kind: tokenOp, pos: 1}, {text: "*", kind: tokenOp, pos: 3}}, nil},
		{"7%2", []lexToken{{text: "7", kind: tokenNum, pos: 1}, {text: "%", kind: tokenOp, pos: 2}, {text: "2", kind: tokenNum, pos: 3}}, nil},
		{"/", []lexToken{{text: "/", kind: tokenOp, pos: 1}, {kind: tokenEOF, pos: 2}}, nil},
		// erroneous symbols
		{"$", nil, &LexError{Text: "$", Col: 1}},
		{"2x", []lexToken{{text: "2", kind: tokenNum, pos: 1}}, &LexError{Text: "x", Col: 2}},
		{"2 ^ 3", []lexToken{{text: "2", kind: tokenNum, pos: 1}}, &LexError{Text: "^", Col: 2}},
		{"[1]", nil, &LexError{Text: "[", Col: 1}},
	}
	for _, c := range cases {
		scan := lex(sanitize(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err != nil {
				t.Errorf("scanning %q: expected token %v but got error %v", c.src, want, err)
				break
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		if c.err == nil {
			continue
		}
		got, err := scan.next()
		lerr, ok := err.(*LexError)
		if !ok {
			t.Errorf("scanning %q: expected %v, got token %v with error %v", c.src, c.err, got, err)
			continue
		}
		if *lerr != *c.err {
			t.Errorf("scanning %q: want error %+v, got %+v", c.src, *c.err, *lerr)
		}
	}
}

func TestLexEOFRepeats(t *testing.T) {
	scan := lex("1")
	if _, err := scan.next(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		tok, err := scan.next()
		if err != nil || tok.kind != tokenEOF || tok.pos != 2 {
			t.Errorf("call %d: want EOF@2, got %v with %v", i, tok, err)
		}
	}
}

func TestLexPush(t *testing.T) {
	scan := lex("1+2")
	tok, _ := scan.next()
	scan.push(tok)
	if got := scan.must(); got != tok {
		t.Errorf("must: want %v, got %v", tok, got)
	}
	scan.push(tok)
	if got, err := scan.next(); got != tok || err != nil {
		t.Errorf("next after push: want %v, got %v with %v", tok, got, err)
	}
	defer func() {
		if recover() == nil {
			t.Error("must with no pushed token did not panic")
		}
	}()
	scan.must()
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"1\u00a0234,5 + 6", "1234.5+6"},
		{" \t2 ** 3\n", "2**3"},
		{"1 000", "1000"},
	}
	for _, c := range cases {
		if got := sanitize(c.in); got != c.want {
			t.Errorf("sanitize(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}
