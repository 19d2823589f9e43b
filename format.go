package calcline

import "slices"

// segment is a replacement of the source span [start, end) by repl. The
// formatting passes describe their output as a sequence of segments covering
// the whole source, and the caret is relocated by folding over them.
type segment struct {
	start, end int
	repl       []rune
	// at maps a caret offset into the source span to an offset into repl.
	at func(off int) int
}

// identity maps a caret offset within copied text to itself.
func identity(off int) int { return off }

// relocate maps caret through segments, which must be sorted and contiguous.
// A caret inside or on the boundary of a segment is placed by that segment's
// mapping; when several segments share the boundary, the last one wins. A
// caret outside all segments is shifted by the total length delta.
func relocate(segs []segment, caret int) int {
	out, delta := 0, 0
	placed := false
	r := caret
	for _, s := range segs {
		if s.start <= caret && caret <= s.end {
			r = out + s.at(caret-s.start)
			placed = true
		}
		out += len(s.repl)
		delta += len(s.repl) - (s.end - s.start)
	}
	if !placed {
		r = caret + delta
	}
	return clamp(r, 0, out)
}

func join(segs []segment) []rune {
	n := 0
	for _, s := range segs {
		n += len(s.repl)
	}
	r := make([]rune, 0, n)
	for _, s := range segs {
		r = append(r, s.repl...)
	}
	return r
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FormatNumbers regroups every number-like span of text and relocates caret so
// that it stays attached to the same digit. caret and the result are rune
// offsets.
func FormatNumbers(text string, caret int) (string, int) {
	r, c := formatNumbers([]rune(text), caret)
	return string(r), c
}

func formatNumbers(src []rune, caret int) ([]rune, int) {
	var segs []segment
	pos := 0
	for _, t := range findNumbers(src) {
		if pos < t.Start {
			segs = append(segs, gap(src, pos, t.Start))
		}
		tok := src[t.Start:t.End]
		segs = append(segs, segment{
			start: t.Start,
			end:   t.End,
			repl:  []rune(FormatNumberToken(string(tok))),
			at: func(off int) int {
				if off == 0 {
					return 0
				}
				return len([]rune(FormatNumberToken(string(tok[:off]))))
			},
		})
		pos = t.End
	}
	if pos < len(src) {
		segs = append(segs, gap(src, pos, len(src)))
	}
	return join(segs), relocate(segs, caret)
}

// gap copies the text between numbers. A group separator there groups no
// digits, so it becomes an ordinary space.
func gap(src []rune, start, end int) segment {
	repl := src[start:end]
	if slices.Contains(repl, GroupSeparator) {
		repl = slices.Clone(repl)
		for i, r := range repl {
			if r == GroupSeparator {
				repl[i] = ' '
			}
		}
	}
	return segment{start: start, end: end, repl: repl, at: identity}
}

// FormatOperators renders binary operators with one space on each side and
// unary + and - with none after them, collapses runs of whitespace, and
// relocates caret. A caret inside or at the edge of a binary operator moves past its trailing
// space.
func FormatOperators(text string, caret int) (string, int) {
	r, c := formatOperators([]rune(text), caret)
	return string(r), c
}

func formatOperators(src []rune, caret int) ([]rune, int) {
	out := make([]rune, 0, len(src)+8)
	nc := caret
	for i := 0; i < len(src); {
		tok := operatorAt(src, i)
		if tok == "" {
			out = append(out, src[i])
			i++
			continue
		}
		start, end := i, i+len(tok)
		unary := isUnaryAt(src, start, tok)
		// A binary operator takes the whole whitespace run before it; a
		// unary sign takes the run after it.
		spaceBefore, next := 0, end
		repl := []rune(tok)
		if unary {
			for next < len(src) && isSpace(src[next]) {
				next++
			}
		} else {
			for len(out) > 0 && isSpace(out[len(out)-1]) {
				out = out[:len(out)-1]
				spaceBefore++
			}
			repl = []rune(" " + tok + " ")
		}
		base := len(out)
		switch {
		case start <= caret && caret <= end:
			if unary {
				nc = base + caret - start
			} else {
				nc = base + len(repl)
			}
		case end < caret && caret <= next:
			nc = base + len(repl)
		case caret > next:
			nc += len(repl) - (next - start) - spaceBefore
		case nc > base:
			// The caret was in the whitespace taken by the operator.
			nc = base
		}
		out = append(out, repl...)
		i = next
	}
	for i := len(out) - 1; i > 0; i-- {
		if !isSpace(out[i]) || !isSpace(out[i-1]) {
			continue
		}
		// Of two adjacent whitespace runes, an ordinary space survives.
		k := i
		if out[i] == ' ' && out[i-1] != ' ' {
			k = i - 1
		}
		out = append(out[:k], out[k+1:]...)
		if nc > k {
			nc--
		}
	}
	return out, clamp(nc, 0, len(out))
}

// isUnaryAt reports whether the operator tok at src[i] is a unary sign: it is
// + or - and the nearest preceding non-space rune is absent, an opening
// parenthesis, or another operator.
func isUnaryAt(src []rune, i int, tok string) bool {
	if tok != "+" && tok != "-" {
		return false
	}
	k := lastNonSpace(src, i-1)
	return k < 0 || src[k] == '(' || isOperatorRune(src[k])
}

// FormatDisplay runs both formatting passes, numbers first, and returns the
// display text with the relocated caret. It is used after every edit and
// after any external change to the text.
func FormatDisplay(text string, caret int) (string, int) {
	r, c := formatDisplay([]rune(text), caret)
	return string(r), c
}

func formatDisplay(src []rune, caret int) ([]rune, int) {
	r, c := formatNumbers(src, caret)
	return formatOperators(r, c)
}
