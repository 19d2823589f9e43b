package calcline

// Editable is the visible state of an expression input: its display text and
// the selection [Start, End) as rune offsets. Start == End is a caret. Edit
// methods never modify the receiver; they return the new state after running
// the result through FormatDisplay.
type Editable struct {
	Text  string
	Start int
	End   int
}

// NewEditable formats text for display with the caret at its end.
func NewEditable(text string) Editable {
	return Editable{Text: text, Start: len([]rune(text)), End: len([]rune(text))}.Format()
}

// Caret returns the caret position, the start of the selection.
func (e Editable) Caret() int {
	return e.Start
}

// Selected returns the selected text.
func (e Editable) Selected() string {
	src := []rune(e.Text)
	start, end := e.selection(len(src))
	return string(src[start:end])
}

// selection returns the selection clamped to [0, n] with start <= end.
func (e Editable) selection(n int) (int, int) {
	start, end := clamp(e.Start, 0, n), clamp(e.End, 0, n)
	if start > end {
		start, end = end, start
	}
	return start, end
}

// Format reformats the text, relocating both ends of the selection.
func (e Editable) Format() Editable {
	src := []rune(e.Text)
	start, end := e.selection(len(src))
	text, s := formatDisplay(src, start)
	if start == end {
		return Editable{Text: string(text), Start: s, End: s}
	}
	_, t := formatDisplay(src, end)
	return Editable{Text: string(text), Start: s, End: t}
}

// Insert replaces the selection with token and places the caret after it.
//
// A binary operator typed directly after another operator, ignoring spaces,
// replaces that operator instead of stacking on it. A closing parenthesis
// with no unmatched opening parenthesis anywhere in the text also inserts an
// opening parenthesis at the very start.
func (e Editable) Insert(token string) Editable {
	src := []rune(e.Text)
	start, end := e.selection(len(src))
	before := src[:start:start]
	after := src[end:]

	if IsOperator(token) {
		if k := lastNonSpace(before, len(before)-1); k >= 0 {
			if op := operatorEndingAt(before, k); op != "" {
				cut := k - len(op) + 1
				for cut > 0 && isSpace(before[cut-1]) {
					cut--
				}
				before = before[:cut:cut]
			}
		}
	}

	buf := make([]rune, 0, len(before)+len(token)+len(after)+1)
	if token == ")" && parenBalance(before)+parenBalance(after) <= 0 {
		buf = append(buf, '(')
	}
	buf = append(buf, before...)
	buf = append(buf, []rune(token)...)
	caret := len(buf)
	buf = append(buf, after...)

	text, c := formatDisplay(buf, caret)
	return Editable{Text: string(text), Start: c, End: c}
}

// Backspace deletes the selection, or the rune before the caret. When that
// rune is the formatting space beside a binary operator, the whole operator
// chunk, the operator and one space on each side, is deleted instead.
func (e Editable) Backspace() Editable {
	src := []rune(e.Text)
	start, end := e.selection(len(src))
	switch {
	case start != end:
		return reanchor(splice(src, start, end), start)
	case start == 0:
		return reanchor(src, 0)
	}
	ds, de := backspaceSpan(src, start)
	return reanchor(splice(src, ds, de), ds)
}

// Delete deletes the selection, or the rune after the caret. When that rune
// belongs to a spaced binary operator chunk, the whole chunk is deleted and
// the caret moves to where the chunk started.
func (e Editable) Delete() Editable {
	src := []rune(e.Text)
	start, end := e.selection(len(src))
	switch {
	case start != end:
		return reanchor(splice(src, start, end), start)
	case start == len(src):
		return reanchor(src, start)
	}
	ds, de := deleteSpan(src, start)
	return reanchor(splice(src, ds, de), ds)
}

// backspaceSpan returns the span deleted by a backspace at caret c > 0.
func backspaceSpan(src []rune, c int) (int, int) {
	if c > 1 && isSpace(src[c-1]) {
		if op := operatorEndingAt(src, c-2); op != "" {
			// "a op |b": delete " op ".
			return chunkBefore(src, c-1-len(op)), chunkAfter(src, c)
		}
		if op := operatorAt(src, c); op != "" {
			// "a |op b": delete " op ".
			return c - 1, chunkAfter(src, c+len(op))
		}
	}
	return c - 1, c
}

// deleteSpan returns the span deleted by a delete at caret c < len(src).
func deleteSpan(src []rune, c int) (int, int) {
	if isSpace(src[c]) {
		if op := operatorAt(src, c+1); op != "" {
			// "a| op b"
			return c, chunkAfter(src, c+1+len(op))
		}
		if op := operatorEndingAt(src, c-1); op != "" {
			// "a op| b"
			return chunkBefore(src, c-len(op)), c + 1
		}
	}
	if op := operatorAt(src, c); op != "" && c > 0 && isSpace(src[c-1]) {
		// "a |op b"
		return c - 1, chunkAfter(src, c+len(op))
	}
	return c, c + 1
}

// chunkBefore extends an operator chunk start over one preceding space.
func chunkBefore(src []rune, i int) int {
	if i > 0 && isSpace(src[i-1]) {
		return i - 1
	}
	return i
}

// chunkAfter extends an operator chunk end over one following space.
func chunkAfter(src []rune, i int) int {
	if i < len(src) && isSpace(src[i]) {
		return i + 1
	}
	return i
}

// reanchor formats buf and places the caret after the same number of
// non-space runes that precede caret in buf, or at the end of the text if the
// formatted text has fewer.
func reanchor(buf []rune, caret int) Editable {
	n := 0
	for _, r := range buf[:caret] {
		if !isSpace(r) {
			n++
		}
	}
	text, _ := formatDisplay(buf, caret)
	pos := 0
	if n > 0 {
		pos = len(text)
		k := 0
		for i, r := range text {
			if isSpace(r) {
				continue
			}
			k++
			if k == n {
				pos = i + 1
				break
			}
		}
	}
	return Editable{Text: string(text), Start: pos, End: pos}
}

func splice(src []rune, start, end int) []rune {
	r := make([]rune, 0, len(src)-(end-start))
	r = append(r, src[:start]...)
	return append(r, src[end:]...)
}

// parenBalance returns the number of opening parentheses in s minus the
// number of closing ones.
func parenBalance(s []rune) int {
	n := 0
	for _, r := range s {
		switch r {
		case '(':
			n++
		case ')':
			n--
		}
	}
	return n
}
