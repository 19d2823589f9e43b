package main

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/calcline"
)

// Pending is the live result shown while the input does not evaluate.
const Pending = "…"

// Entry is a committed calculation.
type Entry struct {
	Expression string
	Result     string
}

// Session is the state of one interactive calculator: the input line, the
// history of committed calculations, and the last committed result.
type Session struct {
	Input calcline.Editable

	// anchor is the fixed end of the selection while it is extended.
	anchor  int
	ctx     *calcline.Context
	history []Entry
	size    int
	last    string
	log     logrus.FieldLogger
}

// NewSession creates an empty session.
func NewSession(cfg *Config, log logrus.FieldLogger) *Session {
	return &Session{
		ctx:  calcline.NewContext(calcline.Prec(cfg.Precision)),
		size: cfg.HistorySize,
		log:  log,
	}
}

// SetPrecision changes the precision of subsequent evaluations.
func (s *Session) SetPrecision(digits uint32) {
	if digits == s.ctx.Prec() {
		return
	}
	s.ctx = calcline.NewContext(calcline.Prec(digits))
	s.log.WithField("precision", digits).Info("precision changed")
}

// SetHistorySize changes the history capacity, dropping the oldest entries
// if there are too many.
func (s *Session) SetHistorySize(n int) {
	s.size = n
	if len(s.history) > n {
		s.history = s.history[:n]
	}
}

func (s *Session) set(e calcline.Editable) {
	s.Input = e
	s.anchor = e.Start
}

// Insert types tok at the caret, replacing any selection.
func (s *Session) Insert(tok string) {
	s.set(s.Input.Insert(tok))
}

// Backspace deletes backward.
func (s *Session) Backspace() {
	s.set(s.Input.Backspace())
}

// Delete deletes forward.
func (s *Session) Delete() {
	s.set(s.Input.Delete())
}

// Clear empties the input.
func (s *Session) Clear() {
	s.set(calcline.Editable{})
}

// Caret returns the moving end of the selection.
func (s *Session) Caret() int {
	if s.Input.Start == s.anchor {
		return s.Input.End
	}
	return s.Input.Start
}

// MoveTo places the caret at pos. If extend is true, the selection grows or
// shrinks from its anchor instead of collapsing.
func (s *Session) MoveTo(pos int, extend bool) {
	n := len([]rune(s.Input.Text))
	pos = min(max(pos, 0), n)
	if !extend {
		s.anchor = pos
	}
	s.Input.Start, s.Input.End = min(s.anchor, pos), max(s.anchor, pos)
}

// Live returns the live preview of the input: the formatted result, the
// empty string for empty input, or Pending if the input does not evaluate.
func (s *Session) Live() string {
	expr := strings.TrimSpace(s.Input.Text)
	if expr == "" {
		return ""
	}
	r, err := s.eval(expr)
	if err != nil {
		return Pending
	}
	return calcline.FormatDecimal(r)
}

// Commit evaluates the input. On success, the input is replaced by the
// formatted result, the calculation is added to the history, and the result
// becomes the last result. On failure the input is unchanged. Committing
// empty input does nothing.
func (s *Session) Commit() (string, error) {
	expr := strings.TrimSpace(s.Input.Text)
	if expr == "" {
		return "", nil
	}
	r, err := s.eval(expr)
	if err != nil {
		s.log.WithFields(logrus.Fields{"expression": expr, "error": err}).Debug("commit failed")
		return "", err
	}
	result := calcline.FormatDecimal(r)
	s.log.WithFields(logrus.Fields{"expression": expr, "result": result}).Info("commit")
	s.set(calcline.NewEditable(result))
	s.last = result
	if s.size > 0 {
		if len(s.history) >= s.size {
			s.history = s.history[:s.size-1]
		}
		s.history = append([]Entry{{Expression: expr, Result: result}}, s.history...)
	}
	return result, nil
}

func (s *Session) eval(expr string) (*apd.Decimal, error) {
	a, err := calcline.Parse(expr)
	if err != nil {
		return nil, err
	}
	return s.ctx.Evaluate(a)
}

// History returns the committed calculations, newest first.
func (s *Session) History() []Entry {
	return s.history
}

// Recall loads the expression of history entry i into the input with the
// caret at its end. It reports false if there is no such entry.
func (s *Session) Recall(i int) bool {
	if i < 0 || i >= len(s.history) {
		return false
	}
	s.set(calcline.NewEditable(s.history[i].Expression))
	return true
}

// LastResult returns the last committed result, or the empty string if
// nothing has been committed.
func (s *Session) LastResult() string {
	return s.last
}

// InsertLastResult types the last committed result at the caret. It reports
// false if nothing has been committed yet.
func (s *Session) InsertLastResult() bool {
	if s.last == "" {
		return false
	}
	s.Insert(s.last)
	return true
}

// Apply rewrites the whole input with r and reformats it with the caret at
// the end.
func (s *Session) Apply(r calcline.Rewrite) {
	s.set(calcline.NewEditable(r(s.Input.Text)))
}
