package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/calcline"
)

// Screen rows.
const (
	inputRow   = 0
	resultRow  = 1
	statusRow  = 2
	historyRow = 3
)

var parenColors = []tcell.Color{
	tcell.ColorYellow,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
	tcell.ColorLime,
	tcell.ColorOrange,
}

var (
	promptStyle    = tcell.StyleDefault.Bold(true)
	resultStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	errorStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	unmatchedStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	historyStyle   = tcell.StyleDefault.Dim(true)
)

// screenApp is the interactive calculator.
type screenApp struct {
	s *Session
	// sel is the highlighted history entry, or -1.
	sel    int
	status string
}

func newScreenApp(s *Session) *screenApp {
	return &screenApp{s: s, sel: -1}
}

func runTUI(h *host) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	a := newScreenApp(NewSession(h.cfg, h.log))
	watchConfig(h.v, func(cfg *Config) {
		if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
			h.log.SetLevel(lvl)
		}
		_ = screen.PostEvent(tcell.NewEventInterrupt(cfg))
	}, func(err error) {
		h.log.WithError(err).Warn("config reload failed")
	})
	return a.Run(screen)
}

// Run handles events from screen until the user quits or the screen is
// finalized.
func (a *screenApp) Run(screen tcell.Screen) error {
	a.Draw(screen)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if a.HandleKey(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if cfg, ok := ev.Data().(*Config); ok {
				a.s.SetPrecision(cfg.Precision)
				a.s.SetHistorySize(cfg.HistorySize)
				a.sel = min(a.sel, len(a.s.History())-1)
			}
		}
		a.Draw(screen)
	}
}

// HandleKey applies a key press and reports whether it asks to quit.
func (a *screenApp) HandleKey(ev *tcell.EventKey) bool {
	s := a.s
	a.status = ""
	extend := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	case tcell.KeyEnter:
		if _, err := s.Commit(); err != nil {
			a.status = err.Error()
		}
		a.sel = -1
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.Backspace()
	case tcell.KeyDelete:
		s.Delete()
	case tcell.KeyEscape:
		s.Clear()
		a.sel = -1
	case tcell.KeyLeft:
		s.MoveTo(s.Caret()-1, extend)
	case tcell.KeyRight:
		s.MoveTo(s.Caret()+1, extend)
	case tcell.KeyHome:
		s.MoveTo(0, extend)
	case tcell.KeyEnd:
		s.MoveTo(len([]rune(s.Input.Text)), extend)
	case tcell.KeyUp:
		if a.sel+1 < len(s.History()) {
			a.sel++
		}
	case tcell.KeyDown:
		if a.sel >= 0 {
			a.sel--
		}
	case tcell.KeyTab:
		if s.Recall(a.sel) {
			a.sel = -1
		}
	case tcell.KeyRune:
		a.typeRune(ev.Rune())
	}
	return false
}

func (a *screenApp) typeRune(r rune) {
	s := a.s
	switch {
	case r >= '0' && r <= '9', strings.ContainsRune("+-*/%()", r):
		s.Insert(string(r))
	case r == calcline.DecimalSeparator, r == '.':
		s.Insert(string(calcline.DecimalSeparator))
	case r == '^':
		s.Insert("**")
	case r == 'm':
		if !s.InsertLastResult() {
			a.status = "no result yet"
		}
	case r == 's':
		s.Apply(calcline.Square)
	case r == 'r':
		s.Apply(calcline.Sqrt)
	case r == 'i':
		s.Apply(calcline.Reciprocal)
	case r == 'n':
		s.Apply(calcline.Negate)
	}
}

// Draw renders the input line, the live result, the status, and the history.
func (a *screenApp) Draw(screen tcell.Screen) {
	screen.Clear()
	w, h := screen.Size()

	x := drawText(screen, 0, inputRow, w, "> ", promptStyle)
	in := a.s.Input
	rs := []rune(in.Text)
	depths := parenDepths(rs)
	caret := a.s.Caret()
	cx := -1
	for i, r := range rs {
		if i == caret {
			cx = x
		}
		st := tcell.StyleDefault
		switch {
		case (r == '(' || r == ')') && depths[i] < 0:
			st = unmatchedStyle
		case r == '(' || r == ')':
			st = st.Foreground(parenColors[depths[i]%len(parenColors)])
		}
		if i >= in.Start && i < in.End {
			st = st.Reverse(true)
		}
		if x < w {
			screen.SetContent(x, inputRow, r, nil, st)
		}
		x += runewidth.RuneWidth(r)
	}
	if cx < 0 {
		cx = x
	}
	screen.ShowCursor(min(cx, w-1), inputRow)

	drawText(screen, 0, resultRow, w, "= "+a.s.Live(), resultStyle)
	if a.status != "" {
		drawText(screen, 0, statusRow, w, a.status, errorStyle)
	}
	for i, e := range a.s.History() {
		y := historyRow + i
		if y >= h {
			break
		}
		st := historyStyle
		if i == a.sel {
			st = st.Reverse(true)
		}
		drawText(screen, 2, y, w, e.Expression+" = "+e.Result, st)
	}
	screen.Show()
}

// drawText draws s starting at x, clipped at maxX, and returns the column
// after it.
func drawText(screen tcell.Screen, x, y, maxX int, s string, st tcell.Style) int {
	for _, r := range s {
		if x >= maxX {
			break
		}
		screen.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// parenDepths returns the nesting depth of each parenthesis in rs, counting
// from 0 at the outermost level. A closing parenthesis with no match has
// depth -1. Other runes have depth 0.
func parenDepths(rs []rune) []int {
	d := make([]int, len(rs))
	depth := 0
	for i, r := range rs {
		switch r {
		case '(':
			d[i] = depth
			depth++
		case ')':
			if depth == 0 {
				d[i] = -1
				continue
			}
			depth--
			d[i] = depth
		}
	}
	return d
}
