package main

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/zephyrtronium/calcline"
)

// g is the group separator.
const g = "\u00a0"

func testConfig() *Config {
	return &Config{
		Precision:   calcline.DefaultPrecision,
		HistorySize: 3,
		Log:         &LogConfig{Level: "debug", Format: "text"},
	}
}

func newTestSession(t *testing.T) (*Session, *test.Hook) {
	t.Helper()
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return NewSession(testConfig(), l), hook
}

func typeTokens(s *Session, toks ...string) {
	for _, tok := range toks {
		s.Insert(tok)
	}
}

func TestSessionLive(t *testing.T) {
	cases := []struct {
		name string
		toks []string
		want string
	}{
		{"empty", nil, ""},
		{"number", []string{"4", "2"}, "42"},
		{"sum", []string{"1", "0", "0", "0", "*", "3"}, "3" + g + "000"},
		{"incomplete", []string{"1", "+"}, Pending},
		{"div-zero", []string{"1", "/", "0"}, Pending},
		{"fraction", []string{"1", ",", "5", "*", "2"}, "3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			typeTokens(s, c.toks...)
			if got := s.Live(); got != c.want {
				t.Errorf("%q: want live %q, got %q", s.Input.Text, c.want, got)
			}
		})
	}
}

func TestSessionCommit(t *testing.T) {
	s, hook := newTestSession(t)
	typeTokens(s, "1", "0", "0", "0", "+", "2")
	r, err := s.Commit()
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	want := "1" + g + "002"
	if r != want {
		t.Errorf("want result %q, got %q", want, r)
	}
	if s.Input.Text != want || s.Input.Start != 5 || s.Input.End != 5 {
		t.Errorf("input not replaced by result: %+v", s.Input)
	}
	if s.LastResult() != want {
		t.Errorf("want last result %q, got %q", want, s.LastResult())
	}
	h := s.History()
	if len(h) != 1 || h[0] != (Entry{Expression: "1" + g + "000 + 2", Result: want}) {
		t.Errorf("wrong history %q", h)
	}
	e := hook.LastEntry()
	if e == nil || e.Message != "commit" || e.Data["result"] != want {
		t.Errorf("wrong log entry %+v", e)
	}
}

func TestSessionCommitError(t *testing.T) {
	s, _ := newTestSession(t)
	typeTokens(s, "1", "/", "0")
	before := s.Input
	r, err := s.Commit()
	var dz *calcline.DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Fatalf("want division by zero, got %q, %v", r, err)
	}
	if s.Input != before {
		t.Errorf("failed commit changed input from %+v to %+v", before, s.Input)
	}
	if len(s.History()) != 0 || s.LastResult() != "" {
		t.Errorf("failed commit recorded history %q or result %q", s.History(), s.LastResult())
	}
}

func TestSessionCommitEmpty(t *testing.T) {
	s, hook := newTestSession(t)
	r, err := s.Commit()
	if r != "" || err != nil {
		t.Errorf("empty commit gave %q, %v", r, err)
	}
	if len(s.History()) != 0 || len(hook.AllEntries()) != 0 {
		t.Errorf("empty commit had effects")
	}
}

func TestSessionHistoryCap(t *testing.T) {
	s, _ := newTestSession(t)
	for _, d := range []string{"1", "2", "3", "4", "5"} {
		s.Clear()
		s.Insert(d)
		if _, err := s.Commit(); err != nil {
			t.Fatalf("committing %s: %v", d, err)
		}
	}
	want := []Entry{{"5", "5"}, {"4", "4"}, {"3", "3"}}
	h := s.History()
	if len(h) != len(want) {
		t.Fatalf("want %d entries, got %q", len(want), h)
	}
	for i := range want {
		if h[i] != want[i] {
			t.Errorf("entry %d: want %q, got %q", i, want[i], h[i])
		}
	}
	s.SetHistorySize(1)
	if h := s.History(); len(h) != 1 || h[0].Result != "5" {
		t.Errorf("shrinking history kept %q", h)
	}
}

func TestSessionNoHistory(t *testing.T) {
	l, _ := test.NewNullLogger()
	cfg := testConfig()
	cfg.HistorySize = 0
	s := NewSession(cfg, l)
	s.Insert("7")
	if _, err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if len(s.History()) != 0 {
		t.Errorf("history kept %q", s.History())
	}
	if s.LastResult() != "7" {
		t.Errorf("want last result 7, got %q", s.LastResult())
	}
}

func TestSessionRecall(t *testing.T) {
	s, _ := newTestSession(t)
	typeTokens(s, "2", "**", "3")
	if _, err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if !s.Recall(0) {
		t.Fatal("recall failed")
	}
	if want := "2 ** 3"; s.Input.Text != want || s.Input.Start != 6 || s.Input.End != 6 {
		t.Errorf("want %q at end, got %+v", want, s.Input)
	}
	if s.Recall(1) || s.Recall(-1) {
		t.Errorf("recalled a missing entry")
	}
}

func TestSessionInsertLastResult(t *testing.T) {
	s, _ := newTestSession(t)
	if s.InsertLastResult() {
		t.Error("inserted a result before any commit")
	}
	typeTokens(s, "1", "0", "0", "0", "+", "2", "3", "4")
	if _, err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	typeTokens(s, "2", "*")
	if !s.InsertLastResult() {
		t.Fatal("no last result")
	}
	if want := "2 * 1" + g + "234"; s.Input.Text != want {
		t.Errorf("want %q, got %q", want, s.Input.Text)
	}
	if want := "2" + g + "468"; s.Live() != want {
		t.Errorf("want live %q, got %q", want, s.Live())
	}
}

func TestSessionMoveTo(t *testing.T) {
	s, _ := newTestSession(t)
	s.Input = calcline.Editable{Text: "12 + 34", Start: 7, End: 7}
	s.MoveTo(2, false)
	if s.Input.Start != 2 || s.Input.End != 2 || s.Caret() != 2 {
		t.Errorf("collapsed move: %+v caret %d", s.Input, s.Caret())
	}
	s.MoveTo(5, true)
	if s.Input.Start != 2 || s.Input.End != 5 || s.Caret() != 5 {
		t.Errorf("extend right: %+v caret %d", s.Input, s.Caret())
	}
	s.MoveTo(0, true)
	if s.Input.Start != 0 || s.Input.End != 2 || s.Caret() != 0 {
		t.Errorf("extend across anchor: %+v caret %d", s.Input, s.Caret())
	}
	if sel := s.Input.Selected(); sel != "12" {
		t.Errorf("want selection %q, got %q", "12", sel)
	}
	s.Insert("9")
	if s.Input.Text != "9 + 34" || s.Input.Start != s.Input.End {
		t.Errorf("typing over selection gave %+v", s.Input)
	}
	s.MoveTo(-3, false)
	if s.Caret() != 0 {
		t.Errorf("want caret clamped to 0, got %d", s.Caret())
	}
	s.MoveTo(100, false)
	if s.Caret() != 6 {
		t.Errorf("want caret clamped to 6, got %d", s.Caret())
	}
}

func TestSessionApply(t *testing.T) {
	cases := []struct {
		name string
		toks []string
		r    calcline.Rewrite
		text string
		live string
	}{
		{"sqrt", []string{"9"}, calcline.Sqrt, "(9) ** (1 / 2)", "3"},
		{"square", []string{"1", "+", "2"}, calcline.Square, "(1 + 2) ** 2", "9"},
		{"reciprocal", []string{"4"}, calcline.Reciprocal, "(1 / (4))", "0,25"},
		{"negate", []string{"5"}, calcline.Negate, "-5", "-5"},
		{"empty", nil, calcline.Sqrt, "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			typeTokens(s, c.toks...)
			s.Apply(c.r)
			n := len([]rune(c.text))
			if s.Input.Text != c.text || s.Input.Start != n || s.Input.End != n {
				t.Errorf("want %q at end, got %+v", c.text, s.Input)
			}
			if got := s.Live(); got != c.live {
				t.Errorf("want live %q, got %q", c.live, got)
			}
		})
	}
}

func TestSessionSetPrecision(t *testing.T) {
	s, hook := newTestSession(t)
	typeTokens(s, "1", "/", "3")
	s.SetPrecision(3)
	if got := s.Live(); got != "0,333" {
		t.Errorf("want 0,333, got %q", got)
	}
	if e := hook.LastEntry(); e == nil || e.Message != "precision changed" {
		t.Errorf("wrong log entry %+v", e)
	}
	hook.Reset()
	s.SetPrecision(3)
	if len(hook.AllEntries()) != 0 {
		t.Errorf("unchanged precision logged")
	}
}
