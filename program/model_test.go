package main

import (
	"strings"
	"testing"

	tui "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tui.KeyMsg {
	return tui.KeyMsg{Type: tui.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T) *model {
	t.Helper()
	m, err := newModel(testConfig())
	if err != nil {
		t.Fatalf("newModel() error = %v", err)
	}
	return m
}

func press(m *model, msgs ...tui.Msg) tui.Cmd {
	var cmd tui.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModel_SelectPointWithKeys(t *testing.T) {
	m := newTestModel(t)
	right := tui.KeyMsg{Type: tui.KeyRight}
	press(m, right, right, right, right, right)
	if m.cursor != 5 {
		t.Fatalf("cursor = %d, want 5", m.cursor)
	}

	press(m, tui.KeyMsg{Type: tui.KeyEnter})
	if len(m.pointText) == 0 || m.pointText[0] != "P(X=5) = 0.24609" {
		t.Fatalf("pointText = %q", m.pointText)
	}

	press(m, tui.KeyMsg{Type: tui.KeyEnter})
	if len(m.pointText) != 0 {
		t.Errorf("second select should clear, got %q", m.pointText)
	}
}

func TestModel_CursorClamps(t *testing.T) {
	m := newTestModel(t)
	press(m, tui.KeyMsg{Type: tui.KeyLeft})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	for range 20 {
		press(m, runeKey('l'))
	}
	if m.cursor != 10 {
		t.Errorf("cursor = %d, want 10", m.cursor)
	}
}

func TestModel_RangeWithKeys(t *testing.T) {
	m := newTestModel(t)
	space := tui.KeyMsg{Type: tui.KeySpace}
	right := tui.KeyMsg{Type: tui.KeyRight}

	press(m, right, right, right, right, right, space)
	if m.rangeText != nil {
		t.Fatalf("one edge should not display, got %q", m.rangeText)
	}
	press(m, tui.KeyMsg{Type: tui.KeyLeft}, tui.KeyMsg{Type: tui.KeyLeft}, space)
	if len(m.rangeText) != 3 || !strings.HasPrefix(m.rangeText[0], "P(3<=X<=5) = ") {
		t.Fatalf("rangeText = %q", m.rangeText)
	}
	if !strings.HasPrefix(m.rangeText[2], "Normal Approx = 0.") {
		t.Errorf("normal line = %q", m.rangeText[2])
	}

	press(m, space)
	if m.rangeText != nil {
		t.Errorf("third edge should clear, got %q", m.rangeText)
	}
}

func TestModel_AddAndClearSims(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, runeKey('a'))
	if cmd == nil {
		t.Fatal("add sims returned no command")
	}
	if !m.busy {
		t.Fatal("model not busy while sims run")
	}
	if again := press(m, runeKey('a')); again != nil {
		t.Error("second add while busy should be ignored")
	}

	done, ok := cmd().(simsDoneMsg)
	if !ok {
		t.Fatal("command did not produce simsDoneMsg")
	}
	press(m, done)
	if m.busy {
		t.Error("still busy after simsDoneMsg")
	}
	if m.simSnap.Total != 100 {
		t.Errorf("total = %d, want 100", m.simSnap.Total)
	}
	if len(m.recent.leaders()) == 0 {
		t.Error("no recent leaders after a batch")
	}
	if s := m.metrics.snapshot(); s.batches != 1 || s.trials != 100 {
		t.Errorf("metrics = %+v", s)
	}

	press(m, runeKey('c'))
	if m.simSnap.Total != 0 || m.s.sim.Total() != 0 {
		t.Errorf("total after clear = %d", m.simSnap.Total)
	}
	if len(m.recent.leaders()) != 0 {
		t.Error("leaders survived clear")
	}
}

func TestModel_RejectsBadSims(t *testing.T) {
	m := newTestModel(t)
	m.inputs[inputSims].SetValue("0")
	if cmd := press(m, runeKey('a')); cmd != nil {
		t.Fatal("invalid sims started a batch")
	}
	if m.simsMsg != "Sims must be positive" || !m.inputBad[inputSims] {
		t.Errorf("simsMsg = %q bad = %v", m.simsMsg, m.inputBad[inputSims])
	}
}

func TestModel_StaleSimsIgnored(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, runeKey('a'))
	done := cmd().(simsDoneMsg)

	m.inputs[inputN].SetValue("20")
	m.applyParams()
	if m.s.gen != 1 {
		t.Fatalf("gen = %d, want 1", m.s.gen)
	}
	press(m, done)
	if m.simSnap.Total != 0 {
		t.Errorf("stale batch applied, total = %d", m.simSnap.Total)
	}
	if s := m.metrics.snapshot(); s.batches != 0 || s.trials != 0 || s.draws != 0 {
		t.Errorf("stale batch counted in metrics: %+v", s)
	}
	if len(m.simSnap.Counts) != 21 {
		t.Errorf("counts = %d, want 21", len(m.simSnap.Counts))
	}
}

func TestModel_ApplyParams(t *testing.T) {
	tests := []struct {
		name    string
		n, p    string
		wantMsg string
		wantN   int
	}{
		{"unchanged", "10", "0.5", "n and p match current graph", 10},
		{"new n", "30", "0.5", "", 30},
		{"new p", "10", "0.25", "", 10},
		{"bad n", "73", "0.5", "n must be less than 73 for performance purposes", 10},
		{"both bad", "x", "2", "n must be an integer\np must be between 0 and 1 (inclusive)", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.pointText = []string{"stale"}
			m.inputs[inputN].SetValue(tt.n)
			m.inputs[inputP].SetValue(tt.p)
			m.applyParams()
			if m.paramMsg != tt.wantMsg {
				t.Errorf("paramMsg = %q, want %q", m.paramMsg, tt.wantMsg)
			}
			if got := m.s.dist.N(); got != tt.wantN {
				t.Errorf("n = %d, want %d", got, tt.wantN)
			}
			if tt.wantMsg == "" && m.pointText != nil {
				t.Error("selection survived a parameter change")
			}
		})
	}
}

func TestModel_FocusAndEnter(t *testing.T) {
	m := newTestModel(t)
	press(m, tui.KeyMsg{Type: tui.KeyTab})
	if m.focus != focusN {
		t.Fatalf("focus = %v, want focusN", m.focus)
	}
	m.inputs[inputN].SetValue("12")
	press(m, tui.KeyMsg{Type: tui.KeyEnter})
	if m.s.dist.N() != 12 {
		t.Errorf("n = %d, want 12", m.s.dist.N())
	}

	// keys go to the input while it has focus
	press(m, runeKey('q'))
	if m.confirmQuit {
		t.Error("q in an input box asked to quit")
	}

	press(m, tui.KeyMsg{Type: tui.KeyShiftTab})
	if m.focus != focusChart {
		t.Errorf("focus = %v, want focusChart", m.focus)
	}
	press(m, tui.KeyMsg{Type: tui.KeyTab}, tui.KeyMsg{Type: tui.KeyEsc})
	if m.focus != focusChart {
		t.Errorf("esc focus = %v, want focusChart", m.focus)
	}
}

func TestModel_QuitConfirm(t *testing.T) {
	m := newTestModel(t)
	if cmd := press(m, runeKey('q')); cmd != nil {
		t.Fatal("q quit without confirmation")
	}
	if !m.confirmQuit {
		t.Fatal("not asking for confirmation")
	}
	press(m, runeKey('n'))
	if m.confirmQuit {
		t.Fatal("n did not cancel")
	}

	press(m, runeKey('q'))
	cmd := press(m, runeKey('y'))
	if cmd == nil {
		t.Fatal("y did not quit")
	}
	if _, ok := cmd().(tui.QuitMsg); !ok {
		t.Error("y did not return tui.Quit")
	}
}

func TestModel_Mouse(t *testing.T) {
	m := newTestModel(t)
	l := m.layout
	x := l.originX + 3*l.barWidth

	press(m, tui.MouseMsg{X: x, Y: l.exactBarsTop(), Action: tui.MouseActionMotion})
	if m.hover != 3 || m.hoverPane != paneExact || m.cursor != 3 {
		t.Fatalf("hover = %d pane = %v cursor = %d", m.hover, m.hoverPane, m.cursor)
	}

	press(m, tui.MouseMsg{X: x, Y: l.exactBarsTop(), Action: tui.MouseActionPress, Button: tui.MouseButtonLeft})
	if len(m.pointText) == 0 || !strings.HasPrefix(m.pointText[0], "P(X=3) = ") {
		t.Errorf("pointText = %q", m.pointText)
	}

	// the simulated chart is hover-only
	press(m, tui.MouseMsg{X: x, Y: l.simBarsTop(), Action: tui.MouseActionPress, Button: tui.MouseButtonLeft})
	if len(m.pointText) == 0 {
		t.Error("click on simulated chart changed the selection")
	}

	press(m, tui.MouseMsg{X: 0, Y: 0, Action: tui.MouseActionMotion})
	if m.hover != -1 || m.hoverPane != paneNone {
		t.Errorf("hover off chart = %d %v", m.hover, m.hoverPane)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	press(m, tui.WindowSizeMsg{Width: 120, Height: 40})
	if m.leftPaneWidth+m.rightPaneWidth != 120 {
		t.Errorf("pane widths %d + %d", m.leftPaneWidth, m.rightPaneWidth)
	}
	out := m.View()
	for _, want := range []string{"THE BINOMIAL MACHINE", "Sims: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_DegenerateParams(t *testing.T) {
	m := newTestModel(t)
	m.inputs[inputP].SetValue("1")
	m.applyParams()
	if m.paramMsg != "" {
		t.Fatalf("paramMsg = %q", m.paramMsg)
	}
	if !strings.Contains(m.View(), "normal approximation undefined") {
		t.Error("degenerate view does not explain the missing curve")
	}
	m.selectRangeEdge(2)
	m.selectRangeEdge(10)
	if len(m.rangeText) != 3 || m.rangeText[2] != "Normal Approx = n/a (σ = 0)" {
		t.Errorf("rangeText = %q", m.rangeText)
	}
}
