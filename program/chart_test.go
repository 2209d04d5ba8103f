package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	styles "github.com/charmbracelet/lipgloss"
)

func TestComputeChartLayout(t *testing.T) {
	l := computeChartLayout(30, 1, 66, 40, 11)
	if l.barWidth != 6 {
		t.Errorf("barWidth = %d, want 6", l.barWidth)
	}
	if l.curveHeight != 8 {
		t.Errorf("curveHeight = %d, want 8", l.curveHeight)
	}
	if l.barHeight != 14 {
		t.Errorf("barHeight = %d, want 14", l.barHeight)
	}
	if got := l.simAxisRow() - l.originY + 1; got > l.height {
		t.Errorf("layout uses %d rows, only %d available", got, l.height)
	}

	narrow := computeChartLayout(0, 0, 40, 20, 73)
	if narrow.barWidth != 1 || narrow.visibleBars() != 40 {
		t.Errorf("narrow: barWidth %d visible %d", narrow.barWidth, narrow.visibleBars())
	}
}

func TestChartLayout_BarAt(t *testing.T) {
	l := computeChartLayout(30, 1, 66, 40, 11)
	tests := []struct {
		name     string
		x, y     int
		wantK    int
		wantPane chartPane
		wantOK   bool
	}{
		{"first exact bar", 30, l.exactBarsTop(), 0, paneExact, true},
		{"exact axis", 30 + 6*4 + 2, l.exactAxisRow(), 4, paneExact, true},
		{"last exact bar", 30 + 6*10 + 5, l.exactBarsTop() + 3, 10, paneExact, true},
		{"sim bar", 30 + 6*7, l.simBarsTop(), 7, paneSim, true},
		{"legend row", 30, l.originY, 0, paneNone, false},
		{"curve strip", 30, l.curveTop(), 0, paneNone, false},
		{"left of chart", 29, l.exactBarsTop(), 0, paneNone, false},
		{"right of bars", 30 + 66, l.exactBarsTop(), 0, paneNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, pane, ok := l.barAt(tt.x, tt.y)
			if k != tt.wantK || pane != tt.wantPane || ok != tt.wantOK {
				t.Errorf("barAt(%d,%d) = %d, %v, %v, want %d, %v, %v", tt.x, tt.y, k, pane, ok, tt.wantK, tt.wantPane, tt.wantOK)
			}
		})
	}
}

func TestRenderBars(t *testing.T) {
	plain := func(int) styles.Style { return styles.NewStyle() }
	rows := renderBars([]float64{1, 0.5, 0}, 1, 2, 3, 3, plain)
	want := []string{
		"██       ",
		"██ ██    ",
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}

	partial := renderBars([]float64{0.5}, 1, 1, 1, 1, plain)
	if partial[0] != "▄" {
		t.Errorf("half bar = %q, want ▄", partial[0])
	}
	empty := renderBars([]float64{0.5}, 0, 1, 1, 1, plain)
	if empty[0] != " " {
		t.Errorf("zero scale = %q, want blank", empty[0])
	}
}

func TestRenderAxis(t *testing.T) {
	if got := renderAxis(12, 3, 4); got != "0  1  2  3  " {
		t.Errorf("renderAxis = %q", got)
	}
	got := renderAxis(20, 1, 20)
	if utf8.RuneCountInString(got) != 20 {
		t.Fatalf("width = %d", len(got))
	}
	if !strings.HasPrefix(got, "0 2 4 6 8 10") {
		t.Errorf("renderAxis narrow = %q", got)
	}
}

func TestFitLines(t *testing.T) {
	if got := fitLines([]string{"a"}, 3); len(got) != 3 || got[0] != "a" || got[2] != "" {
		t.Errorf("fitLines pad = %q", got)
	}
	if got := fitLines([]string{"a", "b", "c"}, 2); len(got) != 2 || got[1] != "b" {
		t.Errorf("fitLines cut = %q", got)
	}
}

func TestComputePaneWidths(t *testing.T) {
	tests := []struct {
		total, split int
		wantL, wantR int
	}{
		{100, 30, 30, 70},
		{100, 20, 24, 76},
		{100, 80, 76, 24},
		{30, 50, 15, 15},
		{1, 50, 1, 1},
	}
	for _, tt := range tests {
		l, r := computePaneWidths(tt.total, tt.split)
		if l != tt.wantL || r != tt.wantR {
			t.Errorf("computePaneWidths(%d, %d) = %d, %d, want %d, %d", tt.total, tt.split, l, r, tt.wantL, tt.wantR)
		}
	}
}
