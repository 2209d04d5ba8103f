package main

import (
	"strconv"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
)

type chartPane int

const (
	paneNone chartPane = iota
	paneExact
	paneSim
)

// chartLayout places the two bar charts and the normal curve strip on the
// screen, top to bottom:
//
//	exact legend, exact bars, axis, curve, sim legend, sim bars, axis
type chartLayout struct {
	originX, originY int
	width, height    int

	slots    int
	barWidth int

	barHeight   int
	curveHeight int
}

const chartFixedRows = 4 // two legends, two axes

func computeChartLayout(originX, originY, width, height, slots int) chartLayout {
	l := chartLayout{
		originX: originX,
		originY: originY,
		width:   max(1, width),
		height:  max(1, height),
		slots:   max(1, slots),
	}
	l.barWidth = max(1, l.width/l.slots)
	l.curveHeight = max(2, l.height/5)
	l.barHeight = max(1, (l.height-l.curveHeight-chartFixedRows)/2)
	return l
}

func (l chartLayout) exactBarsTop() int { return l.originY + 1 }
func (l chartLayout) exactAxisRow() int { return l.exactBarsTop() + l.barHeight }
func (l chartLayout) curveTop() int { return l.exactAxisRow() + 1 }
func (l chartLayout) simLegendRow() int { return l.curveTop() + l.curveHeight }
func (l chartLayout) simBarsTop() int { return l.simLegendRow() + 1 }
func (l chartLayout) simAxisRow() int { return l.simBarsTop() + l.barHeight }

// visibleBars is how many bars fit into the pane width.
func (l chartLayout) visibleBars() int {
	return min(l.slots, l.width/l.barWidth)
}

// barAt maps a screen cell to the outcome drawn there. Bar and axis rows
// both count as the bar.
func (l chartLayout) barAt(x, y int) (int, chartPane, bool) {
	col := x - l.originX
	if col < 0 || col >= l.visibleBars()*l.barWidth {
		return 0, paneNone, false
	}
	k := col / l.barWidth
	switch {
	case y >= l.exactBarsTop() && y <= l.exactAxisRow():
		return k, paneExact, true
	case y >= l.simBarsTop() && y <= l.simAxisRow():
		return k, paneSim, true
	}
	return 0, paneNone, false
}

var barEighths = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// renderBars draws one vertical bar per value, scaled so that `top` fills
// the full height. style picks the color of bar k.
func renderBars(values []float64, top float64, height, barWidth, maxBars int, style func(k int) styles.Style) []string {
	bars := min(len(values), maxBars)
	glyphs := barWidth
	if barWidth >= 3 {
		glyphs = barWidth - 1
	}
	rows := make([]string, height)
	for r := range height {
		level := float64(height - 1 - r)
		var sb strings.Builder
		for k := range bars {
			cells := 0.0
			if top > 0 {
				cells = values[k] / top * float64(height)
			}
			fill := min(1, max(0, cells-level))
			glyph := barEighths[int(fill*8)]
			sb.WriteString(style(k).Render(strings.Repeat(glyph, glyphs)))
			if glyphs < barWidth {
				sb.WriteString(" ")
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// renderAxis writes outcome labels under their bars, skipping labels that
// would collide with the previous one.
func renderAxis(width, barWidth, maxBars int) string {
	buf := []byte(strings.Repeat(" ", width))
	lastEnd := -1
	for k := range maxBars {
		label := strconv.Itoa(k)
		pos := k * barWidth
		if pos <= lastEnd || pos+len(label) > width {
			continue
		}
		copy(buf[pos:], label)
		lastEnd = pos + len(label)
	}
	return string(buf)
}

// fitLines pads or truncates lines to exactly n rows.
func fitLines(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func computePaneWidths(totalWidth int, splitPercent int) (left, right int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left = totalWidth * splitPercent / 100
	left = max(1, min(totalWidth-1, left))
	right = totalWidth - left

	// Keep the sidebar readable when the terminal is wide enough.
	const minPane = 24
	if totalWidth >= minPane*2 {
		if left < minPane {
			left = minPane
			right = totalWidth - left
		}
		if right < minPane {
			right = minPane
			left = totalWidth - right
		}
	}
	return max(1, left), max(1, right)
}
