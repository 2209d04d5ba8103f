package main

import (
	"fmt"
	"strings"
	"time"

	styles "github.com/charmbracelet/lipgloss"

	"github.com/keilerkonzept/binomial-machine-tui/selection"
)

// Bar palettes: default, hover, range, click.
var (
	exactPalette = [4]styles.AdaptiveColor{
		{Light: "#1f4e99", Dark: "#5f87d7"},
		{Light: "#5fafd7", Dark: "#add8e6"},
		{Light: "#6495ed", Dark: "#6495ed"},
		{Light: "#00008b", Dark: "#ffffff"},
	}
	simPalette = [4]styles.AdaptiveColor{
		{Light: "#2e8b57", Dark: "#3cb371"},
		{Light: "#5fd75f", Dark: "#90ee90"},
		{Light: "#32cd32", Dark: "#32cd32"},
		{Light: "#006400", Dark: "#ffffff"},
	}
)

const (
	colorDefault = iota
	colorHover
	colorRange
	colorClick
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	errorColor    = styles.AdaptiveColor{Light: "1", Dark: "9"}
	selectedFg    = styles.NewStyle().Foreground(selectedColor)
	borderFg      = styles.NewStyle().Foreground(borderColor)
	errorFg       = styles.NewStyle().Foreground(errorColor)
	titleStyle    = styles.NewStyle().Bold(true)
	plotStyle     = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			BorderForeground(borderColor)
)

// barColor follows the precedence click > range > hover > default.
func (m *model) barColor(k int, pane chartPane) int {
	if pane == paneExact {
		if sel, ok := m.s.sel.SelectedPoint(); ok && sel == k {
			return colorClick
		}
		if m.s.sel.InRange(k) {
			return colorRange
		}
	}
	if m.hoverPane == pane && m.hover == k {
		return colorHover
	}
	return colorDefault
}

func (m *model) View() string {
	available := max(1, m.height-2)
	left := styles.NewStyle().
		Width(m.leftPaneWidth).
		Height(available).
		MaxHeight(available).
		Render(strings.Join(m.sidebarLines(), "\n"))
	right := plotStyle.Render(strings.Join(m.chartLines(), "\n"))
	view := styles.JoinHorizontal(styles.Top, left, right)

	status := ""
	switch {
	case m.confirmQuit:
		status = selectedFg.Render("Do you want to quit? (y/n)")
	case m.err != nil:
		status = errorFg.Render("ERROR: " + m.err.Error())
	case m.busy:
		status = borderFg.Render("simulating...")
	}
	return styles.JoinVertical(styles.Left, view, status, m.help.View(keys))
}

func (m *model) chartLines() []string {
	l := m.layout
	dist := m.s.dist
	lines := make([]string, 0, l.height)

	exactTop := dist.MaxProbability() * 1.25
	lines = append(lines, m.exactLegend())
	lines = append(lines, renderBars(dist.PMF(), exactTop, l.barHeight, l.barWidth, l.visibleBars(), func(k int) styles.Style {
		return styles.NewStyle().Foreground(exactPalette[m.barColor(k, paneExact)])
	})...)
	lines = append(lines, borderFg.Render(renderAxis(l.width, l.barWidth, l.visibleBars())))

	var curve []string
	if len(m.s.curve) == 0 {
		curve = []string{borderFg.Render("normal approximation undefined (σ = 0)")}
	} else {
		curve = strings.Split(strings.TrimRight(m.plot.String(), "\n"), "\n")
	}
	lines = append(lines, fitLines(curve, l.curveHeight)...)

	simTop := m.simSnap.MaxFrequency() * 1.25
	if simTop == 0 {
		simTop = 1
	}
	lines = append(lines, m.simLegend())
	lines = append(lines, renderBars(m.simSnap.Frequencies, simTop, l.barHeight, l.barWidth, l.visibleBars(), func(k int) styles.Style {
		return styles.NewStyle().Foreground(simPalette[m.barColor(k, paneSim)])
	})...)
	lines = append(lines, borderFg.Render(renderAxis(l.width, l.barWidth, l.visibleBars())))

	for i := range lines {
		lines[i] = styles.NewStyle().Width(l.width).MaxWidth(l.width).Render(lines[i])
	}
	return lines
}

func (m *model) exactLegend() string {
	dist := m.s.dist
	legend := styles.NewStyle().Foreground(exactPalette[colorDefault]).Render("█ exact") +
		borderFg.Render(fmt.Sprintf("  ─ normal μ=%.2f σ=%.2f", dist.Mean(), dist.StdDev()))
	if m.hoverPane == paneExact && m.hover >= 0 {
		if h, err := m.s.sel.Hover(m.hover); err == nil {
			legend += "   " + selectedFg.Render(strings.ReplaceAll(h.String(), "\n", ""))
		}
	}
	return legend
}

func (m *model) simLegend() string {
	legend := styles.NewStyle().Foreground(simPalette[colorDefault]).Render("█ simulated") +
		borderFg.Render(fmt.Sprintf("  Sims: %d", m.simSnap.Total))
	if m.hoverPane == paneSim && m.hover >= 0 {
		if h, err := m.s.sel.HoverSimulated(m.hover, m.simSnap); err == nil {
			count := 0
			if m.hover < len(m.simSnap.Counts) {
				count = m.simSnap.Counts[m.hover]
			}
			legend += "   " + selectedFg.Render(fmt.Sprintf("freq(%d) = %.5f (%d/%d)", h.Outcome, h.Simulated, count, h.Total))
		}
	}
	return legend
}

func (m *model) sidebarLines() []string {
	lines := []string{titleStyle.Render("THE BINOMIAL MACHINE"), ""}

	for i, f := range []focus{focusN, focusP} {
		lines = append(lines, m.inputView(i, f))
	}
	if m.paramMsg != "" {
		lines = append(lines, errorFg.Render(m.paramMsg))
	}
	lines = append(lines, "", m.inputView(inputSims, focusSims))
	if m.simsMsg != "" {
		lines = append(lines, errorFg.Render(m.simsMsg))
	}

	lines = append(lines, "", titleStyle.Render("POINT"))
	if len(m.pointText) == 0 {
		lines = append(lines, borderFg.Render("enter / left click a bar to see"), borderFg.Render("probabilities for a single X"))
	} else {
		lines = append(lines, m.pointText...)
	}

	lines = append(lines, "", titleStyle.Render("RANGE"))
	switch {
	case len(m.rangeText) > 0:
		lines = append(lines, m.rangeText...)
	case m.s.sel.Range().Phase == selection.LeftSet:
		lines = append(lines, borderFg.Render(fmt.Sprintf("from %d ... pick the other edge", m.s.sel.Range().Left)))
	default:
		lines = append(lines, borderFg.Render("space / right click two bars to"), borderFg.Render("see the probability between them"))
	}

	lines = append(lines, "", titleStyle.Render(fmt.Sprintf("RECENT LEADERS (last %d batches)", m.cfg.Window)))
	leaders := m.recent.leaders()
	if len(leaders) == 0 {
		lines = append(lines, borderFg.Render("-"))
	}
	for i, l := range leaders {
		lines = append(lines, fmt.Sprintf("#%-2d X=%-3d %d", i+1, l.Outcome, l.Count))
	}

	if m.cfg.StatsEnabled {
		snap := m.metrics.snapshot()
		title := "PERF STATS"
		if m.busy {
			title = "PERF STATS (SIMULATING)"
		}
		lines = append(lines, "",
			titleStyle.Render(title),
			fmt.Sprintf("batches: %d (resets %d)", snap.batches, snap.resets),
			fmt.Sprintf("trials: %d", snap.trials),
			fmt.Sprintf("draws: %d (%d/s)", snap.draws, snap.drawsPerSec),
			fmt.Sprintf("batch latency: last %s avg %s max %s",
				formatMetricDuration(snap.batchLatency.last),
				formatMetricDuration(snap.batchLatency.avg),
				formatMetricDuration(snap.batchLatency.max)),
		)
	}
	return lines
}

func (m *model) inputView(i int, f focus) string {
	ti := m.inputs[i]
	if m.inputBad[i] {
		ti.TextStyle = errorFg
	}
	if m.focus == f {
		ti.PromptStyle = selectedFg
	}
	return ti.View()
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
