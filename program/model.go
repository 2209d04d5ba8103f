package main

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tui "github.com/charmbracelet/bubbletea"
	plot "github.com/chriskim06/drawille-go"

	"github.com/keilerkonzept/binomial-machine-tui/binomial"
	"github.com/keilerkonzept/binomial-machine-tui/selection"
	"github.com/keilerkonzept/binomial-machine-tui/simulation"
)

// session is everything that depends on (n, p). Changing the parameters
// replaces the whole session.
type session struct {
	gen   int
	dist  *binomial.Distribution
	sim   *simulation.Accumulator
	sel   *selection.Adapter
	curve []binomial.Point2
}

func newSession(gen int, c Config, params binomial.Params) (*session, error) {
	dist, err := binomial.New(params, c.limits())
	if err != nil {
		return nil, err
	}
	var opts []simulation.Option
	if c.Seed != 0 {
		opts = append(opts, simulation.WithSeed(c.Seed))
	}
	sim, err := simulation.New(params, c.limits(), opts...)
	if err != nil {
		return nil, err
	}
	curve, err := dist.NormalCurve(c.Samples)
	if err != nil && !errors.Is(err, binomial.ErrDegenerateDistribution) {
		return nil, err
	}
	return &session{
		gen:   gen,
		dist:  dist,
		sim:   sim,
		sel:   selection.New(dist),
		curve: curve,
	}, nil
}

type focus int

const (
	focusChart focus = iota
	focusN
	focusP
	focusSims
)

const (
	inputN = iota
	inputP
	inputSims
)

type model struct {
	cfg Config

	width, height  int
	leftPaneWidth  int
	rightPaneWidth int

	s       *session
	simSnap simulation.Snapshot
	busy    bool
	recent  *recentOutcomes
	metrics *simMetrics

	cursor    int
	hover     int
	hoverPane chartPane
	pointText []string
	rangeText []string

	inputs   [3]textinput.Model
	inputBad [3]bool
	paramMsg string
	simsMsg  string
	focus    focus

	confirmQuit bool
	err         error

	help   help.Model
	plot   *plot.Canvas
	layout chartLayout
}

func newModel(c Config) (*model, error) {
	const (
		defaultWidth  = 100
		defaultHeight = 30
	)

	s, err := newSession(0, c, c.params())
	if err != nil {
		return nil, err
	}

	metrics := newSimMetrics(c.StatsWindow)
	metrics.setEnabled(c.StatsEnabled)

	m := &model{
		cfg:       c,
		s:         s,
		simSnap:   s.sim.Snapshot(),
		recent:    newRecentOutcomes(c.TopK, c.Window),
		metrics:   metrics,
		hover:     -1,
		hoverPane: paneNone,
		help:      help.New(),
	}
	m.inputs[inputN] = newInput("n = ", strconv.Itoa(c.N))
	m.inputs[inputP] = newInput("p = ", strconv.FormatFloat(c.P, 'f', -1, 64))
	m.inputs[inputSims] = newInput("Sims = ", strconv.Itoa(c.Sims))
	m.resize(defaultWidth, defaultHeight)
	return m, nil
}

func newInput(prompt, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.CharLimit = 10
	ti.Width = 10
	ti.SetValue(value)
	return ti
}

type simsDoneMsg struct {
	gen   int
	batch simulation.Batch
	snap  simulation.Snapshot
	took  time.Duration
	err   error
}

// addSimsCmd runs the batch off the event loop. Update does not touch the
// accumulator until the resulting simsDoneMsg arrives, and only batches of
// the current session are counted in the metrics.
func (m *model) addSimsCmd(size int) tui.Cmd {
	s := m.s
	return func() tui.Msg {
		start := time.Now()
		batch, err := s.sim.AddTrials(size)
		took := time.Since(start)
		return simsDoneMsg{gen: s.gen, batch: batch, snap: s.sim.Snapshot(), took: took, err: err}
	}
}

func (m *model) Init() tui.Cmd {
	return nil
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case simsDoneMsg:
		if msg.gen != m.s.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.simsMsg = msg.err.Error()
			log.Printf("add sims: %v", msg.err)
			return m, nil
		}
		m.metrics.observeBatch(msg.batch.Size, m.s.dist.N(), msg.took)
		m.simSnap = msg.snap
		m.recent.observe(msg.batch)
		m.refreshHover()
		log.Printf("added %d sims to %s in %s (total %d)", msg.batch.Size, m.s.dist.Params(), msg.took, msg.snap.Total)
		return m, nil
	case tui.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tui.MouseMsg:
		return m, m.handleMouse(msg)
	case tui.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tui.KeyMsg) tui.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		return tui.Quit
	}
	if m.confirmQuit {
		switch {
		case key.Matches(msg, keys.Confirm):
			return tui.Quit
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Back):
			m.confirmQuit = false
		}
		return nil
	}
	switch {
	case key.Matches(msg, keys.Focus):
		return m.setFocus((m.focus + 1) % 4)
	case key.Matches(msg, keys.FocusBack):
		return m.setFocus((m.focus + 3) % 4)
	case key.Matches(msg, keys.Back):
		return m.setFocus(focusChart)
	}

	if m.focus != focusChart {
		if key.Matches(msg, keys.Select) {
			if m.focus == focusSims {
				return m.addSims()
			}
			m.applyParams()
			return nil
		}
		var cmd tui.Cmd
		i := int(m.focus) - 1
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.confirmQuit = true
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, keys.Select):
		m.selectPoint(m.cursor)
	case key.Matches(msg, keys.Range):
		m.selectRangeEdge(m.cursor)
	case key.Matches(msg, keys.Add):
		return m.addSims()
	case key.Matches(msg, keys.Clear):
		m.clearSims()
	}
	return nil
}

func (m *model) handleMouse(msg tui.MouseMsg) tui.Cmd {
	k, pane, ok := m.layout.barAt(msg.X, msg.Y)
	switch msg.Action {
	case tui.MouseActionMotion:
		if !ok {
			m.hover, m.hoverPane = -1, paneNone
			return nil
		}
		m.hover, m.hoverPane = k, pane
		if pane == paneExact {
			m.cursor = k
		}
	case tui.MouseActionPress:
		// only the exact chart is clickable
		if !ok || pane != paneExact {
			return nil
		}
		m.cursor = k
		switch msg.Button {
		case tui.MouseButtonLeft:
			m.selectPoint(k)
		case tui.MouseButtonRight:
			m.selectRangeEdge(k)
		}
	}
	return nil
}

func (m *model) moveCursor(delta int) {
	m.cursor = min(m.s.dist.N(), max(0, m.cursor+delta))
	m.hover, m.hoverPane = m.cursor, paneExact
}

// refreshHover drops a hover that no longer points at an outcome.
func (m *model) refreshHover() {
	if m.hover > m.s.dist.N() {
		m.hover, m.hoverPane = -1, paneNone
	}
}

func (m *model) selectPoint(k int) {
	res, err := m.s.sel.SelectPoint(k)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.pointText = res.Lines()
}

func (m *model) selectRangeEdge(k int) {
	res, err := m.s.sel.SelectRangeEdge(k)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	switch {
	case res.Displayable():
		m.rangeText = res.Lines()
	case res.Cleared():
		m.rangeText = nil
	}
}

func (m *model) addSims() tui.Cmd {
	if m.busy {
		return nil
	}
	sims, msg := parseSims(m.inputs[inputSims].Value(), m.cfg.limits())
	m.simsMsg = msg
	m.inputBad[inputSims] = msg != ""
	if msg != "" {
		log.Printf("rejected sims %q: %s", m.inputs[inputSims].Value(), msg)
		return nil
	}
	m.busy = true
	return m.addSimsCmd(sims)
}

func (m *model) clearSims() {
	if m.busy {
		return
	}
	m.s.sim.Reset()
	m.simSnap = m.s.sim.Snapshot()
	m.recent.reset()
	m.metrics.observeReset()
}

// applyParams validates the n and p boxes and starts a new session when
// both are valid and differ from the current parameters.
func (m *model) applyParams() {
	limits := m.cfg.limits()
	n, nMsg := parseTrials(m.inputs[inputN].Value(), limits)
	p, pMsg := parseProbability(m.inputs[inputP].Value())
	m.inputBad[inputN] = nMsg != ""
	m.inputBad[inputP] = pMsg != ""
	if nMsg != "" || pMsg != "" {
		m.paramMsg = joinNonEmpty(nMsg, pMsg)
		log.Printf("rejected parameters: %s", m.paramMsg)
		return
	}

	params := binomial.Params{N: n, P: p}
	if params == m.s.dist.Params() {
		m.paramMsg = "n and p match current graph"
		m.inputBad[inputN], m.inputBad[inputP] = true, true
		return
	}

	s, err := newSession(m.s.gen+1, m.cfg, params)
	if err != nil {
		m.paramMsg = err.Error()
		return
	}
	log.Printf("new distribution %s", params)
	m.paramMsg = ""
	m.s = s
	m.simSnap = s.sim.Snapshot()
	m.busy = false
	m.recent.reset()
	m.cursor = min(m.cursor, params.N)
	m.hover, m.hoverPane = -1, paneNone
	m.pointText, m.rangeText = nil, nil
	m.resize(m.width, m.height)
}

func (m *model) setFocus(f focus) tui.Cmd {
	m.focus = f
	var cmd tui.Cmd
	for i := range m.inputs {
		if int(f)-1 == i {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(m.width, m.cfg.ViewSplit)

	// help line + status line
	available := max(1, m.height-2)
	// the chart is wrapped in a border
	innerWidth := max(1, m.rightPaneWidth-2)
	innerHeight := max(1, available-2)
	m.layout = computeChartLayout(m.leftPaneWidth+1, 1, innerWidth, innerHeight, m.s.dist.Outcomes())
	m.resizePlot(innerWidth, m.layout.curveHeight)
}

func (m *model) resizePlot(w int, h int) {
	p := plot.NewCanvas(w, h)
	p.ShowAxis = false
	p.LineColors = []plot.Color{plot.Red}
	if len(m.s.curve) > 0 {
		p.NumDataPoints = len(m.s.curve)
		ys := make([]float64, len(m.s.curve))
		for i, pt := range m.s.curve {
			ys[i] = pt.Y
		}
		p.Fill([][]float64{ys})
	}
	m.plot = &p
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p
	}
	return out
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Range, k.Add, k.Clear, k.Focus, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Select, k.Range},
		{k.Add, k.Clear, k.Focus, k.Back, k.Quit},
	}
}

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	Range     key.Binding
	Add       key.Binding
	Clear     key.Binding
	Focus     key.Binding
	FocusBack key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Range: key.NewBinding(
		key.WithKeys(" ", "r"),
		key.WithHelp("space/r", "range edge"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add sims"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear sims"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "edit n/p/sims"),
	),
	FocusBack: key.NewBinding(
		key.WithKeys("shift+tab"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "chart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N"),
	),
}
