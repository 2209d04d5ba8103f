// Package selection turns chart interactions (hover, point select, range
// select) into probability queries and display-ready results.
package selection

import (
	"errors"
	"fmt"

	"github.com/keilerkonzept/binomial-machine-tui/binomial"
	"github.com/keilerkonzept/binomial-machine-tui/simulation"
)

// ContinuityCorrection widens a discrete range before evaluating the
// normal CDF.
const ContinuityCorrection = 0.5

// Adapter holds the point and range selection over one distribution.
type Adapter struct {
	dist  *binomial.Distribution
	point PointState
	rng   RangeState
}

// New returns an adapter with nothing selected.
func New(dist *binomial.Distribution) *Adapter {
	return &Adapter{dist: dist}
}

func (a *Adapter) SelectedPoint() (int, bool) { return a.point.Outcome, a.point.Selected }
func (a *Adapter) Range() RangeState { return a.rng }
func (a *Adapter) InRange(k int) bool { return a.rng.Contains(k) }

// PointResult is the outcome of a point selection. A cleared result means
// the point display should be emptied.
type PointResult struct {
	Cleared   bool
	Outcome   int
	Breakdown []binomial.ModeProbability
}

func (r PointResult) Lines() []string {
	if r.Cleared {
		return nil
	}
	lines := make([]string, len(r.Breakdown))
	for i, mp := range r.Breakdown {
		lines[i] = mp.String()
	}
	return lines
}

// SelectPoint toggles the selection of outcome k.
func (a *Adapter) SelectPoint(k int) (PointResult, error) {
	if _, err := a.dist.Point(k); err != nil {
		return PointResult{}, err
	}
	next := a.point.Toggle(k)
	if !next.Selected {
		a.point = next
		return PointResult{Cleared: true}, nil
	}
	breakdown, err := a.dist.Breakdown(k)
	if err != nil {
		return PointResult{}, err
	}
	a.point = next
	return PointResult{Outcome: k, Breakdown: breakdown}, nil
}

// RangeResult is the outcome of one range-edge click.
type RangeResult struct {
	Phase       Phase
	Left, Right int
	Exact       float64
	// Normal is the continuity-corrected approximation; it is missing for
	// a degenerate distribution.
	Normal          float64
	NormalAvailable bool
}

// Displayable reports whether there is a probability to show.
func (r RangeResult) Displayable() bool { return r.Phase == RangeSet }

// Cleared reports whether the range display should be emptied.
func (r RangeResult) Cleared() bool { return r.Phase == Unselected }

func (r RangeResult) Lines() []string {
	if !r.Displayable() {
		return nil
	}
	lines := []string{fmt.Sprintf("P(%d<=X<=%d) = %.5f", r.Left, r.Right, r.Exact), ""}
	if r.NormalAvailable {
		return append(lines, fmt.Sprintf("Normal Approx = %.5f", r.Normal))
	}
	return append(lines, "Normal Approx = n/a (σ = 0)")
}

// SelectRangeEdge feeds one click into the range selection.
func (a *Adapter) SelectRangeEdge(k int) (RangeResult, error) {
	if _, err := a.dist.Point(k); err != nil {
		return RangeResult{}, err
	}
	next := a.rng.Next(k)
	res := RangeResult{Phase: next.Phase, Left: next.Left, Right: next.Right}
	if next.Phase != RangeSet {
		a.rng = next
		return res, nil
	}

	exact, err := a.dist.Range(next.Left, next.Right)
	if err != nil {
		return RangeResult{}, err
	}
	res.Exact = exact
	normal, err := a.dist.NormalCDF(float64(next.Left)-ContinuityCorrection, float64(next.Right)+ContinuityCorrection)
	switch {
	case err == nil:
		res.Normal, res.NormalAvailable = normal, true
	case !errors.Is(err, binomial.ErrDegenerateDistribution):
		return RangeResult{}, err
	}
	a.rng = next
	return res, nil
}

// ClearRange drops any partial or complete range.
func (a *Adapter) ClearRange() { a.rng = RangeState{} }

// HoverResult annotates a hovered bar.
type HoverResult struct {
	Outcome     int
	Probability float64
	// Simulated is the observed frequency; valid when Total > 0.
	Simulated float64
	Total     int
}

func (h HoverResult) String() string {
	return fmt.Sprintf("P(X=%d)\n = %.5f", h.Outcome, h.Probability)
}

// Hover returns the exact probability of k.
func (a *Adapter) Hover(k int) (HoverResult, error) {
	v, err := a.dist.Point(k)
	if err != nil {
		return HoverResult{}, err
	}
	return HoverResult{Outcome: k, Probability: v}, nil
}

// HoverSimulated returns the exact probability of k together with its
// frequency in snap.
func (a *Adapter) HoverSimulated(k int, snap simulation.Snapshot) (HoverResult, error) {
	h, err := a.Hover(k)
	if err != nil {
		return HoverResult{}, err
	}
	if k < len(snap.Frequencies) {
		h.Simulated = snap.Frequencies[k]
		h.Total = snap.Total
	}
	return h, nil
}
