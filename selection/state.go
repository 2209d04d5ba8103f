package selection

// Phase is the progress of a two-click range selection.
type Phase int

const (
	Unselected Phase = iota
	LeftSet
	RangeSet
)

func (p Phase) String() string {
	switch p {
	case Unselected:
		return "unselected"
	case LeftSet:
		return "left-set"
	case RangeSet:
		return "range-set"
	}
	return "unknown"
}

// RangeState is an inclusive range being picked edge by edge.
// Left is meaningful from LeftSet on, Right only in RangeSet, and
// Left <= Right always holds in RangeSet.
type RangeState struct {
	Phase Phase
	Left  int
	Right int
}

// Next applies one click on outcome k:
// Unselected -> LeftSet -> RangeSet -> Unselected.
func (s RangeState) Next(k int) RangeState {
	switch s.Phase {
	case Unselected:
		return RangeState{Phase: LeftSet, Left: k}
	case LeftSet:
		left, right := s.Left, k
		if right < left {
			left, right = right, left
		}
		return RangeState{Phase: RangeSet, Left: left, Right: right}
	default:
		return RangeState{}
	}
}

// Contains reports whether k lies in a completed range.
func (s RangeState) Contains(k int) bool {
	return s.Phase == RangeSet && s.Left <= k && k <= s.Right
}

// PointState is an optional single selected outcome.
type PointState struct {
	Outcome  int
	Selected bool
}

// Toggle selects k, or clears the selection when k is already selected.
func (s PointState) Toggle(k int) PointState {
	if s.Selected && s.Outcome == k {
		return PointState{}
	}
	return PointState{Outcome: k, Selected: true}
}
