package main

import (
	"sort"
	"strconv"

	"github.com/keilerkonzept/topk/heap"
	"github.com/keilerkonzept/topk/sliding"

	"github.com/keilerkonzept/binomial-machine-tui/simulation"
)

const (
	recentSketchWidth = 1024
	recentSketchDepth = 3
)

// recentOutcomes ranks the most frequent outcomes over the last `window`
// simulation batches. Each batch is one tick of a sliding top-k sketch.
type recentOutcomes struct {
	k      int
	window int
	sketch *sliding.Sketch
	items  []heap.Item
}

func newRecentOutcomes(k, window int) *recentOutcomes {
	r := &recentOutcomes{
		k:      max(1, k),
		window: max(1, window),
	}
	r.reset()
	return r
}

func (r *recentOutcomes) reset() {
	r.sketch = sliding.New(r.k, r.window,
		sliding.WithWidth(recentSketchWidth),
		sliding.WithDepth(recentSketchDepth),
	)
	r.items = nil
}

// observe advances the window by one batch and adds its outcome counts.
func (r *recentOutcomes) observe(batch simulation.Batch) {
	if batch.Size == 0 {
		return
	}
	r.sketch.Ticks(1)
	for outcome, c := range batch.Counts {
		if c > 0 {
			r.sketch.Add(strconv.Itoa(outcome), uint32(c))
		}
	}
	r.refresh()
}

func (r *recentOutcomes) refresh() {
	items := cloneItems(r.sketch.SortedSlice())
	for i := range items {
		items[i].Count = r.sketch.Count(items[i].Item)
	}
	items = rankItems(items)
	if len(items) > r.k {
		items = items[:r.k]
	}
	r.items = items
}

type leader struct {
	Outcome int
	Count   uint32
}

func (r *recentOutcomes) leaders() []leader {
	out := make([]leader, 0, len(r.items))
	for _, item := range r.items {
		outcome, err := strconv.Atoi(item.Item)
		if err != nil || item.Count == 0 {
			continue
		}
		out = append(out, leader{Outcome: outcome, Count: item.Count})
	}
	return out
}

// rankItems orders by count (descending), ties by outcome (ascending).
func rankItems(items []heap.Item) []heap.Item {
	sort.SliceStable(items, func(i, j int) bool {
		li := items[i]
		lj := items[j]
		if li.Count != lj.Count {
			return li.Count > lj.Count
		}
		return outcomeKey(li.Item) < outcomeKey(lj.Item)
	})
	return items
}

func outcomeKey(item string) int {
	k, err := strconv.Atoi(item)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return k
}

func cloneItems(in []heap.Item) []heap.Item {
	out := make([]heap.Item, len(in))
	copy(out, in)
	return out
}
