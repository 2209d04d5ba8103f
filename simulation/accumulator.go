// Package simulation runs Monte-Carlo batches of binomial experiments and
// keeps running outcome counts and frequencies.
package simulation

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/keilerkonzept/binomial-machine-tui/binomial"
)

// Accumulator owns the simulation state for one (n, p). It is not safe for
// concurrent use.
//
// Two states exist: empty (Total() == 0) and populated. AddTrials moves to
// populated, Reset moves back to empty.
type Accumulator struct {
	params   binomial.Params
	maxBatch int
	rng      *rand.Rand

	total   int
	counts  []int
	freqs   []float64
	version uint64
}

type options struct {
	seed    uint64
	hasSeed bool
}

type Option func(*options)

// WithSeed makes the draws reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// New returns an empty accumulator over outcomes 0..params.N.
func New(params binomial.Params, limits binomial.Limits, opts ...Option) (*Accumulator, error) {
	if err := params.Validate(limits); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasSeed {
		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		o.seed = seed
	}
	return &Accumulator{
		params:   params,
		maxBatch: limits.Normalize().MaxBatch,
		rng:      rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)),
		counts:   make([]int, params.N+1),
		freqs:    make([]float64, params.N+1),
	}, nil
}

// NewSeed reads a seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Batch records what a single AddTrials call observed.
type Batch struct {
	Size int
	// Counts[k] is how many experiments of this batch had k successes.
	Counts []int
}

// AddTrials runs size experiments of n Bernoulli(p) draws each and folds
// the outcomes into the running counts. size == 0 is a no-op.
func (a *Accumulator) AddTrials(size int) (Batch, error) {
	if size < 0 {
		return Batch{}, fmt.Errorf("%w: batch size %d is negative", binomial.ErrInvalidArgument, size)
	}
	if size >= a.maxBatch {
		return Batch{}, fmt.Errorf("%w: batch size must be less than %d (got %d)", binomial.ErrInvalidArgument, a.maxBatch, size)
	}
	if size == 0 {
		return Batch{}, nil
	}

	n, p := a.params.N, a.params.P
	batch := Batch{Size: size, Counts: make([]int, n+1)}
	for range size {
		x := 0
		for range n {
			if a.rng.Float64() < p {
				x++
			}
		}
		batch.Counts[x]++
	}

	for k, c := range batch.Counts {
		a.counts[k] += c
	}
	a.total += size
	a.recompute()
	return batch, nil
}

// Reset discards every simulated experiment.
func (a *Accumulator) Reset() {
	if a.total == 0 {
		return
	}
	a.total = 0
	clear(a.counts)
	a.recompute()
}

func (a *Accumulator) recompute() {
	a.version++
	if a.total == 0 {
		clear(a.freqs)
		return
	}
	total := float64(a.total)
	for k, c := range a.counts {
		a.freqs[k] = float64(c) / total
	}
}

func (a *Accumulator) checkOutcome(k int) error {
	if k < 0 || k > a.params.N {
		return fmt.Errorf("%w: %d not in [0,%d]", binomial.ErrOutOfRange, k, a.params.N)
	}
	return nil
}

// Frequency returns count(k)/total, or 0 when nothing was simulated yet.
func (a *Accumulator) Frequency(k int) (float64, error) {
	if err := a.checkOutcome(k); err != nil {
		return 0, err
	}
	return a.freqs[k], nil
}

func (a *Accumulator) Count(k int) (int, error) {
	if err := a.checkOutcome(k); err != nil {
		return 0, err
	}
	return a.counts[k], nil
}

func (a *Accumulator) Params() binomial.Params { return a.params }
func (a *Accumulator) Total() int { return a.total }
func (a *Accumulator) Empty() bool { return a.total == 0 }

// Version increases on every change of the counts.
func (a *Accumulator) Version() uint64 { return a.version }

// Snapshot is a copy of the simulation state at one version.
type Snapshot struct {
	Version     uint64
	Total       int
	Counts      []int
	Frequencies []float64
}

func (a *Accumulator) Snapshot() Snapshot {
	s := Snapshot{
		Version:     a.version,
		Total:       a.total,
		Counts:      make([]int, len(a.counts)),
		Frequencies: make([]float64, len(a.freqs)),
	}
	copy(s.Counts, a.counts)
	copy(s.Frequencies, a.freqs)
	return s
}

// MaxFrequency is the largest frequency in the snapshot, 0 when empty.
func (s Snapshot) MaxFrequency() float64 {
	m := 0.0
	for _, f := range s.Frequencies {
		m = max(m, f)
	}
	return m
}
