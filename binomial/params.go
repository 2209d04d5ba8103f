package binomial

import (
	"fmt"
	"math"
)

const (
	DefaultTrials       = 10
	DefaultProbability  = 0.5
	DefaultMaxTrials    = 73
	DefaultMaxBatch     = 100_000
	DefaultCurveSamples = 100
)

// Limits bounds the input domain. Both bounds are exclusive.
// A zero field means the default.
type Limits struct {
	MaxTrials int
	MaxBatch  int
}

func DefaultLimits() Limits {
	return Limits{MaxTrials: DefaultMaxTrials, MaxBatch: DefaultMaxBatch}
}

// Normalize fills zero fields with their defaults.
func (l Limits) Normalize() Limits {
	if l.MaxTrials <= 0 {
		l.MaxTrials = DefaultMaxTrials
	}
	if l.MaxBatch <= 0 {
		l.MaxBatch = DefaultMaxBatch
	}
	return l
}

// Params are the parameters of a binomial distribution: N trials with
// success probability P each.
type Params struct {
	N int
	P float64
}

func DefaultParams() Params {
	return Params{N: DefaultTrials, P: DefaultProbability}
}

// Validate reports ErrInvalidParameter unless 1 <= N < MaxTrials and P is in [0,1].
func (p Params) Validate(limits Limits) error {
	limits = limits.Normalize()
	if p.N < 1 {
		return fmt.Errorf("%w: n must be greater than 0 (got %d)", ErrInvalidParameter, p.N)
	}
	if p.N >= limits.MaxTrials {
		return fmt.Errorf("%w: n must be less than %d (got %d)", ErrInvalidParameter, limits.MaxTrials, p.N)
	}
	if math.IsNaN(p.P) || p.P < 0 || p.P > 1 {
		return fmt.Errorf("%w: p must be between 0 and 1 inclusive (got %v)", ErrInvalidParameter, p.P)
	}
	return nil
}

func (p Params) Mean() float64 { return float64(p.N) * p.P }

func (p Params) Variance() float64 { return float64(p.N) * p.P * (1 - p.P) }

func (p Params) StdDev() float64 { return math.Sqrt(p.Variance()) }

func (p Params) String() string { return fmt.Sprintf("n=%d p=%g", p.N, p.P) }
