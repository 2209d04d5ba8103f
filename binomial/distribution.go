// Package binomial computes exact binomial probabilities and the normal
// approximation of a binomial distribution.
//
// A Distribution is immutable once built: the probability mass of every
// outcome 0..n is computed eagerly by New, together with its running sums,
// so point, cumulative and range queries are table lookups.
package binomial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is the exact binomial distribution for one Params.
type Distribution struct {
	params Params
	pmf    []float64
	// le[k] = P(X <= k)
	le     []float64
	normal distuv.Normal
}

// New builds the exact distribution for params, rejecting parameters outside limits.
func New(params Params, limits Limits) (*Distribution, error) {
	if err := params.Validate(limits); err != nil {
		return nil, err
	}
	d := &Distribution{
		params: params,
		pmf:    pmf(params.N, params.P),
		normal: distuv.Normal{Mu: params.Mean(), Sigma: params.StdDev()},
	}
	d.le = make([]float64, len(d.pmf))
	total := 0.0
	for k, v := range d.pmf {
		total += v
		d.le[k] = total
	}
	return d, nil
}

// pmf evaluates C(n,k)·p^k·(1-p)^(n-k) for k in 0..n. C(n,k) follows the
// multiplicative recurrence C(n,k) = C(n,k-1)·(n-k+1)/k.
func pmf(n int, p float64) []float64 {
	out := make([]float64, n+1)
	c := 1.0
	for k := 0; k <= n; k++ {
		if k > 0 {
			c = c * float64(n-k+1) / float64(k)
		}
		out[k] = c * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
	}
	return out
}

func (d *Distribution) Params() Params { return d.params }
func (d *Distribution) N() int { return d.params.N }
func (d *Distribution) Mean() float64 { return d.params.Mean() }
func (d *Distribution) Variance() float64 { return d.params.Variance() }
func (d *Distribution) StdDev() float64 { return d.params.StdDev() }
func (d *Distribution) Degenerate() bool { return d.params.StdDev() == 0 }
func (d *Distribution) Outcomes() int { return len(d.pmf) }
func (d *Distribution) MaxProbability() float64 { return floats.Max(d.pmf) }

// PMF returns a copy of the probability of every outcome, indexed by k.
func (d *Distribution) PMF() []float64 {
	out := make([]float64, len(d.pmf))
	copy(out, d.pmf)
	return out
}

func (d *Distribution) checkOutcome(k int) error {
	if k < 0 || k > d.params.N {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrOutOfRange, k, d.params.N)
	}
	return nil
}

// Point returns P(X=k).
func (d *Distribution) Point(k int) (float64, error) {
	if err := d.checkOutcome(k); err != nil {
		return 0, err
	}
	return d.pmf[k], nil
}

// Cumulative returns P(X <mode> k). Every mode is derived from P(X<=k)
// and P(X=k).
func (d *Distribution) Cumulative(k int, mode Mode) (float64, error) {
	if err := d.checkOutcome(k); err != nil {
		return 0, err
	}
	if !mode.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	le, eq := d.le[k], d.pmf[k]
	var v float64
	switch mode {
	case Equal:
		v = eq
	case LessOrEqual:
		v = le
	case Greater:
		v = 1 - le
	case Less:
		v = le - eq
	case GreaterOrEqual:
		v = 1 - le + eq
	}
	return clamp01(v), nil
}

// ModeProbability is one line of a cumulative breakdown.
type ModeProbability struct {
	Mode        Mode
	Outcome     int
	Probability float64
}

func (m ModeProbability) String() string {
	return fmt.Sprintf("P(X%s%d) = %.5f", m.Mode, m.Outcome, m.Probability)
}

// Breakdown returns the cumulative probability at k under every mode, in
// the order of Modes.
func (d *Distribution) Breakdown(k int) ([]ModeProbability, error) {
	out := make([]ModeProbability, 0, len(Modes))
	for _, mode := range Modes {
		v, err := d.Cumulative(k, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, ModeProbability{Mode: mode, Outcome: k, Probability: v})
	}
	return out, nil
}

// Range returns P(left <= X <= right).
func (d *Distribution) Range(left, right int) (float64, error) {
	if left > right {
		return 0, fmt.Errorf("%w: left %d > right %d", ErrInvalidRange, left, right)
	}
	if err := d.checkOutcome(left); err != nil {
		return 0, err
	}
	if err := d.checkOutcome(right); err != nil {
		return 0, err
	}
	return clamp01(floats.Sum(d.pmf[left : right+1])), nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
