package binomial

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Point2 is a sample (X, Y) of a continuous curve.
type Point2 struct {
	X, Y float64
}

// NormalCurve samples the density of the approximating normal N(np, np(1-p))
// at `samples` evenly spaced points spanning μ-3σ .. μ+3σ. samples == 0
// means DefaultCurveSamples.
func (d *Distribution) NormalCurve(samples int) ([]Point2, error) {
	if samples < 0 {
		return nil, fmt.Errorf("%w: sample count %d", ErrInvalidArgument, samples)
	}
	if samples == 0 {
		samples = DefaultCurveSamples
	}
	if d.Degenerate() {
		return nil, fmt.Errorf("%w: σ = 0 for %s", ErrDegenerateDistribution, d.params)
	}
	mu, sigma := d.normal.Mu, d.normal.Sigma
	xs := make([]float64, samples)
	if samples == 1 {
		xs[0] = mu
	} else {
		floats.Span(xs, mu-3*sigma, mu+3*sigma)
	}
	out := make([]Point2, samples)
	for i, x := range xs {
		out[i] = Point2{X: x, Y: d.normal.Prob(x)}
	}
	return out, nil
}

// NormalDensity is the approximating normal density at x.
func (d *Distribution) NormalDensity(x float64) (float64, error) {
	if d.Degenerate() {
		return 0, fmt.Errorf("%w: σ = 0 for %s", ErrDegenerateDistribution, d.params)
	}
	return d.normal.Prob(x), nil
}

// NormalCDF returns Φ((right-μ)/σ) - Φ((left-μ)/σ). Continuity correction
// is up to the caller.
func (d *Distribution) NormalCDF(left, right float64) (float64, error) {
	if d.Degenerate() {
		return 0, fmt.Errorf("%w: σ = 0 for %s", ErrDegenerateDistribution, d.params)
	}
	return d.normal.CDF(right) - d.normal.CDF(left), nil
}
