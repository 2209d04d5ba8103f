package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	styles "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/keilerkonzept/binomial-machine-tui/binomial"
)

// writeReport prints the exact, normal and simulated distribution for the
// configured parameters. Used when there is no terminal to draw on.
func writeReport(w io.Writer, c Config) error {
	s, err := newSession(0, c, c.params())
	if err != nil {
		return err
	}
	if c.Sims > 0 {
		start := time.Now()
		if _, err := s.sim.AddTrials(c.Sims); err != nil {
			return err
		}
		log.Printf("report: %d sims for %s in %s", c.Sims, s.dist.Params(), time.Since(start))
	}
	snap := s.sim.Snapshot()

	t := table.New().
		Border(styles.NormalBorder()).
		Headers("k", "P(X=k)", "P(X<=k)", "normal pdf", "count", "simulated")
	for k := 0; k <= s.dist.N(); k++ {
		point, _ := s.dist.Point(k)
		le, _ := s.dist.Cumulative(k, binomial.LessOrEqual)
		density := "n/a"
		if v, err := s.dist.NormalDensity(float64(k)); err == nil {
			density = formatProbability(v)
		} else if !errors.Is(err, binomial.ErrDegenerateDistribution) {
			return err
		}
		count, err := s.sim.Count(k)
		if err != nil {
			return err
		}
		t.Row(
			strconv.Itoa(k),
			formatProbability(point),
			formatProbability(le),
			density,
			strconv.Itoa(count),
			formatProbability(snap.Frequencies[k]),
		)
	}

	_, err = fmt.Fprintf(w, "The Binomial Machine  %s  μ=%.4f σ=%.4f  sims=%d\n%s\n",
		s.dist.Params(), s.dist.Mean(), s.dist.StdDev(), snap.Total, t.Render())
	return err
}

func formatProbability(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}
