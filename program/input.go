package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keilerkonzept/binomial-machine-tui/binomial"
)

// parseTrials checks the n entry box. A non-empty message means the input
// was rejected.
func parseTrials(s string, limits binomial.Limits) (int, string) {
	limits = limits.Normalize()
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, "n must be an integer"
	}
	if n <= 0 {
		return 0, "n must be greater than 0"
	}
	if n >= limits.MaxTrials {
		return 0, fmt.Sprintf("n must be less than %d for performance purposes", limits.MaxTrials)
	}
	return n, ""
}

func parseProbability(s string) (float64, string) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, "p must be a decimal value"
	}
	if !(0 <= p && p <= 1) {
		return 0, "p must be between 0 and 1 (inclusive)"
	}
	return p, ""
}

// parseSims checks the sims entry box. Unlike AddTrials, which accepts an
// empty batch, the box asks for a positive number.
func parseSims(s string, limits binomial.Limits) (int, string) {
	limits = limits.Normalize()
	sims, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, "Sims must be an integer"
	}
	if sims <= 0 {
		return 0, "Sims must be positive"
	}
	if sims >= limits.MaxBatch {
		return 0, fmt.Sprintf("Sims must be less than %d for performance purposes", limits.MaxBatch)
	}
	return sims, ""
}
