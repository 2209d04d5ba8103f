package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/keilerkonzept/binomial-machine-tui/binomial"
)

type Config struct {
	// distribution
	N        int     `env:"BINOMIAL_N"`
	P        float64 `env:"BINOMIAL_P"`
	MaxN     int     `env:"BINOMIAL_MAX_N"`
	MaxSims  int     `env:"BINOMIAL_MAX_SIMS"`
	Samples  int     `env:"BINOMIAL_CURVE_SAMPLES"`
	Sims     int     `env:"BINOMIAL_SIMS"`
	Seed     uint64  `env:"BINOMIAL_SEED"`
	TopK     int     `env:"BINOMIAL_TOP_K"`
	Window   int     `env:"BINOMIAL_WINDOW"`
	Report   bool    `env:"BINOMIAL_REPORT"`
	LogPath  string  `env:"BINOMIAL_LOG"`

	// render
	ViewSplit    int  `env:"BINOMIAL_VIEW_SPLIT"`
	StatsEnabled bool `env:"BINOMIAL_STATS"`
	StatsWindow  int  `env:"BINOMIAL_STATS_WINDOW"`
	AltScreen    bool `env:"BINOMIAL_ALT_SCREEN"`
}

var config = Config{
	N:       binomial.DefaultTrials,
	P:       binomial.DefaultProbability,
	MaxN:    binomial.DefaultMaxTrials,
	MaxSims: binomial.DefaultMaxBatch,
	Samples: binomial.DefaultCurveSamples,
	Sims:    100,
	Seed:    0,
	TopK:    5,
	Window:  10,

	ViewSplit:    30,
	StatsEnabled: true,
	StatsWindow:  256,
	AltScreen:    true,
}

func main() {
	log.SetOutput(io.Discard)
	if err := env.Parse(&config); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("parse env: %w", err))
		os.Exit(2)
	}

	flag.IntVar(&config.N, "n", config.N, "Number of trials")
	flag.Float64Var(&config.P, "p", config.P, "Success probability of a single trial")
	flag.IntVar(&config.MaxN, "max-n", config.MaxN, "Reject n at or above this bound")
	flag.IntVar(&config.MaxSims, "max-sims", config.MaxSims, "Reject simulation batches at or above this size")
	flag.IntVar(&config.Samples, "curve-samples", config.Samples, "Points sampled along the normal approximation curve")
	flag.IntVar(&config.Sims, "sims", config.Sims, "Default simulation batch size")
	flag.Uint64Var(&config.Seed, "seed", config.Seed, "Seed for the simulation (0 = random)")
	flag.IntVar(&config.TopK, "k", config.TopK, "Show the top K outcomes of the recent batches")
	flag.IntVar(&config.Window, "window", config.Window, "Number of recent simulation batches ranked by the leaders panel")
	flag.BoolVar(&config.Report, "report", config.Report, "Print a probability table and exit instead of starting the TUI")
	flag.StringVar(&config.LogPath, "log", config.LogPath, "Append debug logs to this file")
	flag.IntVar(&config.ViewSplit, "view-split", config.ViewSplit, "Split the view at this % of the total screen width [20,80]")
	flag.BoolVar(&config.StatsEnabled, "stats", config.StatsEnabled, "Show simulation performance stats")
	flag.IntVar(&config.StatsWindow, "stats-window", config.StatsWindow, "Number of recent batch latencies kept")
	flag.BoolVar(&config.AltScreen, "alt-screen", config.AltScreen, "Use the terminal alternate screen buffer (recommended inside IDE terminals)")

	flag.Parse()

	if err := validateAndNormalizeConfig(&config); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	if config.LogPath != "" {
		f, err := tui.LogToFile(config.LogPath, "binomial")
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatal(err)
		}
		defer func() { _ = f.Close() }()
	}

	if config.Report || !term.IsTerminal(os.Stdout.Fd()) {
		if err := writeReport(os.Stdout, config); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatal(err)
		}
		return
	}

	m, err := newModel(config)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	opts := []tui.ProgramOption{tui.WithMouseAllMotion()}
	if config.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	if _, err := tui.NewProgram(m, opts...).Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func (c Config) limits() binomial.Limits {
	return binomial.Limits{MaxTrials: c.MaxN, MaxBatch: c.MaxSims}
}

func (c Config) params() binomial.Params {
	return binomial.Params{N: c.N, P: c.P}
}

func validateAndNormalizeConfig(c *Config) error {
	if c.MaxN < 2 {
		return fmt.Errorf("-max-n must be >= 2")
	}
	if c.MaxSims < 2 {
		return fmt.Errorf("-max-sims must be >= 2")
	}
	if c.N < 1 {
		return fmt.Errorf("-n must be >= 1")
	}
	if c.N >= c.MaxN {
		return fmt.Errorf("-n must be < -max-n (got n=%d max-n=%d)", c.N, c.MaxN)
	}
	if math.IsNaN(c.P) || c.P < 0 || c.P > 1 {
		return fmt.Errorf("-p must be in [0,1]")
	}
	if c.Samples < 1 {
		return fmt.Errorf("-curve-samples must be >= 1")
	}
	if c.Sims < 0 {
		return fmt.Errorf("-sims must be >= 0")
	}
	if c.Sims >= c.MaxSims {
		return fmt.Errorf("-sims must be < -max-sims (got sims=%d max-sims=%d)", c.Sims, c.MaxSims)
	}
	if c.TopK < 1 {
		return fmt.Errorf("-k must be >= 1")
	}
	if c.Window < 1 {
		return fmt.Errorf("-window must be >= 1")
	}
	c.ViewSplit = max(20, c.ViewSplit)
	c.ViewSplit = min(80, c.ViewSplit)
	if c.StatsWindow < 16 {
		c.StatsWindow = 16
	}
	return nil
}
