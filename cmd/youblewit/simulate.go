package main

import (
	"fmt"
	"time"

	"github.com/lox/youblewit/cmd/youblewit/shared"
	"github.com/lox/youblewit/internal/config"
	"github.com/lox/youblewit/internal/results"
	"github.com/lox/youblewit/internal/simulator"
	"github.com/lox/youblewit/internal/statistics"
	"github.com/lox/youblewit/internal/strategy"
)

// SimulateCmd runs one matchup between two strategies.
type SimulateCmd struct {
	Games     int      `default:"10000" help:"Number of games to simulate"`
	Strategy  []string `default:"basic,cautious" help:"Strategies to pit against each other"`
	Seed      int64    `default:"0" help:"RNG seed (0 for random)"`
	Config    string   `default:"youblewit.hcl" help:"HCL config file for game rules"`
	ResultsDB string   `help:"SQLite database to persist game results"`
	Workers   int      `default:"0" help:"Parallel games (0 = all CPUs)"`
	Debug     bool     `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	driver, err := config.DriverFromEnv()
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(c.Debug || driver.Debug)
	ctx := shared.SetupSignalHandler(logger)

	cfg, err := config.LoadSimConfig(c.Config)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = driver.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting simulation",
		"games", c.Games,
		"strategies", c.Strategy,
		"seed", seed)

	var store *results.Store
	dbPath := c.ResultsDB
	if dbPath == "" {
		dbPath = driver.ResultsDB
	}
	if dbPath != "" {
		store, err = results.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	sim := simulator.New(simulator.Config{
		Games:      c.Games,
		Strategies: c.Strategy,
		Seed:       seed,
		Rules:      cfg.GameRules(),
		Workers:    c.Workers,
		Logger:     logger,
		Registry:   strategy.DefaultRegistry(),
		Store:      store,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printSummary(stats, c.Strategy, seed, elapsed)
	return nil
}

func printSummary(stats *statistics.Statistics, names []string, seed int64, elapsed time.Duration) {
	fmt.Printf("\n=== RESULTS: %s ===\n", joinVs(names))
	fmt.Printf("Games played: %d in %s (seed %d)\n", stats.Games, elapsed.Round(time.Millisecond), seed)

	for i, name := range names {
		fmt.Printf("%-12s win rate %.2f%%, mean score %.0f\n",
			name, stats.WinRate(i)*100, stats.MeanScore(i))
	}

	low, high := stats.ConfidenceInterval95()
	fmt.Printf("\nGame length: mean %.2f turns (95%% CI [%.2f, %.2f]), median %.1f\n",
		stats.MeanTurns(), low, high, stats.MedianTurns())
	fmt.Printf("Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25),
		stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Printf("Margins: mean %.0f, max %d, walkovers %d (%.1f%%)\n",
		stats.MeanMargin(), stats.MaxMargin, stats.Walkovers,
		float64(stats.Walkovers)/float64(stats.Games)*100)
}

func joinVs(names []string) string {
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " vs "
		}
		out += name
	}
	return out
}
