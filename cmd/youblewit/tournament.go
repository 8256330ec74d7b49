package main

import (
	"fmt"
	"time"

	"github.com/lox/youblewit/cmd/youblewit/shared"
	"github.com/lox/youblewit/internal/config"
	"github.com/lox/youblewit/internal/simulator"
	"github.com/lox/youblewit/internal/strategy"
)

// TournamentCmd plays every pairing of the named strategies and prints a
// ranking table.
type TournamentCmd struct {
	Games    int      `default:"1000" help:"Games per pairing"`
	Strategy []string `help:"Strategies to include (default: all built-ins)"`
	Seed     int64    `default:"0" help:"RNG seed (0 for random)"`
	Config   string   `default:"youblewit.hcl" help:"HCL config file for game rules"`
	Workers  int      `default:"0" help:"Parallel games (0 = all CPUs)"`
	Debug    bool     `help:"Enable debug logging"`
}

func (c *TournamentCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	ctx := shared.SetupSignalHandler(logger)

	cfg, err := config.LoadSimConfig(c.Config)
	if err != nil {
		return err
	}

	registry := strategy.DefaultRegistry()
	names := c.Strategy
	if len(names) == 0 {
		names = registry.Names()
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting tournament",
		"strategies", names,
		"games_per_pairing", c.Games,
		"seed", seed)

	rankings, err := simulator.Tournament(ctx, names, c.Games, simulator.Config{
		Seed:     seed,
		Rules:    cfg.GameRules(),
		Workers:  c.Workers,
		Logger:   logger,
		Registry: registry,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n%-4s %-12s %8s %8s %8s\n", "#", "STRATEGY", "GAMES", "WINS", "WIN%")
	for i, r := range rankings {
		fmt.Printf("%-4d %-12s %8d %8d %7.2f%%\n",
			i+1, r.Strategy, r.Games, r.Wins, r.WinRate()*100)
	}
	return nil
}
