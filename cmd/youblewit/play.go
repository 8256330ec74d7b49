package main

import (
	"time"

	"github.com/lox/youblewit/cmd/youblewit/shared"
	"github.com/lox/youblewit/internal/config"
	"github.com/lox/youblewit/internal/tui"
)

// PlayCmd runs an interactive game in the terminal.
type PlayCmd struct {
	Opponent string `default:"threshold" help:"Opponent strategy (empty for a solo game)"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	Config   string `default:"youblewit.hcl" help:"HCL config file for game rules"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.LoadSimConfig(c.Config)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return tui.Run(tui.Config{
		Rules:    cfg.GameRules(),
		Seed:     seed,
		Opponent: c.Opponent,
		Logger:   logger,
	})
}
