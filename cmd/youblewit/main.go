package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Play       PlayCmd          `cmd:"" help:"Play an interactive game in the terminal"`
	Simulate   SimulateCmd      `cmd:"" help:"Simulate games between two strategies"`
	Tournament TournamentCmd    `cmd:"" help:"Run a round-robin tournament between strategies"`
	Rollout    RolloutCmd       `cmd:"" help:"Run random-policy episodes through the decision environment"`
	Strategies StrategiesCmd    `cmd:"" help:"List the built-in strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("youblewit"),
		kong.Description("Dice-banking game engine, strategies and simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
