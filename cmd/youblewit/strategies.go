package main

import (
	"fmt"

	"github.com/lox/youblewit/internal/strategy"
)

// StrategiesCmd lists the built-in strategies.
type StrategiesCmd struct{}

var strategyDescriptions = map[string]string{
	"basic":     "rolls whenever more than two dice remain, takes everything",
	"threshold": "banks once the turn total clears a per-dice-count threshold",
	"cautious":  "banks early, keeps high-value groups only",
	"gameaware": "threshold play that races when an opponent nears the target",
	"random":    "coin-flip decisions, for baselines",
}

func (c *StrategiesCmd) Run() error {
	for _, name := range strategy.DefaultRegistry().Names() {
		fmt.Printf("%-12s %s\n", name, strategyDescriptions[name])
	}
	return nil
}
