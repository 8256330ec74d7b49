package main

import (
	"fmt"
	"time"

	"github.com/lox/youblewit/cmd/youblewit/shared"
	"github.com/lox/youblewit/internal/config"
	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/env"
	"github.com/lox/youblewit/internal/strategy"
)

// RolloutCmd runs episodes through the decision environment with a
// uniform-random policy over the legal actions. Useful for smoke-testing
// the environment contract and for reward baselines.
type RolloutCmd struct {
	Episodes int    `default:"100" help:"Number of episodes to run"`
	Opponent string `help:"Opponent strategy for 1v1 episodes (empty = solo)"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	Config   string `default:"youblewit.hcl" help:"HCL config file for game rules"`
	Extended bool   `help:"Print the extended observation for the first episode"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *RolloutCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.LoadSimConfig(c.Config)
	if err != nil {
		return err
	}
	rules := cfg.GameRules()

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := dice.NewRNG(seed)

	var e *env.Env
	if c.Opponent != "" {
		opp, err := strategy.DefaultRegistry().New(c.Opponent, rng)
		if err != nil {
			return err
		}
		e = env.New1v1(rules, rng, logger, opp)
	} else {
		e = env.New(rules, rng, logger)
	}

	var totalReward float64
	var totalSteps, wins, losses int
	for ep := 0; ep < c.Episodes; ep++ {
		e.Reset()
		for {
			if c.Extended && ep == 0 {
				fmt.Println(env.FormatObservation(e.ExtendedObservation()))
			}
			legal := e.LegalActions()
			action := legal[rng.IntN(len(legal))]
			result, err := e.Step(action)
			if err != nil {
				return err
			}
			totalReward += result.Reward
			totalSteps++
			switch result.Result {
			case "win":
				wins++
			case "loss":
				losses++
			}
			if result.Done {
				break
			}
		}
	}

	fmt.Printf("Episodes: %d, steps: %d (%.1f per episode)\n",
		c.Episodes, totalSteps, float64(totalSteps)/float64(c.Episodes))
	fmt.Printf("Mean reward per episode: %.2f\n", totalReward/float64(c.Episodes))
	if c.Opponent != "" {
		fmt.Printf("Record vs %s: %d-%d (%.1f%% wins)\n",
			c.Opponent, wins, losses, float64(wins)/float64(c.Episodes)*100)
	}
	return nil
}
