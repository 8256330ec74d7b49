// Package config loads simulation configuration from HCL files and
// environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/youblewit/internal/game"
)

// SimConfig is the complete simulation configuration.
type SimConfig struct {
	Rules    RulesConfig     `hcl:"rules,block"`
	Matchups []MatchupConfig `hcl:"matchup,block"`
}

// RulesConfig holds the game rule constants.
type RulesConfig struct {
	TargetScore  int `hcl:"target_score,optional"`
	MinFirstBank int `hcl:"min_first_bank,optional"`
	MaxTurns     int `hcl:"max_turns,optional"`
}

// MatchupConfig defines one strategy pairing to simulate.
type MatchupConfig struct {
	Name       string   `hcl:"name,label"`
	Strategies []string `hcl:"strategies"`
	Games      int      `hcl:"games,optional"`
}

// DefaultSimConfig returns the standard rule set and a small default
// matchup slate.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		Rules: RulesConfig{
			TargetScore:  10000,
			MinFirstBank: 1000,
		},
		Matchups: []MatchupConfig{
			{Name: "basic-vs-cautious", Strategies: []string{"basic", "cautious"}, Games: 1000},
			{Name: "threshold-vs-gameaware", Strategies: []string{"threshold", "gameaware"}, Games: 1000},
		},
	}
}

// LoadSimConfig loads the configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadSimConfig(filename string) (*SimConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultSimConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	cfg := &SimConfig{}
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	if cfg.Rules.TargetScore == 0 {
		cfg.Rules.TargetScore = 10000
	}
	if cfg.Rules.MinFirstBank == 0 {
		cfg.Rules.MinFirstBank = 1000
	}
	for i := range cfg.Matchups {
		if cfg.Matchups[i].Games == 0 {
			cfg.Matchups[i].Games = 1000
		}
		if len(cfg.Matchups[i].Strategies) < 2 {
			return nil, fmt.Errorf("config: matchup %q needs at least two strategies", cfg.Matchups[i].Name)
		}
	}
	return cfg, nil
}

// GameRules converts the rule config to engine rules.
func (c *SimConfig) GameRules() game.Rules {
	return game.Rules{
		TargetScore:  c.Rules.TargetScore,
		MinFirstBank: c.Rules.MinFirstBank,
		MaxTurns:     c.Rules.MaxTurns,
	}
}

// Driver holds driver settings taken from the environment. Flags take
// precedence over these at the CLI layer.
type Driver struct {
	// Seed seeds the simulation RNG streams; 0 means derive from time.
	Seed int64 `env:"YOUBLEWIT_SEED"`
	// ResultsDB is the path to the SQLite results store; empty disables
	// persistence.
	ResultsDB string `env:"YOUBLEWIT_RESULTS_DB"`
	// Debug enables debug logging.
	Debug bool `env:"YOUBLEWIT_DEBUG"`
}

// DriverFromEnv parses driver settings from environment variables.
func DriverFromEnv() (*Driver, error) {
	cfg := &Driver{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
