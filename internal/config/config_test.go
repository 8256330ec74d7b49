package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadSimConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Rules.TargetScore)
	assert.Equal(t, 1000, cfg.Rules.MinFirstBank)
	assert.NotEmpty(t, cfg.Matchups)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hcl")
	content := `
rules {
  target_score   = 5000
  min_first_bank = 500
}

matchup "quick" {
  strategies = ["basic", "random"]
  games      = 50
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadSimConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Rules.TargetScore)
	assert.Equal(t, 500, cfg.Rules.MinFirstBank)
	require.Len(t, cfg.Matchups, 1)
	assert.Equal(t, "quick", cfg.Matchups[0].Name)
	assert.Equal(t, []string{"basic", "random"}, cfg.Matchups[0].Strategies)
	assert.Equal(t, 50, cfg.Matchups[0].Games)

	rules := cfg.GameRules()
	assert.Equal(t, 5000, rules.TargetScore)
	assert.Equal(t, 500, rules.MinFirstBank)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.hcl")
	content := `
rules {}

matchup "bare" {
  strategies = ["basic", "cautious"]
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadSimConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Rules.TargetScore)
	assert.Equal(t, 1000, cfg.Rules.MinFirstBank)
	assert.Equal(t, 1000, cfg.Matchups[0].Games)
}

func TestLoadRejectsShortMatchup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	content := `
rules {}

matchup "solo" {
  strategies = ["basic"]
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadSimConfig(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("rules {"), 0644))

	_, err := LoadSimConfig(path)
	assert.Error(t, err)
}

func TestDriverFromEnv(t *testing.T) {
	t.Setenv("YOUBLEWIT_SEED", "42")
	t.Setenv("YOUBLEWIT_RESULTS_DB", "/tmp/results.db")
	t.Setenv("YOUBLEWIT_DEBUG", "true")

	driver, err := DriverFromEnv()
	require.NoError(t, err)

	assert.Equal(t, int64(42), driver.Seed)
	assert.Equal(t, "/tmp/results.db", driver.ResultsDB)
	assert.True(t, driver.Debug)
}
