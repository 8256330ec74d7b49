package results

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/youblewit/internal/statistics"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveMatchupAssignsID(t *testing.T) {
	store := testStore(t)

	m := &Matchup{
		Strategies:   []string{"basic", "cautious"},
		TargetScore:  10000,
		MinFirstBank: 1000,
	}
	require.NoError(t, store.SaveMatchup(m))
	assert.NotEmpty(t, m.ID)
}

func TestSaveAndSummarize(t *testing.T) {
	store := testStore(t)

	m := &Matchup{
		Strategies:   []string{"basic", "threshold"},
		TargetScore:  10000,
		MinFirstBank: 1000,
	}
	require.NoError(t, store.SaveMatchup(m))

	games := []statistics.GameRecord{
		{Winner: 0, Turns: 20, Scores: []int{10100, 7000}, Seed: 1},
		{Winner: 1, Turns: 30, Scores: []int{6000, 10300}, Seed: 2},
		{Winner: 0, Turns: 22, Scores: []int{10050, 8500}, Seed: 3},
	}
	for _, g := range games {
		require.NoError(t, store.SaveGame(m.ID, g))
	}

	summary, err := store.Summarize(m.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"basic", "threshold"}, summary.Strategies)
	assert.Equal(t, 3, summary.Games)
	assert.Equal(t, 2, summary.Wins[0])
	assert.Equal(t, 1, summary.Wins[1])
	assert.InDelta(t, 24.0, summary.MeanTurns, 1e-9)
}

func TestSummarizeUnknownMatchup(t *testing.T) {
	store := testStore(t)

	_, err := store.Summarize("nope")
	assert.Error(t, err)
}

func TestGameIDsPreserved(t *testing.T) {
	store := testStore(t)

	m := &Matchup{Strategies: []string{"a", "b"}, TargetScore: 10000, MinFirstBank: 1000}
	require.NoError(t, store.SaveMatchup(m))

	rec := statistics.GameRecord{GameID: "fixed-id", Winner: 0, Turns: 10, Scores: []int{10000, 0}}
	require.NoError(t, store.SaveGame(m.ID, rec))

	// Inserting the same ID twice violates the primary key.
	assert.Error(t, store.SaveGame(m.ID, rec))
}
