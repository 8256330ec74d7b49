// Package simulator runs batches of games between strategies and
// aggregates the outcomes.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/game"
	"github.com/lox/youblewit/internal/results"
	"github.com/lox/youblewit/internal/statistics"
	"github.com/lox/youblewit/internal/strategy"
)

// Config holds configuration for running a matchup.
type Config struct {
	Games      int
	Strategies []string // one name per seat, at least two
	Seed       int64
	Rules      game.Rules
	Workers    int // parallel games; 0 means GOMAXPROCS
	Logger     *log.Logger
	Clock      quartz.Clock   // progress ticker; nil means real clock
	Registry   strategy.Registry
	Store      *results.Store // optional persistence
}

// Simulator runs game simulations for a single matchup.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Registry == nil {
		config.Registry = strategy.DefaultRegistry()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays the configured number of games and returns aggregate
// statistics. Seat order alternates game to game so neither strategy owns
// the first-turn advantage; seat indices in the statistics always refer to
// Config.Strategies order.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if len(s.config.Strategies) < 2 {
		return nil, fmt.Errorf("simulator: need at least two strategies, got %d", len(s.config.Strategies))
	}

	var matchupID string
	if s.config.Store != nil {
		m := &results.Matchup{
			Strategies:   s.config.Strategies,
			TargetScore:  s.config.Rules.TargetScore,
			MinFirstBank: s.config.Rules.MinFirstBank,
		}
		if err := s.config.Store.SaveMatchup(m); err != nil {
			return nil, err
		}
		matchupID = m.ID
	}

	stats := &statistics.Statistics{}
	var mu sync.Mutex
	var done atomic.Int64

	tickCtx, stopTicker := context.WithCancel(ctx)
	defer stopTicker()
	go s.reportProgress(tickCtx, &done)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := s.playGame(i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			done.Add(1)

			mu.Lock()
			defer mu.Unlock()
			stats.Add(rec)
			if s.config.Store != nil {
				if err := s.config.Store.SaveGame(matchupID, rec); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := stats.Validate(); err != nil {
		return nil, err
	}
	return stats, nil
}

// playGame plays one game with its own seeded RNG stream and returns the
// outcome with seats mapped back to Config.Strategies order.
func (s *Simulator) playGame(index int) (statistics.GameRecord, error) {
	gameSeed := s.config.Seed + int64(index)
	rng := dice.NewRNG(gameSeed)

	n := len(s.config.Strategies)
	rotation := index % n

	players := make([]*game.Player, n)
	for seat := 0; seat < n; seat++ {
		name := s.config.Strategies[(seat+rotation)%n]
		strat, err := s.config.Registry.New(name, rng)
		if err != nil {
			return statistics.GameRecord{}, err
		}
		players[seat] = &game.Player{Name: name, Strategy: strat}
	}

	gm, err := game.New(s.config.Rules, rng, s.config.Logger, players...)
	if err != nil {
		return statistics.GameRecord{}, err
	}
	result, err := gm.Play(context.Background())
	if err != nil {
		return statistics.GameRecord{}, err
	}

	// Undo the rotation so seat i always means Config.Strategies[i].
	scores := make([]int, n)
	for seat, score := range result.Scores {
		scores[(seat+rotation)%n] = score
	}
	return statistics.GameRecord{
		GameID: result.GameID,
		Winner: (result.Winner + rotation) % n,
		Turns:  result.Turns,
		Scores: scores,
		Seed:   gameSeed,
	}, nil
}

func (s *Simulator) reportProgress(ctx context.Context, done *atomic.Int64) {
	ticker := s.config.Clock.TickerFunc(ctx, 5*time.Second, func() error {
		s.config.Logger.Info("simulation progress",
			"done", done.Load(),
			"total", s.config.Games)
		return nil
	})
	_ = ticker.Wait()
}

// Ranking is one row of a tournament table.
type Ranking struct {
	Strategy string
	Games    int
	Wins     int
}

// WinRate returns the strategy's overall win fraction.
func (r Ranking) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

// Tournament plays every pairing of the named strategies, including each
// strategy against itself, and returns rankings sorted by win rate. Mirror
// games still count: a self-play win credits one win over two games played
// by that strategy, which keeps its expected rate at fifty percent.
func Tournament(ctx context.Context, names []string, gamesPer int, base Config) ([]Ranking, error) {
	index := make(map[string]int, len(names))
	rankings := make([]Ranking, len(names))
	for i, name := range names {
		index[name] = i
		rankings[i] = Ranking{Strategy: name}
	}

	pair := 0
	for i := 0; i < len(names); i++ {
		for j := i; j < len(names); j++ {
			cfg := base
			cfg.Games = gamesPer
			cfg.Strategies = []string{names[i], names[j]}
			cfg.Seed = base.Seed + int64(pair)*int64(gamesPer)
			pair++

			stats, err := New(cfg).Run(ctx)
			if err != nil {
				return nil, fmt.Errorf("simulator: %s vs %s: %w", names[i], names[j], err)
			}

			if i == j {
				// Both seats belong to the same strategy: two games
				// played per game, one of them a win.
				rankings[index[names[i]]].Games += stats.Games * 2
				rankings[index[names[i]]].Wins += stats.Games
				continue
			}
			rankings[index[names[i]]].Games += stats.Games
			rankings[index[names[i]]].Wins += stats.Seats[0].Wins
			rankings[index[names[j]]].Games += stats.Games
			rankings[index[names[j]]].Wins += stats.Seats[1].Wins
		}
	}

	sortRankings(rankings)
	return rankings, nil
}

func sortRankings(rankings []Ranking) {
	for i := 1; i < len(rankings); i++ {
		for j := i; j > 0 && rankings[j].WinRate() > rankings[j-1].WinRate(); j-- {
			rankings[j], rankings[j-1] = rankings[j-1], rankings[j]
		}
	}
}
