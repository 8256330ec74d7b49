package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/youblewit/internal/strategy"
)

// ErrTurnLimit is returned when a game exceeds Rules.MaxTurns without a
// winner.
var ErrTurnLimit = errors.New("game: turn limit exceeded without a winner")

// Player is one seat in a game: a name, a banked score, and the strategy
// playing the seat. Banked never decreases; a bust forfeits only the turn's
// unbanked score.
type Player struct {
	Name     string
	Banked   int
	Strategy strategy.Strategy
}

// Game orchestrates players across turns: strict rotation, banked score
// bookkeeping, and instant win detection the moment a bank reaches the
// target. Each game owns its RNG stream, so independent games need no
// synchronization.
type Game struct {
	ID      string
	rules   Rules
	players []*Player
	current int
	runner  *TurnRunner
	logger  *log.Logger
	turns   int
}

// Result is the outcome of a completed game.
type Result struct {
	GameID string
	Winner int // index of the winning player
	Scores []int
	Turns  int
}

// New creates a game over the given seats. At least one player is required;
// a single-player game is the solo drill, racing the target alone.
func New(rules Rules, rng *rand.Rand, logger *log.Logger, players ...*Player) (*Game, error) {
	if len(players) == 0 {
		return nil, errors.New("game: at least one player required")
	}
	for i, p := range players {
		if p.Strategy == nil {
			return nil, fmt.Errorf("game: player %d (%s) has no strategy", i, p.Name)
		}
	}
	return &Game{
		ID:      uuid.New().String(),
		rules:   rules,
		players: players,
		runner:  NewTurnRunner(rules, rng, logger),
		logger:  logger,
	}, nil
}

// Players returns the seats in rotation order.
func (g *Game) Players() []*Player { return g.players }

// Turns returns how many turns have been played so far.
func (g *Game) Turns() int { return g.turns }

// PlayTurn plays exactly one turn for the current player, applies the
// result, and advances rotation. It returns the turn result and whether
// the acting player just won.
func (g *Game) PlayTurn() (*TurnResult, bool, error) {
	p := g.players[g.current]
	g.observeOpponents(p)

	result, err := g.runner.PlayTurn(p.Strategy, g.turns, p.Banked)
	if err != nil {
		return nil, false, fmt.Errorf("turn %d (%s): %w", g.turns, p.Name, err)
	}
	p.Banked += result.Score
	g.turns++

	g.logger.Debug("turn complete",
		"game", g.ID,
		"player", p.Name,
		"score", result.Score,
		"busted", result.Busted,
		"banked", p.Banked)

	if p.Banked >= g.rules.TargetScore {
		// First to reach wins instantly; nobody gets last licks.
		return result, true, nil
	}
	g.current = (g.current + 1) % len(g.players)
	return result, false, nil
}

// Play runs the game to completion and returns the result. The context is
// checked between turns so a driver can stop a runaway simulation.
func (g *Game) Play(ctx context.Context) (*Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.rules.MaxTurns > 0 && g.turns >= g.rules.MaxTurns {
			return nil, fmt.Errorf("%w after %d turns", ErrTurnLimit, g.turns)
		}

		winnerIdx := g.current
		_, won, err := g.PlayTurn()
		if err != nil {
			return nil, err
		}
		if won {
			result := &Result{
				GameID: g.ID,
				Winner: winnerIdx,
				Scores: g.scores(),
				Turns:  g.turns,
			}
			g.logger.Debug("game over",
				"game", g.ID,
				"winner", g.players[winnerIdx].Name,
				"scores", result.Scores,
				"turns", result.Turns)
			return result, nil
		}
	}
}

// observeOpponents feeds opponent banked scores to strategies that care.
func (g *Game) observeOpponents(acting *Player) {
	aware, ok := acting.Strategy.(strategy.OpponentAware)
	if !ok {
		return
	}
	var banked []int
	for _, p := range g.players {
		if p != acting {
			banked = append(banked, p.Banked)
		}
	}
	aware.ObserveOpponents(banked)
}

func (g *Game) scores() []int {
	scores := make([]int, len(g.players))
	for i, p := range g.players {
		scores[i] = p.Banked
	}
	return scores
}
