// Package strategy defines the decision-maker contract queried by the turn
// state machine, and a closed set of built-in implementations ranging from
// fixed-rule play to score-indexed threshold tables, endgame-aware play,
// random legal play, and delegation to an external policy.
package strategy

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
)

// Strategy answers the two decision points of a turn. Both operations are
// queried fresh at every decision; the engine never caches an answer.
//
// ChooseGroups must return a non-empty selection whenever the roll is not
// blown. Selections are applied in order against the shrinking roll, so
// each one must remain valid after the prior selections have consumed dice.
type Strategy interface {
	// ShouldRoll reports whether to roll again given the turn number, the
	// player's banked total, the dice available, and the unbanked score
	// accumulated so far this turn.
	ShouldRoll(turn, banked, diceInPlay, unbanked int) bool

	// ChooseGroups selects scoring groups to take from a fresh roll,
	// in application order.
	ChooseGroups(roll dice.Roll) []score.Group
}

// OpponentAware is implemented by strategies that adjust to opponent
// positions. The game machine calls ObserveOpponents before each turn with
// the other players' banked scores.
type OpponentAware interface {
	ObserveOpponents(banked []int)
}

// Factory builds a strategy instance. The RNG is only consulted by
// randomized strategies; deterministic ones ignore it.
type Factory func(rng *rand.Rand) Strategy

// Registry maps strategy names to factories. Built explicitly at process
// start by callers that need name-based resolution (CLI, config); the
// engine itself never touches it.
type Registry map[string]Factory

// DefaultRegistry returns the built-in strategies.
func DefaultRegistry() Registry {
	return Registry{
		"basic":     func(*rand.Rand) Strategy { return NewBasic() },
		"threshold": func(*rand.Rand) Strategy { return NewThreshold(DefaultThresholds) },
		"cautious":  func(*rand.Rand) Strategy { return NewCautious() },
		"gameaware": func(*rand.Rand) Strategy { return NewGameAware(RiskBaseline) },
		"random":    func(rng *rand.Rand) Strategy { return NewRandom(rng) },
	}
}

// New resolves a strategy by name.
func (r Registry) New(name string, rng *rand.Rand) (Strategy, error) {
	factory, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q (have %v)", name, r.Names())
	}
	return factory(rng), nil
}

// Names returns the registered names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// greedyTakes reduces a roll by repeatedly taking the best available group:
// triples from highest value down, then every loose one, then every loose
// five. Shared by the fixed-rule strategies.
func greedyTakes(roll dice.Roll) []score.Group {
	tally := score.NewTally(roll)
	var groups []score.Group
	for {
		available := tally.Available()
		if len(available) == 0 {
			break
		}
		g := available[0] // Evaluate orders triples first, highest value down
		if _, err := tally.Take(g); err != nil {
			break
		}
		groups = append(groups, g)
	}
	return groups
}
