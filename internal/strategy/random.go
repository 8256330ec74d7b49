package strategy

import (
	rand "math/rand/v2"

	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
)

// Random is the chaotic baseline: a coin flip on whether to roll, and a run
// of uniformly random legal takes. It always takes at least one group from
// a scorable roll, as the contract requires.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a randomized strategy drawing from the given RNG.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) ShouldRoll(turn, banked, diceInPlay, unbanked int) bool {
	return r.rng.IntN(2) == 0
}

func (r *Random) ChooseGroups(roll dice.Roll) []score.Group {
	if score.IsBlown(roll) {
		return nil
	}
	tally := score.NewTally(roll)
	var groups []score.Group
	for {
		available := tally.Available()
		if len(available) == 0 {
			break
		}
		g := available[r.rng.IntN(len(available))]
		if _, err := tally.Take(g); err != nil {
			break
		}
		groups = append(groups, g)
		// Coin flip on whether to stop taking, once something is banked.
		if r.rng.IntN(2) == 0 {
			break
		}
	}
	return groups
}
