package strategy

import (
	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
)

// Basic is the simplest fixed-rule strategy: keep rolling while more than
// two dice remain, and take every scoring group greedily.
type Basic struct{}

// NewBasic returns the fixed-rule strategy.
func NewBasic() *Basic { return &Basic{} }

func (b *Basic) ShouldRoll(turn, banked, diceInPlay, unbanked int) bool {
	return diceInPlay > 2
}

func (b *Basic) ChooseGroups(roll dice.Roll) []score.Group {
	return greedyTakes(roll)
}
