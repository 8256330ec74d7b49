package strategy

import (
	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
)

// External delegates both decisions to caller-supplied functions. It is the
// hook through which an externally trained policy (or any out-of-process
// decision maker) drives autonomous turns without the engine knowing.
type External struct {
	// RollFunc answers ShouldRoll. Required.
	RollFunc func(turn, banked, diceInPlay, unbanked int) bool
	// GroupsFunc answers ChooseGroups. Required.
	GroupsFunc func(roll dice.Roll) []score.Group
}

func (e *External) ShouldRoll(turn, banked, diceInPlay, unbanked int) bool {
	return e.RollFunc(turn, banked, diceInPlay, unbanked)
}

func (e *External) ChooseGroups(roll dice.Roll) []score.Group {
	return e.GroupsFunc(roll)
}
