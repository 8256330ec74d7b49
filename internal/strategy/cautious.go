package strategy

import (
	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
)

// Cautious banks on a sliding ladder: the fewer dice remain, the less
// unbanked score it takes to stop, and it never rolls a single die. Takes
// are greedy on triples and ones but spend at most one five, and only
// bother with the three-twos triple on the first pass.
type Cautious struct{}

// NewCautious returns the ladder strategy.
func NewCautious() *Cautious { return &Cautious{} }

func (c *Cautious) ShouldRoll(turn, banked, diceInPlay, unbanked int) bool {
	switch {
	case unbanked >= 1000 && diceInPlay <= 5:
		return false
	case unbanked >= 600 && diceInPlay <= 4:
		return false
	case unbanked >= 350 && diceInPlay <= 3:
		return false
	case unbanked >= 200 && diceInPlay <= 2:
		return false
	case diceInPlay < 2:
		return false
	}
	return true
}

func (c *Cautious) ChooseGroups(roll dice.Roll) []score.Group {
	tally := score.NewTally(roll)
	var groups []score.Group
	firstPass := true
	fiveTaken := false
	for {
		g, ok := c.pick(tally.Remaining(), firstPass, fiveTaken)
		if !ok {
			break
		}
		if _, err := tally.Take(g); err != nil {
			break
		}
		groups = append(groups, g)
		if g.Kind == score.KindSingleFive {
			fiveTaken = true
		}
		firstPass = false
	}
	return groups
}

func (c *Cautious) pick(rem dice.Roll, firstPass, fiveTaken bool) (score.Group, bool) {
	for _, face := range []int{1, 6, 5, 4, 3} {
		if rem.Count(face) >= 3 {
			return score.Triple(face), true
		}
	}
	if rem.Count(1) > 0 {
		return score.SingleOne, true
	}
	if firstPass && !fiveTaken && rem.Count(5) > 0 {
		return score.SingleFive, true
	}
	if firstPass && rem.Count(2) >= 3 {
		return score.Triple(2), true
	}
	return score.Group{}, false
}
