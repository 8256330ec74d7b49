package strategy

import (
	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
)

// Thresholds maps a remaining-dice count (1..6) to the unbanked score at
// which the strategy banks rather than risking that many dice.
type Thresholds map[int]int

// DefaultThresholds is a tuned table: bank early with few dice, push on
// with a full hand.
var DefaultThresholds = Thresholds{1: 300, 2: 300, 3: 350, 4: 400, 5: 500, 6: 600}

// Threshold banks once the unbanked score reaches a per-dice-count cutoff.
// Its takes preserve dice: on a fresh six-dice roll it keeps a lone one or
// five in hand rather than spending the whole roll, and it ignores the
// three-twos triple after the first pass.
type Threshold struct {
	table Thresholds
}

// NewThreshold returns a threshold-table strategy.
func NewThreshold(table Thresholds) *Threshold {
	return &Threshold{table: table}
}

func (t *Threshold) ShouldRoll(turn, banked, diceInPlay, unbanked int) bool {
	return unbanked < t.table[diceInPlay]
}

func (t *Threshold) ChooseGroups(roll dice.Roll) []score.Group {
	tally := score.NewTally(roll)
	var groups []score.Group
	firstPass := true
	oneTaken := false
	fiveTaken := false
	for {
		g, ok := t.pick(tally, firstPass, roll.Size(), oneTaken, fiveTaken)
		if !ok {
			break
		}
		if _, err := tally.Take(g); err != nil {
			break
		}
		groups = append(groups, g)
		switch g.Kind {
		case score.KindSingleOne:
			if firstPass && roll.Size() == dice.MaxDice {
				oneTaken = true
			}
		case score.KindSingleFive:
			fiveTaken = true
		}
		firstPass = false
	}
	return groups
}

// pick chooses at most one group per iteration, or reports none worth
// taking.
func (t *Threshold) pick(tally *score.Tally, firstPass bool, rolled int, oneTaken, fiveTaken bool) (score.Group, bool) {
	rem := tally.Remaining()
	for _, face := range []int{1, 6, 5, 4, 3} {
		if rem.Count(face) >= 3 {
			return score.Triple(face), true
		}
	}
	// On a fresh full roll keep the hand big: spend a single one only.
	if rem.Count(1) > 0 && !oneTaken {
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
