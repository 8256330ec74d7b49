// Package score implements the dice-roll scoring evaluator for You Blew It.
//
// Scoring groups are triples (three of a kind) and loose singles of 1 and 5.
// A triple of ones is worth 1000, any other triple face*100, a loose one 100
// and a loose five 50. A roll with no group at all is "blown" and forfeits
// the turn. All functions here are pure over the roll they are given; the
// evaluator holds no state across calls.
package score

import (
	"errors"
	"fmt"

	"github.com/lox/youblewit/internal/dice"
)

// ErrInvalidTake is returned when a take requires dice the roll does not
// hold. Inside a self-play simulation this is a programming error in the
// strategy, not a recoverable condition.
var ErrInvalidTake = errors.New("score: take requires dice that are not in the roll")

// Kind discriminates the scoring group variants.
type Kind int

const (
	// KindTriple consumes three dice of Group.Face.
	KindTriple Kind = iota
	// KindSingleOne consumes one die showing 1.
	KindSingleOne
	// KindSingleFive consumes one die showing 5.
	KindSingleFive
)

// Group is one scoring selection: a triple of a given face, or a loose 1/5.
type Group struct {
	Kind Kind
	Face int // meaningful for KindTriple only
}

// Triple returns the group for three dice of the given face.
func Triple(face int) Group { return Group{Kind: KindTriple, Face: face} }

// SingleOne is a single loose die showing 1.
var SingleOne = Group{Kind: KindSingleOne}

// SingleFive is a single loose die showing 5.
var SingleFive = Group{Kind: KindSingleFive}

// Points returns the score value of the group.
func (g Group) Points() int {
	switch g.Kind {
	case KindTriple:
		if g.Face == 1 {
			return 1000
		}
		return g.Face * 100
	case KindSingleOne:
		return 100
	case KindSingleFive:
		return 50
	}
	return 0
}

// Dice returns how many dice the group consumes and the face it consumes.
func (g Group) Dice() (face, count int) {
	switch g.Kind {
	case KindTriple:
		return g.Face, 3
	case KindSingleOne:
		return 1, 1
	case KindSingleFive:
		return 5, 1
	}
	return 0, 0
}

func (g Group) String() string {
	switch g.Kind {
	case KindTriple:
		return fmt.Sprintf("triple %ds (%d)", g.Face, g.Points())
	case KindSingleOne:
		return "single 1 (100)"
	case KindSingleFive:
		return "single 5 (50)"
	}
	return "unknown group"
}

// Evaluate returns every scoring group available in the roll, triples from
// highest value to lowest, then singles. Availability is recomputed from
// face counts on each call; evaluation never mutates the roll.
func Evaluate(roll dice.Roll) []Group {
	var groups []Group
	for _, face := range []int{1, 6, 5, 4, 3, 2} {
		if roll.Count(face) >= 3 {
			groups = append(groups, Triple(face))
		}
	}
	if roll.Count(1) > 0 {
		groups = append(groups, SingleOne)
	}
	if roll.Count(5) > 0 {
		groups = append(groups, SingleFive)
	}
	return groups
}

// Take applies one group to the roll, returning its point value and the
// remaining roll. ErrInvalidTake when the required dice are absent.
func Take(roll dice.Roll, group Group) (int, dice.Roll, error) {
	face, count := group.Dice()
	remaining, ok := roll.Remove(face, count)
	if !ok {
		return 0, roll, fmt.Errorf("%w: %s from %s", ErrInvalidTake, group, roll)
	}
	return group.Points(), remaining, nil
}

// IsBlown reports whether a freshly rolled set of dice scores nothing: no
// triple on any face, no loose 1 and no loose 5. A triple of ones implies
// loose ones, so only faces 2-6 need the triple check.
func IsBlown(roll dice.Roll) bool {
	if roll.Count(1) > 0 || roll.Count(5) > 0 {
		return false
	}
	for face := 2; face <= 6; face++ {
		if roll.Count(face) >= 3 {
			return false
		}
	}
	return true
}

// rawOrder is the fixed greedy priority used to auto-complete a turn:
// the thousand combo first, then triples from six down, loose ones before
// the lowly triple of twos, loose fives last.
var rawOrder = []Group{
	Triple(1), Triple(6), Triple(5), Triple(4), Triple(3),
	SingleOne, Triple(2), SingleFive,
}

// RawScore greedily applies every available group in the fixed priority
// order and returns the count of unscorable leftover dice and the total
// extracted score. It answers "what is this roll worth with no further
// choices", not player-driven flow.
func RawScore(roll dice.Roll) (remaining, total int) {
	if IsBlown(roll) {
		return roll.Size(), 0
	}
	for _, g := range rawOrder {
		for {
			face, count := g.Dice()
			if roll.Count(face) < count {
				break
			}
			pts, rest, err := Take(roll, g)
			if err != nil {
				break
			}
			total += pts
			roll = rest
			if g.Kind == KindTriple {
				break // at most one triple per face per roll
			}
		}
	}
	return roll.Size(), total
}
