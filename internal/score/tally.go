package score

import "github.com/lox/youblewit/internal/dice"

// Tally is a lightweight handle bound to one roll for ergonomic chained
// takes. It behaves identically to independent Evaluate/Take calls over the
// same sequence of rolls; it exists so callers reducing a roll group by
// group don't have to thread the remainder by hand.
type Tally struct {
	roll  dice.Roll
	total int
}

// NewTally binds a tally to the given roll.
func NewTally(roll dice.Roll) *Tally {
	return &Tally{roll: roll}
}

// Available returns the groups currently available in the remaining roll.
func (t *Tally) Available() []Group {
	return Evaluate(t.roll)
}

// Take applies one group against the remaining roll, accumulating points.
func (t *Tally) Take(group Group) (int, error) {
	pts, rest, err := Take(t.roll, group)
	if err != nil {
		return 0, err
	}
	t.roll = rest
	t.total += pts
	return pts, nil
}

// Remaining returns the dice not yet consumed.
func (t *Tally) Remaining() dice.Roll { return t.roll }

// Total returns the points accumulated by takes so far.
func (t *Tally) Total() int { return t.total }
