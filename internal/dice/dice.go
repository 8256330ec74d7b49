// Package dice provides the roll representation and random face draws for
// the You Blew It engine. A Roll is an unordered multiset of die faces; dice
// taken during a turn are removed from the roll rather than zeroed in place.
package dice

import (
	"fmt"
	"sort"
	"strings"
)

// MaxDice is the number of dice a player starts each roll sequence with.
const MaxDice = 6

// Roll is an unordered multiset of die faces, each in 1..6. The zero value
// is an empty roll.
type Roll struct {
	counts [7]int // index 0 unused
	size   int
}

// NewRoll builds a roll from explicit faces. Faces outside 1..6 panic, since
// they can only come from a programming error.
func NewRoll(faces ...int) Roll {
	var r Roll
	for _, f := range faces {
		if f < 1 || f > 6 {
			panic(fmt.Sprintf("dice: face %d out of range", f))
		}
		r.counts[f]++
		r.size++
	}
	return r
}

// Count returns how many dice in the roll show the given face.
func (r Roll) Count(face int) int {
	if face < 1 || face > 6 {
		return 0
	}
	return r.counts[face]
}

// Size returns the number of active dice in the roll.
func (r Roll) Size() int {
	return r.size
}

// Empty reports whether no dice remain.
func (r Roll) Empty() bool {
	return r.size == 0
}

// Remove returns a copy of the roll with n dice of the given face removed.
// It reports false when the roll does not contain that many.
func (r Roll) Remove(face, n int) (Roll, bool) {
	if face < 1 || face > 6 || n < 0 || r.counts[face] < n {
		return r, false
	}
	out := r
	out.counts[face] -= n
	out.size -= n
	return out, true
}

// Faces returns the dice as a sorted slice, mostly for display and tests.
func (r Roll) Faces() []int {
	faces := make([]int, 0, r.size)
	for f := 1; f <= 6; f++ {
		for i := 0; i < r.counts[f]; i++ {
			faces = append(faces, f)
		}
	}
	sort.Ints(faces)
	return faces
}

func (r Roll) String() string {
	if r.size == 0 {
		return "[]"
	}
	parts := make([]string, 0, r.size)
	for _, f := range r.Faces() {
		parts = append(parts, fmt.Sprintf("%d", f))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
