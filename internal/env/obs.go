package env

import "strings"

// Observation encodings. Both schemes are frozen for interoperability with
// previously trained policies and must not change shape or slot meaning.

const (
	// CompactSize is the length of the compact observation vector.
	CompactSize = 15
	// ExtendedSize is the length of the extended observation vector.
	ExtendedSize = 25

	// ScoreBucketSize is the width of one banked-score band.
	ScoreBucketSize = 2000
	// NumScoreBuckets is the number of banked-score bands.
	NumScoreBuckets = 5
)

// ScoreBucket maps a banked score to its band index, capped at the top
// band.
func ScoreBucket(score int) int {
	b := score / ScoreBucketSize
	if b >= NumScoreBuckets {
		b = NumScoreBuckets - 1
	}
	return b
}

// CompactObservation encodes the state into 15 slots: 0..5 one-hot the
// active dice count (slot diceInPlay-1), 6..13 flag the legal take actions
// at slot action+5, and slot 14 is the must-roll flag, set only when roll
// is the sole legal action. Bank availability is not representable in this
// scheme (its slot would collide with the six-dice slot) and is omitted,
// matching the models trained against it.
func (e *Env) CompactObservation() []int {
	obs := make([]int, CompactSize)
	if n := e.roll.Size(); n > 0 {
		obs[n-1] = 1
	}
	legal := e.LegalActions()
	if onlyRoll(legal) {
		obs[CompactSize-1] = 1
		return obs
	}
	for _, a := range legal {
		if a >= 1 && a <= 8 {
			obs[int(a)+5] = 1
		}
	}
	return obs
}

// ExtendedObservation encodes the state into 25 slots: 0..5 one-hot the
// active dice count, 6..14 flag legal actions 0..8 at slot action+6 (slot
// 14 doubles as the must-roll flag when roll is the only legal action),
// 15..19 one-hot the agent's banked-score band, and 20..24 the opponent's.
func (e *Env) ExtendedObservation() []int {
	obs := make([]int, ExtendedSize)
	if n := e.roll.Size(); n > 0 {
		obs[n-1] = 1
	}
	legal := e.LegalActions()
	if onlyRoll(legal) {
		obs[14] = 1
	} else {
		for _, a := range legal {
			if a <= 8 {
				obs[int(a)+6] = 1
			}
		}
	}
	obs[15+ScoreBucket(e.banked)] = 1
	obs[20+ScoreBucket(e.opponentScore)] = 1
	return obs
}

func onlyRoll(legal []Action) bool {
	return len(legal) == 1 && legal[0] == ActionRoll
}

// FormatObservation renders an observation vector as a bit string for
// debugging.
func FormatObservation(obs []int) string {
	var b strings.Builder
	for i, v := range obs {
		if i > 0 && i%5 == 0 {
			b.WriteByte(' ')
		}
		if v == 0 {
			b.WriteByte('0')
		} else {
			b.WriteByte('1')
		}
	}
	return b.String()
}
