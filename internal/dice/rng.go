package dice

import rand "math/rand/v2"

// NewRNG returns a *rand.Rand seeded deterministically from one int64.
// rand/v2's PCG wants two 64-bit seeds; deriving both from a single value
// through a finalizing mix keeps every call site reproducible from one
// scalar seed.
func NewRNG(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(scramble(u), scramble(u^0xa5a5a5a5a5a5a5a5)))
}

// scramble is the splitmix64 finalizer.
func scramble(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// RollDice draws n independent uniform faces in 1..6 from rng.
func RollDice(rng *rand.Rand, n int) Roll {
	var r Roll
	for i := 0; i < n; i++ {
		f := rng.IntN(6) + 1
		r.counts[f]++
		r.size++
	}
	return r
}
