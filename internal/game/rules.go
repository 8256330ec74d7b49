// Package game implements the core You Blew It game logic: the single-turn
// state machine (roll, take, bank or bust, hot dice) and the multi-player
// game loop with the get-on-board minimum and instant win detection.
//
// The main types are TurnRunner, which drives one player's turn against a
// strategy, and Game, which alternates players until a bank reaches the
// target score.
//
// For deterministic play inject a seeded RNG:
//
//	rng := dice.NewRNG(42)
//	g, _ := game.New(game.DefaultRules(), rng, logger, seats...)
package game

// Rules holds the tunable game constants.
type Rules struct {
	// TargetScore ends the game the instant a player's bank reaches it.
	TargetScore int
	// MinFirstBank is the get-on-board minimum: a player with nothing
	// banked may not bank a turn worth less than this.
	MinFirstBank int
	// MaxTurns aborts a game that exceeds it, guarding against strategies
	// that never bank. Zero means unbounded; the rules themselves
	// guarantee termination almost surely.
	MaxTurns int
}

// DefaultRules returns the standard rule set: race to 10000 with a 1000
// point get-on-board minimum.
func DefaultRules() Rules {
	return Rules{
		TargetScore:  10000,
		MinFirstBank: 1000,
	}
}
