package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
	"github.com/lox/youblewit/internal/strategy"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestResolveRollForcedFirstRoll(t *testing.T) {
	tr := NewTurnRunner(DefaultRules(), dice.NewRNG(0), testLogger())

	// A strategy that always wants to bank.
	banker := &strategy.External{
		RollFunc: func(turn, banked, diceInPlay, unbanked int) bool { return false },
	}

	ts := NewTurnState()
	ts.MustRoll = false
	ts.Unbanked = 900

	// Nothing banked and under the get-on-board minimum: forced to roll.
	if !tr.resolveRoll(banker, 0, 0, &ts) {
		t.Error("Expected forced roll with banked=0 and unbanked below the minimum")
	}

	// Clears the minimum: the strategy's bank is honored.
	ts.Unbanked = 1000
	if tr.resolveRoll(banker, 0, 0, &ts) {
		t.Error("Expected bank once the minimum is met")
	}

	// Already on the board: the minimum no longer applies.
	ts.Unbanked = 50
	if tr.resolveRoll(banker, 0, 500, &ts) {
		t.Error("Expected bank with any score once on the board")
	}
}

func TestResolveRollForcedBankAtTarget(t *testing.T) {
	tr := NewTurnRunner(DefaultRules(), dice.NewRNG(0), testLogger())

	// A strategy that always wants to keep rolling.
	roller := &strategy.External{
		RollFunc: func(turn, banked, diceInPlay, unbanked int) bool { return true },
	}

	ts := NewTurnState()
	ts.MustRoll = false
	ts.Unbanked = 600

	if tr.resolveRoll(roller, 0, 9500, &ts) {
		t.Error("Expected forced bank when banked+unbanked reaches the target")
	}
	if !tr.resolveRoll(roller, 0, 9300, &ts) {
		t.Error("Expected roll when still short of the target")
	}
}

func TestResolveRollForcedBankBeatsHotDice(t *testing.T) {
	tr := NewTurnRunner(DefaultRules(), dice.NewRNG(0), testLogger())

	roller := &strategy.External{
		RollFunc: func(turn, banked, diceInPlay, unbanked int) bool { return true },
	}

	// Hot dice normally force a roll, but winning outranks everything
	// except the get-on-board rule.
	ts := NewTurnState()
	ts.MustRoll = true
	ts.Unbanked = 1500

	if tr.resolveRoll(roller, 0, 9000, &ts) {
		t.Error("Expected the winning bank to override the hot-dice roll")
	}
	if !tr.resolveRoll(roller, 0, 5000, &ts) {
		t.Error("Expected hot dice to force a roll short of the target")
	}
}

func TestResolveRollHotDiceOverridesStrategy(t *testing.T) {
	tr := NewTurnRunner(DefaultRules(), dice.NewRNG(0), testLogger())

	banker := &strategy.External{
		RollFunc: func(turn, banked, diceInPlay, unbanked int) bool { return false },
	}

	ts := NewTurnState()
	ts.MustRoll = true
	ts.Unbanked = 1500

	if !tr.resolveRoll(banker, 0, 2000, &ts) {
		t.Error("Expected hot dice to force a roll over the strategy's bank")
	}
}

func TestPlayTurnInvariants(t *testing.T) {
	rules := DefaultRules()
	logger := testLogger()

	for seed := int64(0); seed < 50; seed++ {
		tr := NewTurnRunner(rules, dice.NewRNG(seed), logger)
		result, err := tr.PlayTurn(strategy.NewBasic(), 0, 2000)
		if err != nil {
			t.Fatalf("Seed %d: %v", seed, err)
		}

		if result.Busted && result.Score != 0 {
			t.Errorf("Seed %d: busted turn scored %d", seed, result.Score)
		}
		if !result.Busted && result.Score <= 0 {
			t.Errorf("Seed %d: banked turn scored %d", seed, result.Score)
		}
		if result.Score%50 != 0 {
			t.Errorf("Seed %d: score %d is not a multiple of 50", seed, result.Score)
		}
		if result.Rolls < 1 {
			t.Errorf("Seed %d: turn had %d rolls", seed, result.Rolls)
		}

		assertTranscript(t, seed, result)
	}
}

func TestPlayTurnGetOnBoard(t *testing.T) {
	rules := DefaultRules()
	logger := testLogger()

	// Wants to bank at the first opportunity; the get-on-board rule must
	// hold it on the table until 1000.
	banker := &strategy.External{
		RollFunc:   func(turn, banked, diceInPlay, unbanked int) bool { return false },
		GroupsFunc: strategy.NewBasic().ChooseGroups,
	}

	for seed := int64(0); seed < 50; seed++ {
		tr := NewTurnRunner(rules, dice.NewRNG(seed), logger)
		result, err := tr.PlayTurn(banker, 0, 0)
		if err != nil {
			t.Fatalf("Seed %d: %v", seed, err)
		}
		if !result.Busted && result.Score < rules.MinFirstBank {
			t.Errorf("Seed %d: first bank of %d is under the minimum %d",
				seed, result.Score, rules.MinFirstBank)
		}
	}
}

func TestPlayTurnForcedWin(t *testing.T) {
	rules := DefaultRules()
	logger := testLogger()

	// Never banks voluntarily; only the forced bank at the target can end
	// a non-busted turn.
	roller := &strategy.External{
		RollFunc:   func(turn, banked, diceInPlay, unbanked int) bool { return true },
		GroupsFunc: strategy.NewBasic().ChooseGroups,
	}

	for seed := int64(0); seed < 50; seed++ {
		tr := NewTurnRunner(rules, dice.NewRNG(seed), logger)
		result, err := tr.PlayTurn(roller, 0, 9900)
		if err != nil {
			t.Fatalf("Seed %d: %v", seed, err)
		}
		if !result.Busted && 9900+result.Score < rules.TargetScore {
			t.Errorf("Seed %d: banked %d without reaching the target", seed, result.Score)
		}
	}
}

func TestPlayTurnRejectsEmptyTake(t *testing.T) {
	tr := NewTurnRunner(DefaultRules(), dice.NewRNG(1), testLogger())

	broken := &strategy.External{
		RollFunc:   func(turn, banked, diceInPlay, unbanked int) bool { return true },
		GroupsFunc: func(roll dice.Roll) []score.Group { return nil },
	}

	// Eventually a scorable roll comes up and the empty take must error.
	_, err := tr.PlayTurn(broken, 0, 0)
	if err == nil {
		t.Error("Expected error for a strategy that takes nothing")
	}
}

// assertTranscript checks event ordering: starts with a roll, hot dice
// carry unbanked score, and the turn ends with exactly one bank or bust.
func assertTranscript(t *testing.T, seed int64, result *TurnResult) {
	t.Helper()
	events := result.Events
	if len(events) == 0 {
		t.Fatalf("Seed %d: empty transcript", seed)
	}
	if events[0].Kind != EventRolled {
		t.Errorf("Seed %d: transcript starts with %v", seed, events[0].Kind)
	}

	last := events[len(events)-1]
	if result.Busted {
		if last.Kind != EventBusted {
			t.Errorf("Seed %d: busted turn ends with %v", seed, last.Kind)
		}
	} else {
		if last.Kind != EventBanked {
			t.Errorf("Seed %d: banked turn ends with %v", seed, last.Kind)
		}
		if last.Points != result.Score {
			t.Errorf("Seed %d: bank event says %d, result says %d", seed, last.Points, result.Score)
		}
	}

	terminal := 0
	for _, e := range events {
		if e.Kind == EventBanked || e.Kind == EventBusted {
			terminal++
		}
	}
	if terminal != 1 {
		t.Errorf("Seed %d: %d terminal events in one turn", seed, terminal)
	}
}
