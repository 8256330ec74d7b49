package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
	"github.com/lox/youblewit/internal/strategy"
)

// TurnState is the mutable state of one player's turn. It is created at
// turn start and discarded when the turn ends by bank or bust.
type TurnState struct {
	Unbanked   int  // points accumulated but not yet banked
	DiceInPlay int  // dice not yet taken, 0..6
	MustRoll   bool // true at turn start and after hot dice
	JustRolled bool // true immediately after a roll, until a take
	Busted     bool
}

// NewTurnState returns the state at the start of a turn.
func NewTurnState() TurnState {
	return TurnState{DiceInPlay: dice.MaxDice, MustRoll: true}
}

// TurnEventKind tags entries in a turn transcript.
type TurnEventKind int

const (
	EventRolled TurnEventKind = iota
	EventTook
	EventHotDice
	EventBusted
	EventBanked
)

// TurnEvent is one entry in a turn's transcript, in the order it happened.
type TurnEvent struct {
	Kind     TurnEventKind
	Roll     dice.Roll   // EventRolled
	Group    score.Group // EventTook
	Points   int         // EventTook: group value; EventBanked: turn score
	Unbanked int         // running unbanked total after the event
}

func (e TurnEvent) String() string {
	switch e.Kind {
	case EventRolled:
		return fmt.Sprintf("rolled %s", e.Roll)
	case EventTook:
		return fmt.Sprintf("took %s, unbanked %d", e.Group, e.Unbanked)
	case EventHotDice:
		return fmt.Sprintf("hot dice, unbanked %d carries over", e.Unbanked)
	case EventBusted:
		return "blew it"
	case EventBanked:
		return fmt.Sprintf("banked %d", e.Points)
	}
	return "unknown event"
}

// TurnResult is the outcome of a completed turn.
type TurnResult struct {
	Score  int // points banked by the turn, 0 on bust
	Busted bool
	Rolls  int
	Events []TurnEvent
}

// TurnRunner drives single turns using the scorer and a strategy.
type TurnRunner struct {
	rules  Rules
	rng    *rand.Rand
	logger *log.Logger
}

// NewTurnRunner creates a turn runner. The RNG is the turn's only source of
// nondeterminism and is consumed exactly once per roll.
func NewTurnRunner(rules Rules, rng *rand.Rand, logger *log.Logger) *TurnRunner {
	return &TurnRunner{rules: rules, rng: rng, logger: logger}
}

// PlayTurn runs one complete turn for a player whose banked score is
// banked, consulting strat at every decision point. An error means the
// strategy proposed an impossible take: a programming defect, not a
// recoverable game state.
func (tr *TurnRunner) PlayTurn(strat strategy.Strategy, turn, banked int) (*TurnResult, error) {
	ts := NewTurnState()
	result := &TurnResult{}

	for {
		roll := dice.RollDice(tr.rng, ts.DiceInPlay)
		ts.JustRolled = true
		ts.MustRoll = false
		result.Rolls++
		result.Events = append(result.Events, TurnEvent{Kind: EventRolled, Roll: roll, Unbanked: ts.Unbanked})
		tr.logger.Debug("rolled", "dice", roll, "unbanked", ts.Unbanked)

		if score.IsBlown(roll) {
			ts.Busted = true
			result.Busted = true
			result.Events = append(result.Events, TurnEvent{Kind: EventBusted})
			tr.logger.Debug("blew it", "forfeited", ts.Unbanked)
			return result, nil
		}

		groups := strat.ChooseGroups(roll)
		if len(groups) == 0 {
			return nil, fmt.Errorf("game: strategy took nothing from scorable roll %s", roll)
		}
		for _, g := range groups {
			pts, rest, err := score.Take(roll, g)
			if err != nil {
				return nil, fmt.Errorf("game: strategy proposed impossible take: %w", err)
			}
			roll = rest
			ts.Unbanked += pts
			ts.DiceInPlay -= mustConsume(g)
			result.Events = append(result.Events, TurnEvent{Kind: EventTook, Group: g, Points: pts, Unbanked: ts.Unbanked})
		}
		ts.JustRolled = false

		if ts.DiceInPlay == 0 {
			// Hot dice: a fresh hand of six, unbanked score carries over.
			ts.DiceInPlay = dice.MaxDice
			ts.MustRoll = true
			result.Events = append(result.Events, TurnEvent{Kind: EventHotDice, Unbanked: ts.Unbanked})
			tr.logger.Debug("hot dice", "unbanked", ts.Unbanked)
		}

		if !tr.resolveRoll(strat, turn, banked, &ts) {
			result.Score = ts.Unbanked
			result.Events = append(result.Events, TurnEvent{Kind: EventBanked, Points: ts.Unbanked})
			tr.logger.Debug("banked", "points", ts.Unbanked, "rolls", result.Rolls)
			return result, nil
		}
	}
}

// resolveRoll decides whether the turn continues with another roll. The
// overrides fire in fixed priority: the get-on-board rule forces a roll, a
// winning total forces a bank, hot dice force a roll, and only then does
// the strategy get a say.
func (tr *TurnRunner) resolveRoll(strat strategy.Strategy, turn, banked int, ts *TurnState) bool {
	if banked == 0 && ts.Unbanked < tr.rules.MinFirstBank {
		return true
	}
	if banked+ts.Unbanked >= tr.rules.TargetScore {
		return false
	}
	if ts.MustRoll {
		return true
	}
	return strat.ShouldRoll(turn, banked, ts.DiceInPlay, ts.Unbanked)
}

func mustConsume(g score.Group) int {
	_, n := g.Dice()
	return n
}
