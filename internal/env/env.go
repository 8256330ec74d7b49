// Package env is the decision-surface adapter: it exposes the turn and game
// machinery to an external actor that supplies one discrete action at a
// time, computes the legality set for the current state, and projects
// engine state into the fixed-shape observation vectors that trained
// policies consume.
//
// Unlike the self-play turn machine, which asks a strategy for a whole
// batch of takes, the adapter processes one action per Step call, so
// "take one group, then decide again" is the normal interaction. Illegal
// moves are recoverable here: they carry a structured reason, cost a fixed
// penalty, and end the episode.
package env

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/game"
	"github.com/lox/youblewit/internal/score"
	"github.com/lox/youblewit/internal/strategy"
)

// Action is the stable integer action encoding shared by both observation
// schemes: 0 banks, 1..6 take the triple of that face, 7 takes one five,
// 8 takes one one, 9 rolls.
type Action int

const (
	ActionBank     Action = 0
	ActionTakeFive Action = 7
	ActionTakeOne  Action = 8
	ActionRoll     Action = 9

	// NumActions is the size of the discrete action space.
	NumActions = 10
)

// ActionTriple returns the take-triple action for a face.
func ActionTriple(face int) Action { return Action(face) }

func (a Action) String() string {
	switch {
	case a == ActionBank:
		return "bank"
	case a >= 1 && a <= 6:
		return fmt.Sprintf("take triple %ds", int(a))
	case a == ActionTakeFive:
		return "take a 5"
	case a == ActionTakeOne:
		return "take a 1"
	case a == ActionRoll:
		return "roll"
	}
	return fmt.Sprintf("action %d", int(a))
}

// group maps a take action to its scoring group.
func (a Action) group() (score.Group, bool) {
	switch {
	case a >= 1 && a <= 6:
		return score.Triple(int(a)), true
	case a == ActionTakeFive:
		return score.SingleFive, true
	case a == ActionTakeOne:
		return score.SingleOne, true
	}
	return score.Group{}, false
}

// Reward constants. Takes are scored at their realized point value and a
// bank at the amount banked, so a full episode's reward roughly doubles
// the winning score; see DESIGN.md for the choice between the two schemes
// the trained models were exposed to.
const (
	// WinBonus is added to the bank reward that wins the game.
	WinBonus = 1000.0
	// BustPenalty is the reward for a roll that busts.
	BustPenalty = -10.0
	// IllegalPenalty is the reward for an illegal action, which also ends
	// the episode.
	IllegalPenalty = -1.0
)

// IllegalMoveError reports why an external action was rejected. It is an
// episode-level outcome, not an engine fault: the episode ends with
// IllegalPenalty and the environment resets.
type IllegalMoveError struct {
	Action Action
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Action, e.Reason)
}

// StepResult is what one environment step returns.
type StepResult struct {
	Reward float64
	Done   bool
	// Result is "win" or "loss" when a 1v1 episode ends by someone
	// reaching the target, empty otherwise.
	Result string
	// Illegal is set when the action was rejected; the episode is done
	// and the environment has been reset.
	Illegal *IllegalMoveError
}

// Env is a step-wise episode over the dice engine. In solo mode the agent
// races the target alone; with an opponent strategy installed, the
// opponent plays a complete turn after every agent bank.
type Env struct {
	rules  game.Rules
	rng    *rand.Rand
	logger *log.Logger

	// opponent, when set, makes this a 1v1 episode.
	opponent       strategy.Strategy
	opponentRunner *game.TurnRunner

	roll          dice.Roll
	unbanked      int
	banked        int
	opponentScore int
	mustRoll      bool
	justRolled    bool
	blown         bool
	turn          int
}

// New creates a solo environment.
func New(rules game.Rules, rng *rand.Rand, logger *log.Logger) *Env {
	e := &Env{rules: rules, rng: rng, logger: logger}
	e.Reset()
	return e
}

// New1v1 creates a competitive environment where opponent takes a full
// autonomous turn after each agent bank.
func New1v1(rules game.Rules, rng *rand.Rand, logger *log.Logger, opponent strategy.Strategy) *Env {
	e := &Env{
		rules:          rules,
		rng:            rng,
		logger:         logger,
		opponent:       opponent,
		opponentRunner: game.NewTurnRunner(rules, rng, logger),
	}
	e.Reset()
	return e
}

// Reset restores the start-of-game state: no dice on the table, scores
// zero, and a mandatory roll.
func (e *Env) Reset() {
	e.roll = dice.Roll{}
	e.unbanked = 0
	e.banked = 0
	e.opponentScore = 0
	e.mustRoll = true
	e.justRolled = false
	e.blown = false
	e.turn = 0
}

// Banked returns the agent's banked score.
func (e *Env) Banked() int { return e.banked }

// Unbanked returns the agent's unbanked turn score.
func (e *Env) Unbanked() int { return e.unbanked }

// OpponentScore returns the opponent's banked score (zero in solo mode).
func (e *Env) OpponentScore() int { return e.opponentScore }

// DiceInPlay returns the active dice count on the table.
func (e *Env) DiceInPlay() int { return e.roll.Size() }

// Roll returns the active dice on the table.
func (e *Env) Roll() dice.Roll { return e.roll }

// MustRoll reports whether the only way forward is a roll.
func (e *Env) MustRoll() bool { return e.mustRoll }

// Blown reports whether the last roll busted.
func (e *Env) Blown() bool { return e.blown }

// LegalActions computes the exact set of actions valid right now, in
// ascending action order.
func (e *Env) LegalActions() []Action {
	if e.blown || e.mustRoll {
		return []Action{ActionRoll}
	}
	var actions []Action
	if e.unbanked > 0 && e.canBank() {
		actions = append(actions, ActionBank)
	}
	for face := 1; face <= 6; face++ {
		if e.roll.Count(face) >= 3 {
			actions = append(actions, ActionTriple(face))
		}
	}
	if e.roll.Count(5) > 0 {
		actions = append(actions, ActionTakeFive)
	}
	if e.roll.Count(1) > 0 {
		actions = append(actions, ActionTakeOne)
	}
	if !e.justRolled {
		actions = append(actions, ActionRoll)
	}
	return actions
}

// canBank applies the get-on-board rule.
func (e *Env) canBank() bool {
	return e.banked > 0 || e.unbanked >= e.rules.MinFirstBank
}

// Step applies one external action. Illegal actions never fault the
// engine: they return a StepResult carrying the penalty and reason, with
// the environment already reset. The returned error is reserved for
// engine-internal faults (a broken opponent strategy).
func (e *Env) Step(action Action) (*StepResult, error) {
	if action < 0 || action >= NumActions {
		return e.illegal(action, "no such action"), nil
	}

	if action == ActionRoll {
		if e.justRolled {
			return e.illegal(action, "rolled twice in a row without busting"), nil
		}
		return e.stepRoll(), nil
	}

	e.justRolled = false
	if e.mustRoll {
		return e.illegal(action, "in must-roll state"), nil
	}

	if action == ActionBank {
		if e.unbanked == 0 || !e.canBank() {
			return e.illegal(action, "cannot bank yet"), nil
		}
		return e.stepBank()
	}

	return e.stepTake(action), nil
}

func (e *Env) stepRoll() *StepResult {
	n := e.roll.Size()
	if e.mustRoll || n == 0 {
		n = dice.MaxDice
	}
	e.roll = dice.RollDice(e.rng, n)
	e.mustRoll = false
	e.justRolled = true
	e.blown = score.IsBlown(e.roll)
	if e.blown {
		// Busting forfeits the turn's unbanked score and forces a fresh
		// roll sequence.
		e.logger.Debug("env: blew it", "roll", e.roll, "forfeited", e.unbanked)
		e.unbanked = 0
		e.mustRoll = true
		e.justRolled = false
		return &StepResult{Reward: BustPenalty}
	}
	return &StepResult{}
}

func (e *Env) stepBank() (*StepResult, error) {
	bankedNow := e.unbanked
	e.banked += e.unbanked
	e.unbanked = 0
	e.mustRoll = true
	e.roll = dice.Roll{}

	if e.banked >= e.rules.TargetScore {
		return &StepResult{Reward: float64(bankedNow) + WinBonus, Done: true, Result: "win"}, nil
	}

	if e.opponent != nil {
		result, err := e.opponentRunner.PlayTurn(e.opponent, e.turn, e.opponentScore)
		if err != nil {
			return nil, fmt.Errorf("env: opponent turn: %w", err)
		}
		e.opponentScore += result.Score
		if e.opponentScore >= e.rules.TargetScore {
			return &StepResult{Reward: float64(bankedNow), Done: true, Result: "loss"}, nil
		}
	}

	e.turn++
	return &StepResult{Reward: float64(bankedNow)}, nil
}

func (e *Env) stepTake(action Action) *StepResult {
	g, ok := action.group()
	if !ok {
		return e.illegal(action, "no such action")
	}
	pts, rest, err := score.Take(e.roll, g)
	if err != nil {
		if g.Kind == score.KindTriple {
			return e.illegal(action, "tried to take a combo that was not there")
		}
		return e.illegal(action, "tried to take a die that was not there")
	}
	e.roll = rest
	e.unbanked += pts
	if e.roll.Empty() {
		// Hot dice: the next roll is a fresh hand of six.
		e.mustRoll = true
	}
	return &StepResult{Reward: float64(pts)}
}

func (e *Env) illegal(action Action, reason string) *StepResult {
	err := &IllegalMoveError{Action: action, Reason: reason}
	e.logger.Debug("env: illegal move", "action", action, "reason", reason)
	e.Reset()
	return &StepResult{Reward: IllegalPenalty, Done: true, Illegal: err}
}
