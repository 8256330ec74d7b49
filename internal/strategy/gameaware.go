package strategy

import (
	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/score"
)

// Risk selects a banking-threshold profile for GameAware.
type Risk string

const (
	RiskConservative Risk = "conservative"
	RiskBaseline     Risk = "baseline"
	RiskAggressive   Risk = "aggressive"
)

// baselineThresholds are EV-optimal banking cutoffs per remaining-dice
// count for this rule set, derived from exact dynamic programming over all
// roll outcomes. The 6-dice entry is above the target score: with a full
// hand you effectively never stop.
var baselineThresholds = Thresholds{1: 250, 2: 250, 3: 400, 4: 1000, 5: 2900, 6: 10050}

var conservativeThresholds = Thresholds{1: 150, 2: 200, 3: 300, 4: 800, 5: 2700, 6: 10000}

var aggressiveThresholds = Thresholds{1: 300, 2: 300, 3: 500, 4: 1200, 5: 3200, 6: 10050}

// endgameWinChance maps points-needed-this-turn to the probability of
// converting the whole turn, used when an opponent threatens to win.
var endgameWinChance = []struct {
	needed int
	chance float64
}{
	{300, 0.83}, {400, 0.67}, {500, 0.52}, {600, 0.45}, {700, 0.38},
	{800, 0.31}, {900, 0.27}, {1000, 0.25}, {1200, 0.15}, {1500, 0.095},
	{2000, 0.038},
}

// GameAware is the endgame-aware threshold strategy. Once any opponent sits
// within striking distance of the target it abandons the EV-optimal
// thresholds and races for the line; otherwise it banks on the profile's
// cutoffs. Takes are greedy: every available group, highest value first.
type GameAware struct {
	thresholds Thresholds
	target     int
	opponents  []int
}

// NewGameAware returns a game-aware strategy for the given risk profile.
func NewGameAware(risk Risk) *GameAware {
	table := baselineThresholds
	switch risk {
	case RiskConservative:
		table = conservativeThresholds
	case RiskAggressive:
		table = aggressiveThresholds
	}
	return &GameAware{thresholds: table, target: 10000}
}

// ObserveOpponents records opponent banked scores before each turn.
func (g *GameAware) ObserveOpponents(banked []int) {
	g.opponents = append(g.opponents[:0], banked...)
}

func (g *GameAware) ShouldRoll(turn, banked, diceInPlay, unbanked int) bool {
	if banked+unbanked >= g.target {
		return false
	}
	pointsNeeded := g.target - banked
	threshold := g.thresholds[diceInPlay]

	if len(g.opponents) > 0 {
		closest := 0
		for _, s := range g.opponents {
			if s > closest {
				closest = s
			}
		}
		if g.target-closest <= 600 {
			// An opponent can realistically close it out next turn.
			toGo := pointsNeeded - unbanked
			if toGo <= 600 || g.winChance(toGo) >= 0.1 {
				threshold = toGo // race them to the line
			} else {
				threshold = g.thresholds[diceInPlay] + 200 // hail mary
			}
		}
	} else if pointsNeeded <= 1000 {
		threshold = min(threshold, pointsNeeded)
	}

	return unbanked < threshold
}

// winChance looks up the probability of converting this turn given the
// points still needed.
func (g *GameAware) winChance(pointsNeeded int) float64 {
	if pointsNeeded <= 0 {
		return 1.0
	}
	for _, e := range endgameWinChance {
		if pointsNeeded <= e.needed {
			return e.chance
		}
	}
	return 0.01
}

func (g *GameAware) ChooseGroups(roll dice.Roll) []score.Group {
	return greedyTakes(roll)
}
