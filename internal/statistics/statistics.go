// Package statistics accumulates summary statistics over simulated games:
// win rates per seat, game length in turns, and winning margins.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// WalkMargin is the winning margin at or above which a game counts as a
// walkover.
const WalkMargin = 2000

// GameRecord is the outcome of a single simulated game.
type GameRecord struct {
	GameID string
	Winner int   // winning seat index
	Turns  int   // total turns played
	Scores []int // final banked score per seat
	Seed   int64 // RNG seed for replay
}

// Margin returns the winner's lead over the best non-winning score.
func (r GameRecord) Margin() int {
	best := 0
	for i, s := range r.Scores {
		if i != r.Winner && s > best {
			best = s
		}
	}
	return r.Scores[r.Winner] - best
}

// SeatStats tracks per-seat outcomes.
type SeatStats struct {
	Games    int
	Wins     int
	SumScore float64
}

// Statistics tracks aggregate results for one matchup.
type Statistics struct {
	Games     int
	SumTurns  float64
	SumTurns2 float64   // sum of squares for variance
	Values    []float64 // per-game turn counts, for median/percentiles

	Seats []SeatStats

	MaxMargin int
	SumMargin float64
	Walkovers int // games decided by WalkMargin or more
}

// Add incorporates one game result.
func (s *Statistics) Add(rec GameRecord) {
	turns := float64(rec.Turns)
	s.Games++
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)

	for len(s.Seats) < len(rec.Scores) {
		s.Seats = append(s.Seats, SeatStats{})
	}
	for i, score := range rec.Scores {
		s.Seats[i].Games++
		s.Seats[i].SumScore += float64(score)
	}
	s.Seats[rec.Winner].Wins++

	margin := rec.Margin()
	s.SumMargin += float64(margin)
	if margin > s.MaxMargin {
		s.MaxMargin = margin
	}
	if margin >= WalkMargin {
		s.Walkovers++
	}
}

// MeanTurns returns the arithmetic mean game length in turns.
func (s *Statistics) MeanTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of game length.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.MeanTurns()
	return (s.SumTurns2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of game length.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean game length.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for mean turns.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.MeanTurns()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games won by the given seat.
func (s *Statistics) WinRate(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Games)
}

// MeanScore returns the mean final score for the given seat.
func (s *Statistics) MeanScore(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Seats[seat].Games == 0 {
		return 0
	}
	return s.Seats[seat].SumScore / float64(s.Seats[seat].Games)
}

// MeanMargin returns the mean winning margin.
func (s *Statistics) MeanMargin() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// MedianTurns returns the median game length.
func (s *Statistics) MedianTurns() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the game length at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks internal consistency of the accumulated counts.
func (s *Statistics) Validate() error {
	wins := 0
	for _, seat := range s.Seats {
		wins += seat.Wins
	}
	if wins != s.Games {
		return fmt.Errorf("statistics: %d wins recorded across %d games", wins, s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("statistics: %d turn samples for %d games", len(s.Values), s.Games)
	}
	return nil
}
