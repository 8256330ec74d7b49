package statistics

import (
	"math"
	"testing"
)

func record(winner, turns int, scores ...int) GameRecord {
	return GameRecord{Winner: winner, Turns: turns, Scores: scores}
}

func TestMargin(t *testing.T) {
	if m := record(0, 10, 10200, 8000).Margin(); m != 2200 {
		t.Errorf("Expected margin 2200, got %d", m)
	}
	if m := record(1, 10, 9000, 10050).Margin(); m != 1050 {
		t.Errorf("Expected margin 1050, got %d", m)
	}
	// Solo game: margin is the whole score.
	if m := record(0, 10, 10100).Margin(); m != 10100 {
		t.Errorf("Expected solo margin 10100, got %d", m)
	}
}

func TestAddAccumulates(t *testing.T) {
	stats := &Statistics{}
	stats.Add(record(0, 20, 10100, 7000))
	stats.Add(record(1, 30, 6000, 10300))
	stats.Add(record(0, 25, 10500, 2000))

	if stats.Games != 3 {
		t.Errorf("Expected 3 games, got %d", stats.Games)
	}
	if got := stats.WinRate(0); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Expected seat 0 win rate 2/3, got %f", got)
	}
	if got := stats.WinRate(1); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("Expected seat 1 win rate 1/3, got %f", got)
	}
	if got := stats.MeanTurns(); math.Abs(got-25.0) > 1e-9 {
		t.Errorf("Expected mean 25 turns, got %f", got)
	}
	if got := stats.MedianTurns(); got != 25 {
		t.Errorf("Expected median 25, got %f", got)
	}
	if got := stats.MeanScore(1); math.Abs(got-(7000+10300+2000)/3.0) > 1e-9 {
		t.Errorf("Unexpected seat 1 mean score %f", got)
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestWalkovers(t *testing.T) {
	stats := &Statistics{}
	stats.Add(record(0, 20, 10100, 9000)) // margin 1100
	stats.Add(record(0, 15, 10500, 4000)) // margin 6500, walkover

	if stats.Walkovers != 1 {
		t.Errorf("Expected 1 walkover, got %d", stats.Walkovers)
	}
	if stats.MaxMargin != 6500 {
		t.Errorf("Expected max margin 6500, got %d", stats.MaxMargin)
	}
	if got := stats.MeanMargin(); math.Abs(got-3800.0) > 1e-9 {
		t.Errorf("Expected mean margin 3800, got %f", got)
	}
}

func TestVarianceAndConfidence(t *testing.T) {
	stats := &Statistics{}
	for _, turns := range []int{20, 22, 24, 26, 28} {
		stats.Add(record(0, turns, 10000, 5000))
	}

	// Sample variance of 20,22,24,26,28 is 10.
	if got := stats.Variance(); math.Abs(got-10.0) > 1e-9 {
		t.Errorf("Expected variance 10, got %f", got)
	}
	if got := stats.StdDev(); math.Abs(got-math.Sqrt(10)) > 1e-9 {
		t.Errorf("Expected stddev sqrt(10), got %f", got)
	}

	low, high := stats.ConfidenceInterval95()
	if low >= high {
		t.Errorf("Degenerate interval [%f, %f]", low, high)
	}
	mean := stats.MeanTurns()
	if mean < low || mean > high {
		t.Errorf("Mean %f outside its own interval [%f, %f]", mean, low, high)
	}
}

func TestPercentile(t *testing.T) {
	stats := &Statistics{}
	for turns := 1; turns <= 100; turns++ {
		stats.Add(record(0, turns, 10000))
	}

	if got := stats.Percentile(0); got != 1 {
		t.Errorf("Expected P0=1, got %f", got)
	}
	if got := stats.Percentile(1); got != 100 {
		t.Errorf("Expected P100=100, got %f", got)
	}
	if got := stats.Percentile(0.5); math.Abs(got-50.5) > 1e-9 {
		t.Errorf("Expected P50=50.5, got %f", got)
	}
}

func TestValidateCatchesCorruption(t *testing.T) {
	stats := &Statistics{}
	stats.Add(record(0, 10, 10000, 4000))
	stats.Seats[0].Wins++

	if err := stats.Validate(); err == nil {
		t.Error("Expected validation to catch mismatched win counts")
	}
}

func TestEmptyStatistics(t *testing.T) {
	stats := &Statistics{}

	if got := stats.MeanTurns(); got != 0 {
		t.Errorf("Expected 0 mean for empty stats, got %f", got)
	}
	if got := stats.MedianTurns(); got != 0 {
		t.Errorf("Expected 0 median for empty stats, got %f", got)
	}
	if got := stats.WinRate(0); got != 0 {
		t.Errorf("Expected 0 win rate for empty stats, got %f", got)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Empty stats should validate: %v", err)
	}
}
