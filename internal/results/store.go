// Package results persists simulation outcomes to SQLite so long matchup
// runs can be compared across sessions. It stores telemetry about finished
// games, not game state; there is no save/resume format.
package results

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lox/youblewit/internal/statistics"
)

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the results database at path and runs
// migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("results: open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: enable WAL mode: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS matchups (
			id TEXT PRIMARY KEY,
			strategies TEXT NOT NULL,
			target_score INTEGER NOT NULL,
			min_first_bank INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			matchup_id TEXT NOT NULL,
			winner INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			scores TEXT NOT NULL,
			seed INTEGER NOT NULL,
			FOREIGN KEY (matchup_id) REFERENCES matchups(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_matchup ON games(matchup_id)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("results: migration failed: %w", err)
		}
	}
	return nil
}

// Matchup identifies one simulated pairing of strategies.
type Matchup struct {
	ID           string
	Strategies   []string
	TargetScore  int
	MinFirstBank int
}

// SaveMatchup inserts a matchup row, assigning an ID when absent.
func (s *Store) SaveMatchup(m *Matchup) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := s.db.Exec(
		`INSERT INTO matchups (id, strategies, target_score, min_first_bank) VALUES (?, ?, ?, ?)`,
		m.ID, strings.Join(m.Strategies, ","), m.TargetScore, m.MinFirstBank,
	)
	if err != nil {
		return fmt.Errorf("results: save matchup: %w", err)
	}
	return nil
}

// SaveGame records one finished game under a matchup.
func (s *Store) SaveGame(matchupID string, rec statistics.GameRecord) error {
	scores := make([]string, len(rec.Scores))
	for i, v := range rec.Scores {
		scores[i] = fmt.Sprintf("%d", v)
	}
	id := rec.GameID
	if id == "" {
		id = uuid.New().String()
	}
	_, err := s.db.Exec(
		`INSERT INTO games (id, matchup_id, winner, turns, scores, seed) VALUES (?, ?, ?, ?, ?, ?)`,
		id, matchupID, rec.Winner, rec.Turns, strings.Join(scores, ","), rec.Seed,
	)
	if err != nil {
		return fmt.Errorf("results: save game: %w", err)
	}
	return nil
}

// MatchupSummary is the stored aggregate for one matchup.
type MatchupSummary struct {
	MatchupID  string
	Strategies []string
	Games      int
	Wins       map[int]int
	MeanTurns  float64
}

// Summarize aggregates the stored games for a matchup.
func (s *Store) Summarize(matchupID string) (*MatchupSummary, error) {
	summary := &MatchupSummary{MatchupID: matchupID, Wins: make(map[int]int)}

	var strategies string
	err := s.db.QueryRow(`SELECT strategies FROM matchups WHERE id = ?`, matchupID).Scan(&strategies)
	if err != nil {
		return nil, fmt.Errorf("results: matchup %s: %w", matchupID, err)
	}
	summary.Strategies = strings.Split(strategies, ",")

	rows, err := s.db.Query(`SELECT winner, turns FROM games WHERE matchup_id = ?`, matchupID)
	if err != nil {
		return nil, fmt.Errorf("results: query games: %w", err)
	}
	defer rows.Close()

	totalTurns := 0
	for rows.Next() {
		var winner, turns int
		if err := rows.Scan(&winner, &turns); err != nil {
			return nil, fmt.Errorf("results: scan game: %w", err)
		}
		summary.Games++
		summary.Wins[winner]++
		totalTurns += turns
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("results: iterate games: %w", err)
	}
	if summary.Games > 0 {
		summary.MeanTurns = float64(totalTurns) / float64(summary.Games)
	}
	return summary, nil
}
