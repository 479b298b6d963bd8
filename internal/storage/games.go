package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-rps/internal/game"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// Player identifies who played a stored round or game.
type Player struct {
	ID   string
	Name string
}

// RoundRecord is a stored single-player round.
type RoundRecord struct {
	ID           int64
	Player       Player
	Variant      rules.Variant
	Number       int
	PlayerMove   rules.Move
	ComputerMove rules.Move
	Outcome      rules.Outcome
	Phrase       string
	PlayedAt     time.Time
}

// GameRecord is a finished single-player game (wins/loses/draws at the
// moment the player left the game screen).
type GameRecord struct {
	ID        int64
	Player    Player
	Variant   rules.Variant
	Wins      int
	Loses     int
	Draws     int
	CreatedAt time.Time
}

// Total returns the number of rounds in the game.
func (g GameRecord) Total() int {
	return g.Wins + g.Loses + g.Draws
}

// PlayerStanding is one leaderboard row.
type PlayerStanding struct {
	Rank    int
	Player  Player
	Games   int
	Wins    int
	Loses   int
	Draws   int
	WinRate float64 // wins / (wins + loses), 0 when nothing was decided
}

// VariantStats aggregates every stored round of one variant.
type VariantStats struct {
	Variant   rules.Variant
	Rounds    int
	Wins      int
	Loses     int
	Draws     int
	Games     int
	MoveCount map[rules.Move]int // How often the player chose each move
	LastPlay  time.Time
}

// SaveRound records one resolved round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(p Player, r game.Round) (int64, error) {
	playedAt := r.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds
		 (player_id, player_name, variant, round_no, player_move, computer_move, outcome, phrase, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, r.Variant.Key(), r.Number,
		r.Player.String(), r.Computer.String(), r.Outcome.String(), r.Phrase,
		playedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveGame records a finished game. Empty games are ignored and return 0.
func (s *Store) SaveGame(p Player, v rules.Variant, stats game.Stats) (int64, error) {
	if stats.Total() == 0 {
		return 0, nil
	}

	result, err := s.db.Exec(
		`INSERT INTO games (player_id, player_name, variant, wins, loses, draws, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, v.Key(), stats.Wins, stats.Loses, stats.Draws, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopPlayers ranks players of a variant by total wins, then win rate.
// Players are grouped by ID; the most recent name is shown.
func (s *Store) TopPlayers(v rules.Variant, limit int) ([]PlayerStanding, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT g.player_id,
		        (SELECT player_name FROM games n WHERE n.player_id = g.player_id ORDER BY n.id DESC LIMIT 1),
		        COUNT(*), SUM(g.wins), SUM(g.loses), SUM(g.draws),
		        COALESCE(CAST(SUM(g.wins) AS REAL) / NULLIF(SUM(g.wins) + SUM(g.loses), 0), 0) AS win_rate
		 FROM games g
		 WHERE g.variant = ?
		 GROUP BY g.player_id
		 ORDER BY SUM(g.wins) DESC, win_rate DESC, g.player_id
		 LIMIT ?`,
		v.Key(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var standings []PlayerStanding
	for rows.Next() {
		var ps PlayerStanding
		if err := rows.Scan(
			&ps.Player.ID, &ps.Player.Name,
			&ps.Games, &ps.Wins, &ps.Loses, &ps.Draws, &ps.WinRate,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ps.Rank = len(standings) + 1
		standings = append(standings, ps)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return standings, nil
}

// RecentGames retrieves the most recent finished games across all variants.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player_id, player_name, variant, wins, loses, draws, created_at
		 FROM games
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var variant string
		var createdAt any
		if err := rows.Scan(
			&g.ID, &g.Player.ID, &g.Player.Name, &variant,
			&g.Wins, &g.Loses, &g.Draws, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Variant, _ = rules.ParseVariant(variant)
		g.CreatedAt = scanTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

// PlayerRounds retrieves a player's most recent rounds, newest first.
func (s *Store) PlayerRounds(playerID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player_id, player_name, variant, round_no, player_move, computer_move, outcome, phrase, played_at
		 FROM rounds
		 WHERE player_id = ?
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var variant, playerMove, computerMove, outcome string
		var playedAt any
		if err := rows.Scan(
			&r.ID, &r.Player.ID, &r.Player.Name, &variant, &r.Number,
			&playerMove, &computerMove, &outcome, &r.Phrase, &playedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Variant, _ = rules.ParseVariant(variant)
		r.PlayerMove, _ = rules.ParseMoveName(playerMove)
		r.ComputerMove, _ = rules.ParseMoveName(computerMove)
		r.Outcome, _ = rules.ParseOutcome(outcome)
		r.PlayedAt = scanTime(playedAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return rounds, nil
}

// VariantStats aggregates the stored rounds and games of one variant.
func (s *Store) VariantStats(v rules.Variant) (*VariantStats, error) {
	stats := &VariantStats{
		Variant:   v,
		MoveCount: make(map[rules.Move]int),
	}

	var lastPlay any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'win'), 0),
		        COALESCE(SUM(outcome = 'lose'), 0),
		        COALESCE(SUM(outcome = 'draw'), 0),
		        MAX(played_at)
		 FROM rounds WHERE variant = ?`,
		v.Key(),
	).Scan(&stats.Rounds, &stats.Wins, &stats.Loses, &stats.Draws, &lastPlay)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlay = scanTime(lastPlay)

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM games WHERE variant = ?", v.Key(),
	).Scan(&stats.Games); err != nil {
		return nil, fmt.Errorf("storage: cannot count games: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT player_move, COUNT(*) FROM rounds WHERE variant = ? GROUP BY player_move`,
		v.Key(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query move counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if m, ok := rules.ParseMoveName(name); ok {
			stats.MoveCount[m] = count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearVariant deletes all rounds and games of a variant.
func (s *Store) ClearVariant(v rules.Variant) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM rounds WHERE variant = ?", v.Key()); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM games WHERE variant = ?", v.Key()); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}
