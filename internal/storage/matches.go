package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-rps/internal/multiplayer"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// OnlineMatchResult represents the outcome of an online PvP match.
type OnlineMatchResult struct {
	ID             int64
	MatchID        string
	Variant        rules.Variant
	BestOf         int
	Player1Name    string
	Player2Name    string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	Rounds         int    // Rounds played, draws included
	WinnerName     string // Empty if nobody won
	EndReason      string // "Match completed", "Opponent disconnected", ...
	Duration       int    // Duration in seconds
	CreatedAt      time.Time
}

const onlineMatchColumns = `id, match_id, variant, best_of, player1_name, player2_name,
	player1_session, player2_session, score1, score2, rounds,
	winner_name, end_reason, duration_secs, created_at`

// SaveOnlineMatch records the result of an online PvP match.
// Returns the ID of the inserted record.
func (s *Store) SaveOnlineMatch(result OnlineMatchResult) (int64, error) {
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO online_matches
		 (match_id, variant, best_of, player1_name, player2_name, player1_session, player2_session,
		  score1, score2, rounds, winner_name, end_reason, duration_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.MatchID,
		result.Variant.Key(),
		result.BestOf,
		result.Player1Name,
		result.Player2Name,
		result.Player1Session,
		result.Player2Session,
		result.Score1,
		result.Score2,
		result.Rounds,
		result.WinnerName,
		result.EndReason,
		result.Duration,
		createdAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save online match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOnlineMatch(row rowScanner) (OnlineMatchResult, error) {
	var result OnlineMatchResult
	var variant string
	var createdAt any
	var winnerName sql.NullString

	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&variant,
		&result.BestOf,
		&result.Player1Name,
		&result.Player2Name,
		&result.Player1Session,
		&result.Player2Session,
		&result.Score1,
		&result.Score2,
		&result.Rounds,
		&winnerName,
		&result.EndReason,
		&result.Duration,
		&createdAt,
	)
	if err != nil {
		return result, err
	}

	result.Variant, _ = rules.ParseVariant(variant)
	if winnerName.Valid {
		result.WinnerName = winnerName.String
	}
	result.CreatedAt = scanTime(createdAt)
	return result, nil
}

// OnlineMatchByID retrieves an online match by its match ID.
// Returns nil, nil when no such match exists.
func (s *Store) OnlineMatchByID(matchID string) (*OnlineMatchResult, error) {
	row := s.db.QueryRow(
		`SELECT `+onlineMatchColumns+` FROM online_matches WHERE match_id = ?`,
		matchID,
	)
	result, err := scanOnlineMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online match: %w", err)
	}
	return &result, nil
}

// RecentOnlineMatches retrieves the most recent online matches.
func (s *Store) RecentOnlineMatches(limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+onlineMatchColumns+`
		 FROM online_matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online matches: %w", err)
	}
	defer rows.Close()

	return collectOnlineMatches(rows)
}

// PlayerMatchHistory retrieves online matches a player took part in.
func (s *Store) PlayerMatchHistory(playerName string, limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+onlineMatchColumns+`
		 FROM online_matches
		 WHERE player1_name = ? OR player2_name = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		playerName, playerName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player matches: %w", err)
	}
	defer rows.Close()

	return collectOnlineMatches(rows)
}

func collectOnlineMatches(rows *sql.Rows) ([]OnlineMatchResult, error) {
	var results []OnlineMatchResult
	for rows.Next() {
		result, err := scanOnlineMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
// This adapter allows the coordinator to save match results without direct storage dependency.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	result := OnlineMatchResult{
		MatchID:        data.MatchID,
		Variant:        data.Variant,
		BestOf:         data.BestOf,
		Player1Name:    data.Player1Name,
		Player2Name:    data.Player2Name,
		Player1Session: data.Player1Session,
		Player2Session: data.Player2Session,
		Score1:         data.Score1,
		Score2:         data.Score2,
		Rounds:         data.Rounds,
		WinnerName:     data.WinnerName,
		EndReason:      data.EndReason,
		Duration:       data.DurationSecs,
	}
	_, err := s.SaveOnlineMatch(result)
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
