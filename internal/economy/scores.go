package economy

import (
	"context"
	"database/sql"
	"fmt"
)

// Game types recorded in game_scores.
const (
	// GameConnect4 scores are the moves taken to beat the computer.
	GameConnect4 = "connect4"
	// GameHangman scores are the wrong guesses made on a solved word.
	GameHangman = "hangman"
)

// Score is a user's best result in a game. Lower is better.
type Score struct {
	UserID   string
	Username string
	Best     float64
}

// SaveGameScore records a finished game.
func (s *Store) SaveGameScore(ctx context.Context, userID, serverID, username, game string, score float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_scores (user_id, server_id, username, game_type, score) VALUES (?, ?, ?, ?, ?)`,
		userID, serverID, username, game, score)
	if err != nil {
		return fmt.Errorf("error saving %s score for %s: %w", game, userID, err)
	}
	return nil
}

// BestScore returns the user's lowest score, reporting false when they have
// none.
func (s *Store) BestScore(ctx context.Context, userID, serverID, game string) (float64, bool, error) {
	var best sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(score) FROM game_scores WHERE user_id = ? AND server_id = ? AND game_type = ?`,
		userID, serverID, game).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("error reading best %s score for %s: %w", game, userID, err)
	}
	return best.Float64, best.Valid, nil
}

// Leaderboard returns each user's best score, best first.
func (s *Store) Leaderboard(ctx context.Context, serverID, game string, limit int) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, username, MIN(score) AS best FROM game_scores
		WHERE server_id = ? AND game_type = ?
		GROUP BY user_id
		ORDER BY best ASC, user_id
		LIMIT ?`,
		serverID, game, limit)
	if err != nil {
		return nil, fmt.Errorf("error reading %s leaderboard: %w", game, err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.UserID, &sc.Username, &sc.Best); err != nil {
			return nil, fmt.Errorf("error scanning score: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}
