package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// User is a ranked row as shown on leaderboards.
type User struct {
	ID       string
	Username string
	Boops    float64
	Messages int64
}

// EnsureServer inserts the server if it is missing. Existing rows keep their
// name and pool.
func (s *Store) EnsureServer(ctx context.Context, serverID, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO servers (server_id, name, communal_boops) VALUES (?, ?, 0)`,
		serverID, name)
	if err != nil {
		return fmt.Errorf("error ensuring server %s: %w", serverID, err)
	}
	return nil
}

// EnsureUser inserts the user, and their server, if missing. It reports
// whether the user already existed.
func (s *Store) EnsureUser(ctx context.Context, userID, serverID, username string) (bool, error) {
	var existed bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE user_id = ?`, userID).Scan(&n); err != nil {
			return err
		}
		existed = n > 0
		if !existed {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO users (user_id, server_id, username, boops, messages_count, job, job_level)
				VALUES (?, ?, ?, 0, 0, 'none', 1)`,
				userID, serverID, username); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO servers (server_id, name, communal_boops) VALUES (?, 'Server', 0)`,
			serverID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error ensuring user %s: %w", userID, err)
	}
	if !existed {
		log.Debug().Str("user", username).Str("server", serverID).Msg("Added new user")
	}
	return existed, nil
}

// IncrementMessages bumps the user's message counter.
func (s *Store) IncrementMessages(ctx context.Context, userID string) error {
	return s.updateUser(ctx, `UPDATE users SET messages_count = messages_count + 1 WHERE user_id = ?`, userID)
}

// Balance returns the user's boops.
func (s *Store) Balance(ctx context.Context, userID string) (float64, error) {
	var boops float64
	err := s.db.QueryRowContext(ctx, `SELECT boops FROM users WHERE user_id = ?`, userID).Scan(&boops)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	if err != nil {
		return 0, fmt.Errorf("error reading balance for %s: %w", userID, err)
	}
	return boops, nil
}

// AddBoops adds amount, which may be negative, to the user's balance.
func (s *Store) AddBoops(ctx context.Context, userID string, amount float64) error {
	return s.updateUser(ctx, `UPDATE users SET boops = boops + ? WHERE user_id = ?`, amount, userID)
}

// SetBoops overwrites the user's balance.
func (s *Store) SetBoops(ctx context.Context, userID string, boops float64) error {
	return s.updateUser(ctx, `UPDATE users SET boops = ? WHERE user_id = ?`, boops, userID)
}

// CommunalPool returns the server's communal boops.
func (s *Store) CommunalPool(ctx context.Context, serverID string) (float64, error) {
	var pool float64
	err := s.db.QueryRowContext(ctx, `SELECT communal_boops FROM servers WHERE server_id = ?`, serverID).Scan(&pool)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
	}
	if err != nil {
		return 0, fmt.Errorf("error reading communal pool for %s: %w", serverID, err)
	}
	return pool, nil
}

// TopContributors returns the richest users of a server.
func (s *Store) TopContributors(ctx context.Context, serverID string, limit int) ([]User, error) {
	return s.queryUsers(ctx,
		`SELECT user_id, username, boops, messages_count FROM users
		WHERE server_id = ? ORDER BY boops DESC, user_id LIMIT ?`,
		serverID, limit)
}

// TopTalkers returns the users with the most messages.
func (s *Store) TopTalkers(ctx context.Context, serverID string, limit int) ([]User, error) {
	return s.queryUsers(ctx,
		`SELECT user_id, username, boops, messages_count FROM users
		WHERE server_id = ? ORDER BY messages_count DESC, user_id LIMIT ?`,
		serverID, limit)
}

const allUsersQuery = `SELECT user_id, username, boops, messages_count FROM users
	WHERE server_id = ? ORDER BY boops DESC, user_id`

// AllUsers returns every user of a server, richest first.
func (s *Store) AllUsers(ctx context.Context, serverID string) ([]User, error) {
	return s.queryUsers(ctx, allUsersQuery, serverID)
}

// ResetServer deletes the server's users and claims and empties its pool.
func (s *Store) ResetServer(ctx context.Context, serverID string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmts := []string{
			`DELETE FROM users WHERE server_id = ?`,
			`DELETE FROM distribution_claims WHERE server_id = ?`,
			`UPDATE servers SET communal_boops = 0 WHERE server_id = ?`,
		}
		for _, q := range stmts {
			if _, err := tx.ExecContext(ctx, q, serverID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error resetting server %s: %w", serverID, err)
	}
	log.Info().Str("server", serverID).Msg("Server economy reset")
	return nil
}

func (s *Store) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	return queryUsers(ctx, s.db, query, args...)
}

func queryUsers(ctx context.Context, q querier, query string, args ...any) ([]User, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Boops, &u.Messages); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// updateUser runs a single-row update and maps a missing row to
// ErrUnknownUser. The user ID must be the last argument.
func (s *Store) updateUser(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %v", ErrUnknownUser, args[len(args)-1])
	}
	return nil
}
