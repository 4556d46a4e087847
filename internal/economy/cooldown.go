package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Action is a rate-limited command.
type Action string

const (
	ActionWork   Action = "work"
	ActionCommit Action = "commit"
)

// Cooldown windows.
const (
	WorkCooldown   = 3 * time.Hour
	CommitCooldown = 30 * time.Minute
)

// Window returns the cooldown for the action.
func (a Action) Window() time.Duration {
	if a == ActionCommit {
		return CommitCooldown
	}
	return WorkCooldown
}

func (a Action) column() (string, error) {
	switch a {
	case ActionWork:
		return "last_work", nil
	case ActionCommit:
		return "last_commit", nil
	}
	return "", fmt.Errorf("unknown action %q", a)
}

// LastAction returns when the user last performed a. The zero time means
// never.
func (s *Store) LastAction(ctx context.Context, userID string, a Action) (time.Time, error) {
	col, err := a.column()
	if err != nil {
		return time.Time{}, err
	}
	var ts sql.NullInt64
	err = s.db.QueryRowContext(ctx, `SELECT `+col+` FROM users WHERE user_id = ?`, userID).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading %s for %s: %w", col, userID, err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(ts.Int64, 0), nil
}

// RecordLabor stamps the user's cooldown for a and pays out in a single
// transaction. The stamp only lands if the previous one has expired, so two
// concurrent presses pay once; the loser gets ErrOnCooldown. A positive
// communal amount goes to the server pool and opens a new distribution
// round. personal may be negative for fines.
func (s *Store) RecordLabor(ctx context.Context, userID, serverID string, a Action, communal, personal float64) error {
	col, err := a.column()
	if err != nil {
		return err
	}
	now := s.now().Unix()
	expired := now - int64(a.Window()/time.Second)

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET `+col+` = ?
			WHERE user_id = ? AND (`+col+` IS NULL OR `+col+` <= ?)`,
			now, userID, expired)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var exists int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM users WHERE user_id = ?`, userID).Scan(&exists); err != nil {
				return err
			}
			if exists == 0 {
				return fmt.Errorf("%w: %s", ErrUnknownUser, userID)
			}
			return ErrOnCooldown
		}

		if communal > 0 {
			if err := contribute(ctx, tx, serverID, communal); err != nil {
				return err
			}
		}
		if personal != 0 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE users SET boops = boops + ? WHERE user_id = ?`, personal, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrOnCooldown) {
		return err
	}
	if err != nil {
		return fmt.Errorf("error recording %s for %s: %w", a, userID, err)
	}
	return nil
}

// ClearCooldowns resets every cooldown for the user.
func (s *Store) ClearCooldowns(ctx context.Context, userID string) error {
	return s.updateUser(ctx,
		`UPDATE users SET last_work = NULL, last_commit = NULL, last_leader = NULL WHERE user_id = ?`,
		userID)
}

// CooldownRemaining returns how long until an action last performed at last
// may run again. A zero last time is never on cooldown.
func CooldownRemaining(last, now time.Time, window time.Duration) time.Duration {
	if last.IsZero() {
		return 0
	}
	if remaining := last.Add(window).Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
