package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// contribute adds amount to the server's communal pool and opens a new
// distribution round so everyone may claim again.
func contribute(ctx context.Context, tx *sql.Tx, serverID string, amount float64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE servers SET communal_boops = communal_boops + ?,
			current_distribution_round = current_distribution_round + 1
		WHERE server_id = ?`, amount, serverID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
	}
	log.Debug().Str("server", serverID).Float64("amount", amount).Msg("Communal contribution")
	return nil
}

// Claim pays the user a share of the communal pool for the current round:
// the remaining pool divided by every user on the server, rounded to cents.
// It returns 0 without changes when the user already claimed, the pool is
// empty or the share rounds to nothing. Once every user has claimed, the
// round advances.
func (s *Store) Claim(ctx context.Context, userID, serverID string) (float64, error) {
	var share float64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var pool float64
		var round int64
		err := tx.QueryRowContext(ctx,
			`SELECT communal_boops, current_distribution_round FROM servers WHERE server_id = ?`,
			serverID).Scan(&pool, &round)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
		}
		if err != nil {
			return err
		}

		claimed, err := hasClaimed(ctx, tx, userID, serverID, round)
		if err != nil || claimed {
			return err
		}

		total, claimedUsers, err := claimCounts(ctx, tx, serverID, round)
		if err != nil {
			return err
		}
		if total-claimedUsers <= 0 || pool <= 0 {
			return nil
		}
		amount := round2(pool / float64(total))
		if amount <= 0 {
			return nil
		}

		res, err := tx.ExecContext(ctx, `UPDATE users SET boops = boops + ? WHERE user_id = ?`, amount, userID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrUnknownUser, userID)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE servers SET communal_boops = communal_boops - ? WHERE server_id = ?`,
			amount, serverID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO distribution_claims (user_id, server_id, distribution_round, claimed_at)
			VALUES (?, ?, ?, ?)`,
			userID, serverID, round, s.now().Unix()); err != nil {
			return err
		}

		if claimedUsers+1 >= total {
			if _, err := tx.ExecContext(ctx,
				`UPDATE servers SET current_distribution_round = current_distribution_round + 1
				WHERE server_id = ?`, serverID); err != nil {
				return err
			}
			log.Debug().Str("server", serverID).Int64("round", round).Msg("All users claimed, advancing round")
		}
		share = amount
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error claiming for %s: %w", userID, err)
	}
	return share, nil
}

// DistributionStatus returns the current round, how many users claimed in
// it and how many users the server has.
func (s *Store) DistributionStatus(ctx context.Context, serverID string) (round, claimed, total int64, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT current_distribution_round FROM servers WHERE server_id = ?`, serverID).Scan(&round)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, 0, fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
	}
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error reading round for %s: %w", serverID, err)
	}
	total, claimed, err = claimCounts(ctx, s.db, serverID, round)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error counting claims for %s: %w", serverID, err)
	}
	return round, claimed, total, nil
}

// HasClaimed reports whether the user claimed in the server's current round.
func (s *Store) HasClaimed(ctx context.Context, userID, serverID string) (bool, error) {
	var round int64
	err := s.db.QueryRowContext(ctx,
		`SELECT current_distribution_round FROM servers WHERE server_id = ?`, serverID).Scan(&round)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
	}
	if err != nil {
		return false, fmt.Errorf("error reading round for %s: %w", serverID, err)
	}
	ok, err := hasClaimed(ctx, s.db, userID, serverID, round)
	if err != nil {
		return false, fmt.Errorf("error reading claim for %s: %w", userID, err)
	}
	return ok, nil
}

// StartNewRound advances the server's distribution round and returns it.
func (s *Store) StartNewRound(ctx context.Context, serverID string) (int64, error) {
	var round int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE servers SET current_distribution_round = current_distribution_round + 1
			WHERE server_id = ?`, serverID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
		}
		return tx.QueryRowContext(ctx,
			`SELECT current_distribution_round FROM servers WHERE server_id = ?`, serverID).Scan(&round)
	})
	if err != nil {
		return 0, fmt.Errorf("error starting round for %s: %w", serverID, err)
	}
	return round, nil
}

// DistributeToAll pays every user of the server an equal rounded share of
// the pool, empties the pool, advances the round and clears all claims.
// It returns the number of users paid and the share each received.
func (s *Store) DistributeToAll(ctx context.Context, serverID string) (int64, float64, error) {
	var paid int64
	var share float64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var pool float64
		err := tx.QueryRowContext(ctx,
			`SELECT communal_boops FROM servers WHERE server_id = ?`, serverID).Scan(&pool)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
		}
		if err != nil || pool <= 0 {
			return err
		}

		var total int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE server_id = ?`, serverID).Scan(&total); err != nil {
			return err
		}
		if total <= 0 {
			return nil
		}
		amount := round2(pool / float64(total))
		if amount <= 0 {
			return nil
		}

		res, err := tx.ExecContext(ctx, `UPDATE users SET boops = boops + ? WHERE server_id = ?`, amount, serverID)
		if err != nil {
			return err
		}
		if paid, err = res.RowsAffected(); err != nil {
			return err
		}
		stmts := []string{
			`UPDATE servers SET communal_boops = 0, current_distribution_round = current_distribution_round + 1
			WHERE server_id = ?`,
			`DELETE FROM distribution_claims WHERE server_id = ?`,
		}
		for _, q := range stmts {
			if _, err := tx.ExecContext(ctx, q, serverID); err != nil {
				return err
			}
		}
		share = amount
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("error distributing for %s: %w", serverID, err)
	}
	if paid > 0 {
		log.Info().Str("server", serverID).Int64("users", paid).Float64("share", share).Msg("Distributed communal pool")
	}
	return paid, share, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func hasClaimed(ctx context.Context, q querier, userID, serverID string, round int64) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM distribution_claims
		WHERE user_id = ? AND server_id = ? AND distribution_round = ?`,
		userID, serverID, round).Scan(&n)
	return n > 0, err
}

func claimCounts(ctx context.Context, q querier, serverID string, round int64) (total, claimed int64, err error) {
	if err = q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE server_id = ?`, serverID).Scan(&total); err != nil {
		return 0, 0, err
	}
	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM distribution_claims WHERE server_id = ? AND distribution_round = ?`,
		serverID, round).Scan(&claimed)
	return total, claimed, err
}
