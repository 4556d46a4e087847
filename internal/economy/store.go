// Package economy persists the boops economy: users, communal pools,
// distribution rounds, jobs, cooldowns and game scores.
package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

var (
	// ErrUnknownUser is returned when a user row does not exist.
	ErrUnknownUser = errors.New("unknown user")
	// ErrUnknownServer is returned when a server row does not exist.
	ErrUnknownServer = errors.New("unknown server")
	// ErrOnCooldown is returned when a rate-limited action is repeated too
	// soon.
	ErrOnCooldown = errors.New("action on cooldown")
)

// Store is the SQLite-backed economy. It is safe for concurrent use.
type Store struct {
	db *sql.DB
	// mu serializes multi-statement transactions so read-then-write
	// sequences such as claims see a consistent pool.
	mu sync.Mutex
	// now is swapped in tests.
	now func() time.Time
}

var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA busy_timeout=5000;",
	"PRAGMA foreign_keys=ON;",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		server_id TEXT NOT NULL,
		username TEXT NOT NULL,
		boops REAL NOT NULL DEFAULT 0,
		messages_count INTEGER NOT NULL DEFAULT 0,
		last_work INTEGER,
		last_commit INTEGER,
		last_leader INTEGER,
		job TEXT NOT NULL DEFAULT 'none',
		job_level INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS servers (
		server_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		communal_boops REAL NOT NULL DEFAULT 0,
		current_distribution_round INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS distribution_claims (
		user_id TEXT NOT NULL,
		server_id TEXT NOT NULL,
		distribution_round INTEGER NOT NULL,
		claimed_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, server_id, distribution_round)
	)`,
	`CREATE TABLE IF NOT EXISTS game_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		server_id TEXT NOT NULL,
		username TEXT NOT NULL,
		game_type TEXT NOT NULL,
		score REAL NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_server_id ON users(server_id)`,
	`CREATE INDEX IF NOT EXISTS idx_game_scores_server_game ON game_scores(server_id, game_type)`,
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(5)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, p := range pragmas {
		if _, err := db.ExecContext(initCtx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("error applying %q: %w", p, err)
		}
	}

	tx, err := db.BeginTx(initCtx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error starting schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range schema {
		if _, err := tx.ExecContext(initCtx, q); err != nil {
			db.Close()
			return nil, fmt.Errorf("error creating tables: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error committing schema: %w", err)
	}

	log.Info().Str("path", path).Msg("Database ready")
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// withTx runs fn inside a serialized transaction, committing when fn
// returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
