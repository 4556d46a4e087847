package economy

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

const testServer = "server-1"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "boopato.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUsers(t *testing.T, s *Store, ids ...string) {
	t.Helper()
	ctx := context.Background()
	if err := s.EnsureServer(ctx, testServer, "Test Server"); err != nil {
		t.Fatalf("EnsureServer failed: %v", err)
	}
	for _, id := range ids {
		if _, err := s.EnsureUser(ctx, id, testServer, "user-"+id); err != nil {
			t.Fatalf("EnsureUser(%s) failed: %v", id, err)
		}
	}
}

// fundPool adds amount to the test server's pool the way paid labor does.
func fundPool(t *testing.T, s *Store, amount float64) {
	t.Helper()
	err := s.withTx(context.Background(), func(tx *sql.Tx) error {
		return contribute(context.Background(), tx, testServer, amount)
	})
	if err != nil {
		t.Fatalf("contribute failed: %v", err)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boopato.db")
	for i := 0; i < 2; i++ {
		s, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		s.Close()
	}
}

func TestEnsureUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	existed, err := s.EnsureUser(ctx, "u1", testServer, "alice")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if existed {
		t.Error("Expected a new user on first call")
	}
	existed, err = s.EnsureUser(ctx, "u1", testServer, "alice")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !existed {
		t.Error("Expected the user to exist on second call")
	}

	pool, err := s.CommunalPool(ctx, testServer)
	if err != nil {
		t.Fatalf("Expected server row to be created: %v", err)
	}
	if pool != 0 {
		t.Errorf("Expected empty pool, got %.2f", pool)
	}

	if _, err := s.Balance(ctx, "missing"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Expected ErrUnknownUser, got %v", err)
	}
	if err := s.AddBoops(ctx, "missing", 1); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Expected ErrUnknownUser, got %v", err)
	}
	if _, err := s.CommunalPool(ctx, "nowhere"); !errors.Is(err, ErrUnknownServer) {
		t.Errorf("Expected ErrUnknownServer, got %v", err)
	}
}

func TestBalanceUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "u1")

	if err := s.AddBoops(ctx, "u1", 2.5); err != nil {
		t.Fatalf("AddBoops failed: %v", err)
	}
	if err := s.AddBoops(ctx, "u1", -1); err != nil {
		t.Fatalf("AddBoops failed: %v", err)
	}
	if got, _ := s.Balance(ctx, "u1"); !approx(got, 1.5) {
		t.Errorf("Expected 1.5, got %.2f", got)
	}
	if err := s.SetBoops(ctx, "u1", 42); err != nil {
		t.Fatalf("SetBoops failed: %v", err)
	}
	if got, _ := s.Balance(ctx, "u1"); got != 42 {
		t.Errorf("Expected 42, got %.2f", got)
	}
}

func TestRankings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a", "b", "c")

	s.SetBoops(ctx, "a", 5)
	s.SetBoops(ctx, "b", 50)
	s.SetBoops(ctx, "c", 20)
	for i := 0; i < 3; i++ {
		s.IncrementMessages(ctx, "c")
	}
	s.IncrementMessages(ctx, "a")

	top, err := s.TopContributors(ctx, testServer, 2)
	if err != nil {
		t.Fatalf("TopContributors failed: %v", err)
	}
	if len(top) != 2 || top[0].ID != "b" || top[1].ID != "c" {
		t.Errorf("Unexpected contributors %+v", top)
	}

	talkers, err := s.TopTalkers(ctx, testServer, 1)
	if err != nil {
		t.Fatalf("TopTalkers failed: %v", err)
	}
	if len(talkers) != 1 || talkers[0].ID != "c" || talkers[0].Messages != 3 {
		t.Errorf("Unexpected talkers %+v", talkers)
	}

	all, err := s.AllUsers(ctx, testServer)
	if err != nil {
		t.Fatalf("AllUsers failed: %v", err)
	}
	if len(all) != 3 || all[2].ID != "a" {
		t.Errorf("Expected all users richest first, got %+v", all)
	}
}

func TestResetServer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a", "b")
	fundPool(t, s, 12)

	if err := s.ResetServer(ctx, testServer); err != nil {
		t.Fatalf("ResetServer failed: %v", err)
	}
	users, _ := s.AllUsers(ctx, testServer)
	if len(users) != 0 {
		t.Errorf("Expected no users after reset, got %d", len(users))
	}
	if pool, _ := s.CommunalPool(ctx, testServer); pool != 0 {
		t.Errorf("Expected empty pool after reset, got %.2f", pool)
	}
}
