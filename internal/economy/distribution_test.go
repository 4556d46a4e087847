package economy

import (
	"context"
	"errors"
	"testing"
)

func TestClaim(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a", "b", "c")

	fundPool(t, s, 30)
	round, claimed, total, err := s.DistributionStatus(ctx, testServer)
	if err != nil {
		t.Fatalf("DistributionStatus failed: %v", err)
	}
	if round != 2 || claimed != 0 || total != 3 {
		t.Errorf("Expected round 2 with 0/3 claims, got round %d with %d/%d", round, claimed, total)
	}

	tests := []struct {
		user string
		want float64
	}{
		{"a", 10},
		{"a", 0},
		{"b", 6.67},
		{"c", 4.44},
	}
	for _, tt := range tests {
		got, err := s.Claim(ctx, tt.user, testServer)
		if err != nil {
			t.Fatalf("Claim(%s) failed: %v", tt.user, err)
		}
		if !approx(got, tt.want) {
			t.Errorf("Claim(%s): expected %.2f, got %.2f", tt.user, tt.want, got)
		}
	}

	if bal, _ := s.Balance(ctx, "a"); !approx(bal, 10) {
		t.Errorf("Expected a to hold 10, got %.2f", bal)
	}
	pool, _ := s.CommunalPool(ctx, testServer)
	if !approx(pool, 30-10-6.67-4.44) {
		t.Errorf("Expected pool to shrink by every claim, got %.2f", pool)
	}

	round, claimed, _, _ = s.DistributionStatus(ctx, testServer)
	if round != 3 || claimed != 0 {
		t.Errorf("Expected round to advance once everyone claimed, got round %d with %d claims", round, claimed)
	}
	if ok, _ := s.HasClaimed(ctx, "a", testServer); ok {
		t.Error("Expected a fresh round to have no claims")
	}
}

func TestClaimEmptyPool(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a")

	got, err := s.Claim(ctx, "a", testServer)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("Expected nothing to claim, got %.2f", got)
	}
	if ok, _ := s.HasClaimed(ctx, "a", testServer); ok {
		t.Error("Expected an empty claim not to be recorded")
	}
	if _, err := s.Claim(ctx, "a", "nowhere"); !errors.Is(err, ErrUnknownServer) {
		t.Errorf("Expected ErrUnknownServer, got %v", err)
	}
}

func TestClaimRecordsRound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a", "b")
	fundPool(t, s, 8)

	if _, err := s.Claim(ctx, "a", testServer); err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if ok, _ := s.HasClaimed(ctx, "a", testServer); !ok {
		t.Error("Expected claim to be recorded")
	}
	if ok, _ := s.HasClaimed(ctx, "b", testServer); ok {
		t.Error("Expected b not to have claimed")
	}

	// a new contribution opens a new round
	fundPool(t, s, 8)
	got, err := s.Claim(ctx, "a", testServer)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if !approx(got, 6) {
		t.Errorf("Expected half of the 12 boop pool, got %.2f", got)
	}
}

func TestDistributeToAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a", "b", "c", "d")
	fundPool(t, s, 10)
	s.Claim(ctx, "a", testServer)

	users, share, err := s.DistributeToAll(ctx, testServer)
	if err != nil {
		t.Fatalf("DistributeToAll failed: %v", err)
	}
	if users != 4 || !approx(share, 1.88) {
		t.Errorf("Expected 1.88 to each of 4 users, got %.2f to %d", share, users)
	}
	if pool, _ := s.CommunalPool(ctx, testServer); pool != 0 {
		t.Errorf("Expected empty pool, got %.2f", pool)
	}
	if bal, _ := s.Balance(ctx, "a"); !approx(bal, 2.5+1.88) {
		t.Errorf("Expected a to hold claim plus share, got %.2f", bal)
	}
	round, claimed, _, _ := s.DistributionStatus(ctx, testServer)
	if round != 3 || claimed != 0 {
		t.Errorf("Expected round 3 with no claims, got round %d with %d claims", round, claimed)
	}

	users, share, err = s.DistributeToAll(ctx, testServer)
	if err != nil || users != 0 || share != 0 {
		t.Errorf("Expected nothing to distribute from an empty pool, got %d users, %.2f, %v", users, share, err)
	}
}

func TestStartNewRound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a")

	round, err := s.StartNewRound(ctx, testServer)
	if err != nil {
		t.Fatalf("StartNewRound failed: %v", err)
	}
	if round != 2 {
		t.Errorf("Expected round 2, got %d", round)
	}
	if _, err := s.StartNewRound(ctx, "nowhere"); !errors.Is(err, ErrUnknownServer) {
		t.Errorf("Expected ErrUnknownServer, got %v", err)
	}
}
