package discord

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSessionStore(ttl time.Duration) (*SessionStore[*GameSession], *fakeClock, *[]string) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	var expired []string
	store := NewSessionStore(ttl, func(gs *GameSession) {
		expired = append(expired, gs.ID)
	})
	store.now = clock.now
	return store, clock, &expired
}

func TestSessionStoreGet(t *testing.T) {
	store, clock, expired := newTestSessionStore(time.Minute)
	gs := newPvPSession()
	store.Put(gs)

	got, ok := store.Get(gs.ID)
	if !ok || got != gs {
		t.Fatal("Expected to find the stored session")
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("Expected missing session to be absent")
	}

	clock.advance(time.Minute + time.Second)
	if _, ok := store.Get(gs.ID); ok {
		t.Error("Expected session to have expired")
	}
	if len(*expired) != 1 || (*expired)[0] != gs.ID {
		t.Errorf("Expected one expiry callback for %s, got %v", gs.ID, *expired)
	}

	// a second lookup must not fire the callback again
	store.Get(gs.ID)
	if len(*expired) != 1 {
		t.Errorf("Expected callback to fire once, got %d", len(*expired))
	}
}

func TestSessionStoreTouch(t *testing.T) {
	store, clock, expired := newTestSessionStore(time.Minute)
	gs := newPvPSession()
	store.Put(gs)

	clock.advance(45 * time.Second)
	if !store.Touch(gs.ID) {
		t.Fatal("Expected touch to succeed on a live session")
	}
	clock.advance(45 * time.Second)
	if _, ok := store.Get(gs.ID); !ok {
		t.Error("Expected touched session to still be live")
	}

	clock.advance(2 * time.Minute)
	if store.Touch(gs.ID) {
		t.Error("Expected touch to fail on an expired session")
	}
	if len(*expired) != 0 {
		t.Errorf("Expected touch not to fire callbacks, got %v", *expired)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	store, clock, expired := newTestSessionStore(time.Minute)
	gs := newPvPSession()
	store.Put(gs)
	store.Delete(gs.ID)

	clock.advance(time.Hour)
	store.PurgeExpired()
	if len(*expired) != 0 {
		t.Errorf("Expected deleted session not to expire, got %v", *expired)
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d", store.Len())
	}
}

func TestSessionStorePurgeExpired(t *testing.T) {
	store, clock, expired := newTestSessionStore(time.Minute)
	old, fresh := newPvPSession(), newPvPSession()
	store.Put(old)
	clock.advance(50 * time.Second)
	store.Put(fresh)
	clock.advance(20 * time.Second)

	if n := store.Len(); n != 1 {
		t.Errorf("Expected 1 live session, got %d", n)
	}
	if len(*expired) != 1 || (*expired)[0] != old.ID {
		t.Errorf("Expected only the old session to expire, got %v", *expired)
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("Expected fresh session to be live")
	}
}

func TestSessionStoreDefaults(t *testing.T) {
	store := NewSessionStore[*GameSession](0, nil)
	if store.ttl != 5*time.Minute {
		t.Errorf("Expected default ttl of 5m, got %v", store.ttl)
	}

	stop := store.StartJanitor(time.Millisecond)
	store.Put(newPvPSession())
	stop()
	stop()

	var nilStore *SessionStore[*GameSession]
	if _, ok := nilStore.Get("x"); ok {
		t.Error("Expected nil store to find nothing")
	}
	if nilStore.Len() != 0 {
		t.Error("Expected nil store to be empty")
	}
}
