package discord

import (
	"sync"
	"time"
)

// session is a live game addressed by its button custom IDs.
type session interface {
	comparable
	SessionID() string
}

// SessionStore keeps live games in memory. A session expires once it has
// gone a full idle timeout without a move; expired sessions are handed to
// the expiry callback exactly once.
type SessionStore[T session] struct {
	mu sync.RWMutex

	ttl      time.Duration
	sessions map[string]cachedItem[T]
	onExpire func(T)

	// janitor
	janitorStop chan struct{}

	// now is swapped in tests.
	now func() time.Time
}

// cachedItem wraps a cached value with an expiration time.
type cachedItem[T any] struct {
	value     T
	expiresAt time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl of
// inactivity. If ttl <= 0, five minutes is used. onExpire may be nil.
func NewSessionStore[T session](ttl time.Duration, onExpire func(T)) *SessionStore[T] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SessionStore[T]{
		ttl:      ttl,
		sessions: make(map[string]cachedItem[T]),
		onExpire: onExpire,
		now:      time.Now,
	}
}

// Put stores a session under its ID and starts its idle clock.
func (c *SessionStore[T]) Put(gs T) {
	var zero T
	if c == nil || gs == zero || gs.SessionID() == "" {
		return
	}
	c.mu.Lock()
	c.sessions[gs.SessionID()] = cachedItem[T]{value: gs, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Get returns a live session. An expired session is evicted eagerly and
// passed to the expiry callback.
func (c *SessionStore[T]) Get(id string) (T, bool) {
	var zero T
	if c == nil || id == "" {
		return zero, false
	}

	c.mu.RLock()
	item, ok := c.sessions[id]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}

	if c.now().After(item.expiresAt) {
		if c.evict(id, item.value) {
			c.expire(item.value)
		}
		return zero, false
	}
	return item.value, true
}

// Touch restarts the idle clock of a live session.
func (c *SessionStore[T]) Touch(id string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.sessions[id]
	if !ok || c.now().After(item.expiresAt) {
		return false
	}
	item.expiresAt = c.now().Add(c.ttl)
	c.sessions[id] = item
	return true
}

// Delete removes a session without firing the expiry callback.
func (c *SessionStore[T]) Delete(id string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.sessions, id)
	c.mu.Unlock()
}

// PurgeExpired removes every expired session and fires the expiry callback
// for each.
func (c *SessionStore[T]) PurgeExpired() {
	if c == nil {
		return
	}
	now := c.now()
	var expired []T

	c.mu.Lock()
	for k, v := range c.sessions {
		if now.After(v.expiresAt) {
			delete(c.sessions, k)
			expired = append(expired, v.value)
		}
	}
	c.mu.Unlock()

	for _, gs := range expired {
		c.expire(gs)
	}
}

// StartJanitor starts a background goroutine that periodically purges expired sessions.
// It returns a function that can be called to stop the janitor.
// If interval <= 0, a default of 30 seconds is used.
func (c *SessionStore[T]) StartJanitor(interval time.Duration) func() {
	if c == nil {
		return func() {}
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	c.mu.Lock()
	// If already running, stop the previous one
	if c.janitorStop != nil {
		close(c.janitorStop)
	}
	stop := make(chan struct{})
	c.janitorStop = stop
	c.mu.Unlock()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.PurgeExpired()
			case <-stop:
				return
			}
		}
	}()

	return func() {
		c.mu.Lock()
		if c.janitorStop == stop {
			close(c.janitorStop)
			c.janitorStop = nil
		}
		c.mu.Unlock()
	}
}

// Len returns the number of live sessions after purging expired ones.
func (c *SessionStore[T]) Len() int {
	if c == nil {
		return 0
	}
	c.PurgeExpired()

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// evict deletes id if it still maps to gs, reporting whether it did.
func (c *SessionStore[T]) evict(id string, gs T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.sessions[id]
	if !ok || item.value != gs {
		return false
	}
	delete(c.sessions, id)
	return true
}

func (c *SessionStore[T]) expire(gs T) {
	if c.onExpire != nil {
		c.onExpire(gs)
	}
}
