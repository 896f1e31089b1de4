package memory

import (
	"sync"
	"time"

	"proofgate/internal/domain"
)

// SessionTracker is an in-memory implementation of domain.SessionTracker.
// One mutex guards the whole tracker; contention is low and sections are
// short, so per-key locking is not worth it.
type SessionTracker struct {
	mu       sync.Mutex
	sessions map[domain.UserID]*domain.Session
}

func NewSessionTracker() *SessionTracker {
	return &SessionTracker{
		sessions: make(map[domain.UserID]*domain.Session),
	}
}

// Touch creates or overwrites the session for user.
func (t *SessionTracker) Touch(user domain.UserID, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessions[user] = &domain.Session{
		UserID:    user,
		StartedAt: at,
	}
}

// Expire removes the session for user if one is present. Check and delete are
// one critical section so an expiry firing cannot race a concurrent Touch
// into removing a session it never observed.
func (t *SessionTracker) Expire(user domain.UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[user]; !ok {
		return false
	}
	delete(t.sessions, user)
	return true
}

func (t *SessionTracker) StartedAt(user domain.UserID) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.sessions[user]
	if !ok {
		return time.Time{}, false
	}
	return sess.StartedAt, true
}
