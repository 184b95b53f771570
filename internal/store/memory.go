package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/neersanchay/internal/navigation"
)

var (
	// ErrNotFound is returned when the session holds no assessment yet.
	ErrNotFound = errors.New("no assessment in session")
)

// SweepResult reports what a sweep changed.
type SweepResult struct {
	StatusExpired bool
	SessionReset  bool
}

// SessionStore is the concurrency-safe owner of the single in-memory
// session. Every access to the controller goes through it.
type SessionStore struct {
	mu sync.RWMutex

	ctrl       *navigation.Controller
	lastActive time.Time

	// idleTimeout resets an untouched session; 0 disables it.
	idleTimeout time.Duration
	now         func() time.Time
}

// NewSessionStore wraps ctrl. If now is nil, time.Now is used.
func NewSessionStore(ctrl *navigation.Controller, idleTimeout time.Duration, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		ctrl:        ctrl,
		lastActive:  now(),
		idleTimeout: idleTimeout,
		now:         now,
	}
}

// Update runs fn with exclusive access and counts as user activity.
func (s *SessionStore) Update(fn func(c *navigation.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.now()
	return fn(s.ctrl)
}

// View returns a render snapshot. Reading does not count as activity.
func (s *SessionStore) View() navigation.View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ctrl.View(s.now())
}

// Current returns the latest assessment.
func (s *SessionStore) Current() (navigation.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.ctrl.Session().Assessment
	if a == nil {
		return navigation.Assessment{}, ErrNotFound
	}
	return *a, nil
}

// LastActive returns the time of the last update.
func (s *SessionStore) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastActive
}

// Sweep drops an expired status message and resets a session that has been
// idle for longer than the idle timeout. A session with an operation in
// flight is never reset.
func (s *SessionStore) Sweep() SweepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var res SweepResult
	res.StatusExpired = s.ctrl.ExpireStatus(now)

	if s.idleTimeout <= 0 || s.ctrl.Busy() {
		return res
	}
	if now.Sub(s.lastActive) < s.idleTimeout {
		return res
	}
	if s.ctrl.Screen() == navigation.ScreenLanding && s.ctrl.Session() == (navigation.Session{}) {
		return res
	}

	s.ctrl.Reset()
	s.lastActive = now
	res.SessionReset = true
	return res
}
