package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/session"
)

// SessionRepository holds sessions in process. Entries idle longer than ttl
// are dropped lazily; ttl <= 0 keeps them forever.
type SessionRepository struct {
	mu    sync.Mutex
	items map[string]session.Session
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		items: make(map[string]session.Session),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *SessionRepository) Create(_ context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpiredLocked()
	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	r.items[s.ID] = s.Clone()
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.liveLocked(sessionID)
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Update holds the repository lock while fn runs, so mutations of one
// session never interleave.
func (r *SessionRepository) Update(_ context.Context, sessionID string, fn func(*session.Session) error) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.liveLocked(sessionID)
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}

	working := current.Clone()
	if err := fn(&working); err != nil {
		return session.Session{}, err
	}
	working.ID = sessionID
	r.items[sessionID] = working
	return working.Clone(), nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[sessionID]; !ok {
		return session.ErrSessionNotFound
	}
	delete(r.items, sessionID)
	return nil
}

func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpiredLocked()
	return len(r.items)
}

func (r *SessionRepository) liveLocked(sessionID string) (session.Session, bool) {
	s, ok := r.items[sessionID]
	if !ok {
		return session.Session{}, false
	}
	if r.expired(s) {
		delete(r.items, sessionID)
		return session.Session{}, false
	}
	return s, true
}

func (r *SessionRepository) evictExpiredLocked() {
	for id, s := range r.items {
		if r.expired(s) {
			delete(r.items, id)
		}
	}
}

func (r *SessionRepository) expired(s session.Session) bool {
	if r.ttl <= 0 {
		return false
	}
	last := s.UpdatedAt
	if last.IsZero() {
		last = s.CreatedAt
	}
	if last.IsZero() {
		return false
	}
	return r.now().Sub(last) > r.ttl
}
