package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds the two parsed tables for one user between upload,
// compare, and report download. The tables are read-only after
// creation; only lastAccess changes, under the store's lock.
type Session struct {
	ID        string
	CreatedAt time.Time
	Vauto     *InventoryTable
	Reynolds  *InventoryTable

	lastAccess time.Time
}

// SessionStore is an in-memory, TTL-evicted session registry. Nothing
// is ever persisted: losing the process loses the sessions, and the
// user re-uploads.
type SessionStore struct {
	ttl time.Duration
	max int

	mu       sync.RWMutex
	sessions map[string]*Session

	stop chan struct{}
	once sync.Once
}

// NewSessionStore creates a store that evicts sessions idle longer
// than ttl, sweeping every cleanupInterval. Call Close to stop the
// sweeper goroutine.
func NewSessionStore(ttl time.Duration, max int, cleanupInterval time.Duration) *SessionStore {
	s := &SessionStore{
		ttl:      ttl,
		max:      max,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go s.sweep(cleanupInterval)
	return s
}

// Put stores the two tables under a fresh session ID.
func (s *SessionStore) Put(vauto, reynolds *InventoryTable) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.max {
		// One in-place eviction attempt before giving up
		s.evictExpiredLocked(time.Now())
		if len(s.sessions) >= s.max {
			return nil, ErrTooManySessions
		}
	}

	now := time.Now()
	session := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		Vauto:      vauto,
		Reynolds:   reynolds,
		lastAccess: now,
	}
	s.sessions[session.ID] = session

	return session, nil
}

// Get returns a live session and refreshes its idle timer.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Since(session.lastAccess) > s.ttl {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}

	session.lastAccess = time.Now()
	return session, nil
}

// Delete drops a session. Deleting an unknown ID is not an error.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background sweeper.
func (s *SessionStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// ExpiresAt reports when the session will be evicted if left idle.
func (s *SessionStore) ExpiresAt(session *Session) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return session.lastAccess.Add(s.ttl)
}

func (s *SessionStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.mu.Lock()
			s.evictExpiredLocked(now)
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}

func (s *SessionStore) evictExpiredLocked(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.lastAccess) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
