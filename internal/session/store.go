package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"gemstore/internal/models"
)

// Session pairs a gateway session ID with the user snapshot and the
// backend cookies that authenticate it upstream. The store is the only
// state the gateway holds; everything authoritative lives in the backend.
type Session struct {
	ID        string
	User      models.User
	Cookies   []*http.Cookie
	ExpiresAt time.Time
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
}

// NewStore creates an in-memory session store and starts a sweeper that
// evicts expired sessions every sweep interval.
func NewStore(ttl, sweep time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.sweeper(sweep)
	return s
}

// Close stops the sweeper.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) sweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Create registers a new session for a user with its backend cookies.
func (s *Store) Create(user models.User, cookies []*http.Cookie) Session {
	sess := &Session{
		ID:        uuid.NewString(),
		User:      user,
		Cookies:   cookies,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return *sess
}

// Get returns a snapshot of the session, treating expired ones as gone.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return Session{}, false
	}
	return *sess, true
}

// SetUser replaces the cached user snapshot after a profile refetch or
// a login that already returned the user.
func (s *Store) SetUser(id string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.User = user
	}
}

// Delete removes a session unconditionally.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
