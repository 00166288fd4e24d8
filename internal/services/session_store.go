package services

import (
	"sync"
	"time"

	"github.com/BradenHooton/folio/internal/models"
	pkgauth "github.com/BradenHooton/folio/pkg/auth"
)

// sessionStore maps opaque admin tokens to sessions
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	ttl      time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]models.Session),
		ttl:      ttl,
	}
}

func (s *sessionStore) issue(now time.Time) string {
	token := pkgauth.NewSessionToken()

	s.mu.Lock()
	s.sessions[token] = models.Session{Authenticated: true, IssuedAt: now}
	s.mu.Unlock()

	return token
}

// valid deletes the session if it has expired; the check and the delete
// happen under one lock.
func (s *sessionStore) valid(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok || !session.Authenticated {
		return false
	}
	if now.Sub(session.IssuedAt) > s.ttl {
		delete(s.sessions, token)
		return false
	}
	return true
}

func (s *sessionStore) invalidate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[token]
	delete(s.sessions, token)
	return ok
}

func (s *sessionStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.Sub(session.IssuedAt) > s.ttl {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
