package memory

import (
	"sync"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions live for the process lifetime; nothing is persisted.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Create(mode domain.SessionMode) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := app.NewSession(app.NewSessionID(), mode)
	s.sessions[session.ID()] = session
	return session
}

func (s *SessionStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Save is a no-op; live sessions are the source of truth in memory.
func (s *SessionStore) Save(*app.Session) {}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
