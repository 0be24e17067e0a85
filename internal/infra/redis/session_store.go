package redis

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// SessionStore is a Redis-backed implementation of app.SessionRepository.
// Live sessions stay in a local map for lock-free transitions; every Save
// writes a JSON snapshot to Redis with a TTL, so another instance (or a
// restarted one) can rehydrate a session it has never seen. The TTL bounds
// session lifetime, which is the only persistence this service keeps.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Create(mode domain.SessionMode) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := app.NewSession(app.NewSessionID(), mode)
	s.sessions[session.ID()] = session
	s.persist(session)
	return session
}

func (s *SessionStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return session, true
	}

	// Local miss: try to rehydrate from a snapshot written by Save.
	raw, err := s.client.Get(context.Background(), s.key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var state domain.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("discarding unreadable session snapshot %s: %v", id, err)
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing, true
	}
	session = app.RestoreSession(state)
	s.sessions[id] = session
	return session, true
}

func (s *SessionStore) Save(session *app.Session) {
	s.persist(session)
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

// persist is best-effort; the local session stays authoritative if Redis is
// briefly unavailable.
func (s *SessionStore) persist(session *app.Session) {
	raw, err := json.Marshal(session.Snapshot())
	if err != nil {
		log.Printf("failed to marshal session %s: %v", session.ID(), err)
		return
	}
	if err := s.client.Set(context.Background(), s.key(session.ID()), raw, s.ttl).Err(); err != nil {
		log.Printf("failed to persist session %s: %v", session.ID(), err)
	}
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
