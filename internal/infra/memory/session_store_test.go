package memory

import (
	"testing"

	"trivia-quiz-service/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := store.Create(domain.ModeGenerated)
	if session.ID() == "" {
		t.Fatalf("expected generated session id")
	}
	if session.Snapshot().Phase != domain.PhaseSetup {
		t.Fatalf("expected setup phase, got %s", session.Snapshot().Phase)
	}

	got, ok := store.Get(session.ID())
	if !ok || got != session {
		t.Fatalf("expected to retrieve the same session")
	}

	if _, ok := store.Get("missing"); ok {
		t.Fatalf("unknown id must not resolve")
	}

	store.Delete(session.ID())
	if _, ok := store.Get(session.ID()); ok {
		t.Fatalf("deleted session must not resolve")
	}
}

func TestSessionStoreDistinctIDs(t *testing.T) {
	store := NewSessionStore()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session := store.Create(domain.ModeAuthored)
		if seen[session.ID()] {
			t.Fatalf("duplicate session id %s", session.ID())
		}
		seen[session.ID()] = true
	}
}
