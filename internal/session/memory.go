package session

import (
	"context"
	"sync"

	"github.com/spec-kit/incident-report-service/internal/domain"
)

// MemoryStore is the default in-process backend. Sessions live for the
// process lifetime; abandoned flows persist until overwritten or deleted.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Get(ctx context.Context, senderID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[senderID]
	if !ok {
		return nil, nil
	}
	copied := sess
	return &copied, nil
}

func (s *MemoryStore) Set(ctx context.Context, senderID string, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[senderID] = *sess
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, senderID)
	return nil
}
