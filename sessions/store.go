package sessions

import (
	"context"
	"encoding/json"
	"sync"
)

// Store persists sessions by id. Get returns (nil, nil) for an unknown id;
// callers start a fresh session in that case. Writes are last-write-wins,
// there is no cross-request coordination.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, session *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-memory Store for tests and single-node runs.
// Sessions are kept serialized so it behaves like the redis-backed store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[id] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
