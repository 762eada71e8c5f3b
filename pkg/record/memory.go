package record

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store. Exchanges live only as long as the
// process; it is the default when no database path is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*Exchange
	order []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*Exchange),
	}
}

func (s *MemoryStore) Append(_ context.Context, e *Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[e.ID]; exists {
		return nil
	}

	s.byID[e.ID] = e
	s.order = append(s.order, e.ID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound{ID: id}
	}
	return e, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Exchange, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
