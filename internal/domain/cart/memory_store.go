package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps carts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]Cart)}
}

func (s *MemoryStore) Load(ctx context.Context, token string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[token]
	if !ok {
		return &Cart{Token: token, Lines: []Line{}}, nil
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	c.Lines = lines
	return &c, nil
}

func (s *MemoryStore) Save(ctx context.Context, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	stored.Lines = make([]Line, len(c.Lines))
	copy(stored.Lines, c.Lines)
	s.carts[c.Token] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, token)
	return nil
}
