package store

import (
	"context"
	"sync"
)

type memoryCollection struct {
	order []string
	docs  map[string]Document
}

// MemoryStore is an in-memory DocumentStore that keeps insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memoryCollection),
	}
}

func (s *MemoryStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]Document)}
		s.collections[name] = c
	}
	return c
}

// Find returns copies of the matching documents.
func (s *MemoryStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return []Document{}, nil
	}

	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		doc := c.docs[id]
		if doc.Matches(filter) {
			out = append(out, doc.Clone())
		}
	}
	return out, nil
}

// Insert stores a copy of doc under doc["id"].
func (s *MemoryStore) Insert(ctx context.Context, collection string, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := doc.ID()
	if id == "" {
		return nil, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	if _, exists := c.docs[id]; exists {
		return nil, ErrDuplicateID
	}
	c.docs[id] = doc.Clone()
	c.order = append(c.order, id)
	return doc.Clone(), nil
}

// UpdateOne merges patch into the stored document. The id field is never overwritten.
func (s *MemoryStore) UpdateOne(ctx context.Context, collection, id string, patch Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	current, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := current.Clone()
	for k, v := range patch {
		if k == "id" {
			continue
		}
		updated[k] = cloneValue(v)
	}
	c.docs[id] = updated
	return updated.Clone(), nil
}

func (s *MemoryStore) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return false, nil
	}
	if _, exists := c.docs[id]; !exists {
		return false, nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true, nil
}
