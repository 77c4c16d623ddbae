package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront/internal/infrastructure/store"
)

// MockDocumentStore is an in-memory DocumentStore that records every call and
// can be told to fail, for exercising persistence error paths.
type MockDocumentStore struct {
	mu      sync.Mutex
	backing *store.MemoryStore

	FindCalls   []FindCall
	InsertCalls []InsertCall
	UpdateCalls []UpdateCall
	DeleteCalls []DeleteCall

	// Errors to return instead of touching the backing store
	FindErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error
}

// FindCall records parameters passed to Find
type FindCall struct {
	Collection string
	Filter     store.Filter
}

// InsertCall records parameters passed to Insert
type InsertCall struct {
	Collection string
	Doc        store.Document
}

// UpdateCall records parameters passed to UpdateOne
type UpdateCall struct {
	Collection string
	ID         string
	Patch      store.Document
}

// DeleteCall records parameters passed to DeleteOne
type DeleteCall struct {
	Collection string
	ID         string
}

func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{backing: store.NewMemoryStore()}
}

// Seed inserts documents directly, bypassing call recording.
func (m *MockDocumentStore) Seed(collection string, docs ...store.Document) {
	for _, doc := range docs {
		_, _ = m.backing.Insert(context.Background(), collection, doc)
	}
}

func (m *MockDocumentStore) Find(ctx context.Context, collection string, filter store.Filter) ([]store.Document, error) {
	m.mu.Lock()
	m.FindCalls = append(m.FindCalls, FindCall{Collection: collection, Filter: filter})
	err := m.FindErr
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return m.backing.Find(ctx, collection, filter)
}

func (m *MockDocumentStore) Insert(ctx context.Context, collection string, doc store.Document) (store.Document, error) {
	m.mu.Lock()
	m.InsertCalls = append(m.InsertCalls, InsertCall{Collection: collection, Doc: doc.Clone()})
	err := m.InsertErr
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return m.backing.Insert(ctx, collection, doc)
}

func (m *MockDocumentStore) UpdateOne(ctx context.Context, collection, id string, patch store.Document) (store.Document, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{Collection: collection, ID: id, Patch: patch.Clone()})
	err := m.UpdateErr
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return m.backing.UpdateOne(ctx, collection, id, patch)
}

func (m *MockDocumentStore) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{Collection: collection, ID: id})
	err := m.DeleteErr
	m.mu.Unlock()

	if err != nil {
		return false, err
	}
	return m.backing.DeleteOne(ctx, collection, id)
}

// Count returns the number of documents currently stored in a collection.
func (m *MockDocumentStore) Count(collection string) int {
	docs, _ := m.backing.Find(context.Background(), collection, nil)
	return len(docs)
}

// Reset clears recorded calls and injected errors, keeping stored data.
func (m *MockDocumentStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindCalls = nil
	m.InsertCalls = nil
	m.UpdateCalls = nil
	m.DeleteCalls = nil
	m.FindErr = nil
	m.InsertErr = nil
	m.UpdateErr = nil
	m.DeleteErr = nil
}
