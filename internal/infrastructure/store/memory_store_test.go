package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// MemoryStore Tests
// ============================================

func TestMemoryStore_InsertAndFind_KeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		_, err := s.Insert(ctx, CollectionProducts, Document{"id": id, "category": "shirts"})
		require.NoError(t, err)
	}

	docs, err := s.Find(ctx, CollectionProducts, nil)

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "c", docs[0].ID())
	assert.Equal(t, "a", docs[1].ID())
	assert.Equal(t, "b", docs[2].ID())
}

func TestMemoryStore_Find_EqualityFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, _ = s.Insert(ctx, CollectionProducts, Document{"id": "1", "category": "shirts"})
	_, _ = s.Insert(ctx, CollectionProducts, Document{"id": "2", "category": "hats"})

	docs, err := s.Find(ctx, CollectionProducts, Filter{"category": "hats"})

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "2", docs[0].ID())
}

func TestMemoryStore_Find_UnknownCollectionIsEmpty(t *testing.T) {
	s := NewMemoryStore()

	docs, err := s.Find(context.Background(), "nothing", nil)

	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestMemoryStore_Insert_Duplicate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, err := s.Insert(ctx, CollectionCategories, Document{"id": "shirts"})
	require.NoError(t, err)

	_, err = s.Insert(ctx, CollectionCategories, Document{"id": "shirts"})

	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestMemoryStore_Insert_MissingID(t *testing.T) {
	_, err := NewMemoryStore().Insert(context.Background(), CollectionProducts, Document{"name": "x"})

	assert.ErrorIs(t, err, ErrMissingID)
}

func TestMemoryStore_UpdateOne_MergesAndKeepsID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, _ = s.Insert(ctx, CollectionProducts, Document{"id": "1", "name": "Old", "stock": 3})

	updated, err := s.UpdateOne(ctx, CollectionProducts, "1", Document{"id": "hijack", "name": "New"})

	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID())
	assert.Equal(t, "New", updated.String("name"))
	assert.Equal(t, 3, updated.Int("stock"))
}

func TestMemoryStore_UpdateOne_NotFound(t *testing.T) {
	_, err := NewMemoryStore().UpdateOne(context.Background(), CollectionProducts, "missing", Document{"name": "x"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteOne(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, _ = s.Insert(ctx, CollectionProducts, Document{"id": "1"})
	_, _ = s.Insert(ctx, CollectionProducts, Document{"id": "2"})

	removed, err := s.DeleteOne(ctx, CollectionProducts, "1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteOne(ctx, CollectionProducts, "1")
	require.NoError(t, err)
	assert.False(t, removed)

	docs, _ := s.Find(ctx, CollectionProducts, nil)
	require.Len(t, docs, 1)
	assert.Equal(t, "2", docs[0].ID())
}

func TestMemoryStore_ReturnedDocumentsAreCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, _ = s.Insert(ctx, CollectionCarts, Document{
		"id":    "tok",
		"lines": []any{map[string]any{"productId": "p1", "quantity": 1}},
	})

	docs, _ := s.Find(ctx, CollectionCarts, nil)
	docs[0]["lines"].([]any)[0].(map[string]any)["quantity"] = 99

	again, _ := s.Find(ctx, CollectionCarts, nil)
	assert.Equal(t, 1, again[0]["lines"].([]any)[0].(map[string]any)["quantity"])
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Find(ctx, CollectionProducts, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

// ============================================
// Document Accessor Tests
// ============================================

func TestDocument_NumericAccessors(t *testing.T) {
	doc := Document{"f64": 19.99, "i64": int64(7), "i32": int32(4), "str": "2.5", "int": 3}

	assert.Equal(t, 19.99, doc.Float("f64"))
	assert.Equal(t, 7, doc.Int("i64"))
	assert.Equal(t, 4, doc.Int("i32"))
	assert.Equal(t, 2.5, doc.Float("str"))
	assert.Equal(t, 3, doc.Int("int"))
	assert.Equal(t, 0, doc.Int("missing"))
}

func TestDocument_Time(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{"t": now, "s": now.Format(time.RFC3339Nano), "bad": "yesterday"}

	assert.True(t, now.Equal(doc.Time("t")))
	assert.True(t, now.Equal(doc.Time("s")))
	assert.True(t, doc.Time("bad").IsZero())
}

func TestDocument_Matches(t *testing.T) {
	doc := Document{"id": "1", "category": "shirts"}

	assert.True(t, doc.Matches(nil))
	assert.True(t, doc.Matches(Filter{"category": "shirts"}))
	assert.False(t, doc.Matches(Filter{"category": "hats"}))
	assert.False(t, doc.Matches(Filter{"color": "red"}))
}
