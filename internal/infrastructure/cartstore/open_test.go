package cartstore

import (
	"context"
	"testing"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	docs := store.NewMemoryStore()

	mem, _, err := Open(context.Background(), &config.Config{CartStore: config.CartStoreMemory}, docs)
	require.NoError(t, err)
	assert.IsType(t, &cart.MemoryStore{}, mem)

	doc, _, err := Open(context.Background(), &config.Config{CartStore: config.CartStoreDocument}, docs)
	require.NoError(t, err)
	assert.IsType(t, &DocumentStore{}, doc)

	_, _, err = Open(context.Background(), &config.Config{CartStore: "disk"}, docs)
	assert.Error(t, err)
}
