package cartstore

import (
	"context"
	"fmt"
	"log"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/infrastructure/store"
)

// Open builds the cart store selected by cfg.CartStore. The document variant
// shares docs with the catalog.
func Open(ctx context.Context, cfg *config.Config, docs store.DocumentStore) (cart.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CartStore {
	case config.CartStoreMemory:
		log.Println("[Cart] Using in-memory cart store")
		return cart.NewMemoryStore(), noop, nil
	case config.CartStoreRedis:
		rdb, err := NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[Cart] Using Redis at %s (ttl %s)", cfg.RedisAddr, cfg.CartTTL)
		return NewRedisStore(rdb, cfg.CartTTL), rdb.Close, nil
	case config.CartStoreDocument:
		log.Println("[Cart] Using document store for carts")
		return NewDocumentStore(docs), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown cart store %q", cfg.CartStore)
}
