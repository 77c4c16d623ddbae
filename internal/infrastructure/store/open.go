package store

import (
	"context"
	"fmt"
	"log"

	appconfig "github.com/example/storefront/internal/config"
)

// Open connects the document store selected by cfg.StoreDriver. The returned
// close function releases the underlying connection.
func Open(ctx context.Context, cfg *appconfig.Config) (DocumentStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case appconfig.DriverMemory:
		log.Println("[Store] Using in-memory document store")
		return NewMemoryStore(), noop, nil

	case appconfig.DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		log.Printf("[Store] Connected to MongoDB (database %s)", cfg.MongoDatabase)
		closeFn := func() error { return client.Disconnect(context.Background()) }
		return NewMongoStore(client.Database(cfg.MongoDatabase)), closeFn, nil

	case appconfig.DriverPostgres:
		db, err := ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		s := NewPostgresStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Println("[Store] Connected to PostgreSQL")
		return s, db.Close, nil

	case appconfig.DriverDynamo:
		client, err := NewDynamoClient(ctx, cfg.DynamoEndpoint)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[Store] Using DynamoDB table %s", cfg.DynamoTable)
		return NewDynamoStore(client, cfg.DynamoTable), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
