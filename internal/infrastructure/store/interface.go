package store

import (
	"context"
	"errors"
)

// Collection names used by the storefront.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionCarts      = "carts"
	CollectionUsers      = "users"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrDuplicateID = errors.New("document id already exists")
	ErrMissingID   = errors.New("document id is required")
)

// Filter selects documents whose fields equal the given values.
// An empty filter matches every document in the collection.
type Filter map[string]any

// DocumentStore is the persistence collaborator behind the catalog and carts.
// Every call is a single-document operation; Find returns documents in insertion order.
type DocumentStore interface {
	Find(ctx context.Context, collection string, filter Filter) ([]Document, error)
	Insert(ctx context.Context, collection string, doc Document) (Document, error)
	// UpdateOne merges patch into the stored document and returns the result.
	// It returns ErrNotFound when no document has the id.
	UpdateOne(ctx context.Context, collection, id string, patch Document) (Document, error)
	// DeleteOne reports whether a document was removed.
	DeleteOne(ctx context.Context, collection, id string) (bool, error)
}
