package cartstore

import (
	"context"
	"errors"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/infrastructure/store"
)

// DocumentStore keeps carts in the carts collection of the catalog's document
// store, one document per token.
type DocumentStore struct {
	docs store.DocumentStore
}

func NewDocumentStore(docs store.DocumentStore) *DocumentStore {
	return &DocumentStore{docs: docs}
}

func (s *DocumentStore) Load(ctx context.Context, token string) (*cart.Cart, error) {
	found, err := s.docs.Find(ctx, store.CollectionCarts, store.Filter{"id": token})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return &cart.Cart{Token: token, Lines: []cart.Line{}}, nil
	}
	return fromDocument(token, found[0]), nil
}

// Save updates the cart document, inserting it on first use.
func (s *DocumentStore) Save(ctx context.Context, c *cart.Cart) error {
	doc := toDocument(c)
	_, err := s.docs.UpdateOne(ctx, store.CollectionCarts, c.Token, doc)
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	_, err = s.docs.Insert(ctx, store.CollectionCarts, doc)
	if errors.Is(err, store.ErrDuplicateID) {
		// Another request created the cart first; last write wins.
		_, err = s.docs.UpdateOne(ctx, store.CollectionCarts, c.Token, doc)
	}
	return err
}

func (s *DocumentStore) Delete(ctx context.Context, token string) error {
	_, err := s.docs.DeleteOne(ctx, store.CollectionCarts, token)
	return err
}

func toDocument(c *cart.Cart) store.Document {
	lines := make([]any, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, map[string]any{
			"productId": line.ProductID,
			"quantity":  line.Quantity,
		})
	}
	return store.Document{
		"id":        c.Token,
		"lines":     lines,
		"updatedAt": c.UpdatedAt,
	}
}

func fromDocument(token string, doc store.Document) *cart.Cart {
	c := &cart.Cart{Token: token, Lines: []cart.Line{}, UpdatedAt: doc.Time("updatedAt")}
	for _, raw := range doc.Slice("lines") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		line := store.Document(m)
		c.Lines = append(c.Lines, cart.Line{
			ProductID: line.String("productId"),
			Quantity:  line.Int("quantity"),
		})
	}
	return c
}
