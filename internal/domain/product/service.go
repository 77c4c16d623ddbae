package product

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/domain/validation"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/google/uuid"
)

const resource = "product"

// Service is the product half of the catalog store.
type Service struct {
	store store.DocumentStore
	now   func() time.Time
}

func NewService(ds store.DocumentStore) *Service {
	return &Service{store: ds, now: time.Now}
}

func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Image = strings.TrimSpace(in.Image)
	if in.Image == "" {
		in.Image = DefaultImage
	}
	return in
}

// Create validates the input, assigns an id and createdAt, and inserts the product.
func (s *Service) Create(ctx context.Context, in Input) (*Product, error) {
	in = normalize(in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p := &Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		Stock:       in.Stock,
		Image:       in.Image,
		CreatedAt:   s.now().UTC(),
	}

	if _, err := s.store.Insert(ctx, store.CollectionProducts, toDocument(p)); err != nil {
		return nil, apperr.Persistence("insert product", err)
	}

	log.Printf("[Catalog] Product created: %s (%s)", p.ID, p.Name)
	return p, nil
}

// Update replaces the mutable fields of an existing product.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in = normalize(in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	next := *existing
	next.Name = in.Name
	next.Price = in.Price
	next.Description = in.Description
	next.Category = in.Category
	next.Stock = in.Stock
	next.Image = in.Image

	doc, err := s.store.UpdateOne(ctx, store.CollectionProducts, id, mutableFields(&next))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(resource, id)
	}
	if err != nil {
		return nil, apperr.Persistence("update product", err)
	}

	updated := fromDocument(doc)
	log.Printf("[Catalog] Product updated: %s", id)
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.store.DeleteOne(ctx, store.CollectionProducts, id)
	if err != nil {
		return apperr.Persistence("delete product", err)
	}
	if !removed {
		return apperr.NotFound(resource, id)
	}

	log.Printf("[Catalog] Product deleted: %s", id)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, apperr.NotFound(resource, id)
	}
	docs, err := s.store.Find(ctx, store.CollectionProducts, store.Filter{"id": id})
	if err != nil {
		return nil, apperr.Persistence("find product", err)
	}
	if len(docs) == 0 {
		return nil, apperr.NotFound(resource, id)
	}
	p := fromDocument(docs[0])
	return &p, nil
}

// List returns products in store order. A non-empty category is matched by the store.
func (s *Service) List(ctx context.Context, category string) ([]Product, error) {
	var filter store.Filter
	if category != "" {
		filter = store.Filter{"category": category}
	}

	docs, err := s.store.Find(ctx, store.CollectionProducts, filter)
	if err != nil {
		return nil, apperr.Persistence("list products", err)
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, fromDocument(doc))
	}
	return products, nil
}
