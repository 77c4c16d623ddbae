package category

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/domain/validation"
	"github.com/example/storefront/internal/infrastructure/store"
)

const resource = "category"

// Service is the category half of the catalog store.
type Service struct {
	store store.DocumentStore
}

func NewService(ds store.DocumentStore) *Service {
	return &Service{store: ds}
}

func normalize(in Input) Input {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	if in.Image == "" {
		in.Image = DefaultImage
	}
	return in
}

// Create inserts a category. Without an explicit id the slug of the name is used.
func (s *Service) Create(ctx context.Context, in Input) (*Category, error) {
	in = normalize(in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		in.ID = Slug(in.Name)
	}
	if in.ID == "" {
		return nil, apperr.Invalid("id", "cannot be derived from name")
	}

	c := &Category{ID: in.ID, Name: in.Name, Image: in.Image}
	if _, err := s.store.Insert(ctx, store.CollectionCategories, toDocument(c)); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			return nil, apperr.Invalid("id", "already exists")
		}
		return nil, apperr.Persistence("insert category", err)
	}

	log.Printf("[Catalog] Category created: %s", c.ID)
	return c, nil
}

// Update replaces name and image. The id is immutable.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Category, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	in = normalize(in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	doc, err := s.store.UpdateOne(ctx, store.CollectionCategories, id, store.Document{
		"name":  in.Name,
		"image": in.Image,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(resource, id)
	}
	if err != nil {
		return nil, apperr.Persistence("update category", err)
	}

	updated := fromDocument(doc)
	log.Printf("[Catalog] Category updated: %s", id)
	return &updated, nil
}

// Delete removes a category. Products referencing it are left as they are.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.store.DeleteOne(ctx, store.CollectionCategories, id)
	if err != nil {
		return apperr.Persistence("delete category", err)
	}
	if !removed {
		return apperr.NotFound(resource, id)
	}

	log.Printf("[Catalog] Category deleted: %s", id)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	if id == "" {
		return nil, apperr.NotFound(resource, id)
	}
	docs, err := s.store.Find(ctx, store.CollectionCategories, store.Filter{"id": id})
	if err != nil {
		return nil, apperr.Persistence("find category", err)
	}
	if len(docs) == 0 {
		return nil, apperr.NotFound(resource, id)
	}
	c := fromDocument(docs[0])
	return &c, nil
}

// List returns every category in store order.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	docs, err := s.store.Find(ctx, store.CollectionCategories, nil)
	if err != nil {
		return nil, apperr.Persistence("list categories", err)
	}

	categories := make([]Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, fromDocument(doc))
	}
	return categories, nil
}
