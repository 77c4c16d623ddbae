package command

import (
	"context"
	"log"
	"time"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/category"
	"github.com/example/storefront/internal/domain/product"
)

type ProductWriter interface {
	Create(ctx context.Context, in product.Input) (*product.Product, error)
	Update(ctx context.Context, id string, in product.Input) (*product.Product, error)
	Delete(ctx context.Context, id string) error
}

type CategoryWriter interface {
	Create(ctx context.Context, in category.Input) (*category.Category, error)
	Update(ctx context.Context, id string, in category.Input) (*category.Category, error)
	Delete(ctx context.Context, id string) error
}

// Handler runs the admin console's catalog mutations. Every operation takes
// the caller's role explicitly and refuses anyone but an admin.
type Handler struct {
	products   ProductWriter
	categories CategoryWriter
	publisher  EventPublisher
	now        func() time.Time
}

// NewHandler wires the handler. publisher may be nil, in which case no events are sent.
func NewHandler(products ProductWriter, categories CategoryWriter, publisher EventPublisher) *Handler {
	return &Handler{
		products:   products,
		categories: categories,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Authorize fails with UnauthenticatedError when there is no session and
// PermissionError when the session is not an admin.
func Authorize(role auth.Role) error {
	if !role.Authenticated() {
		return &apperr.UnauthenticatedError{}
	}
	if !role.IsAdmin() {
		return &apperr.PermissionError{Role: string(role)}
	}
	return nil
}

func (h *Handler) CreateProduct(ctx context.Context, role auth.Role, cmd CreateProduct) (*product.Product, error) {
	if err := Authorize(role); err != nil {
		return nil, err
	}
	p, err := h.products.Create(ctx, cmd.Input)
	if err != nil {
		return nil, err
	}
	h.publish(ctx, product.EventProductCreated, p.ID, product.CreatedEvent(p))
	return p, nil
}

func (h *Handler) UpdateProduct(ctx context.Context, role auth.Role, cmd UpdateProduct) (*product.Product, error) {
	if err := Authorize(role); err != nil {
		return nil, err
	}
	p, err := h.products.Update(ctx, cmd.ProductID, cmd.Input)
	if err != nil {
		return nil, err
	}
	h.publish(ctx, product.EventProductUpdated, p.ID, product.UpdatedEvent(p, h.now().UTC()))
	return p, nil
}

// DeleteProduct removes the product. Cart lines pointing at it are left to
// be skipped when carts are read.
func (h *Handler) DeleteProduct(ctx context.Context, role auth.Role, cmd DeleteProduct) error {
	if err := Authorize(role); err != nil {
		return err
	}
	if err := h.products.Delete(ctx, cmd.ProductID); err != nil {
		return err
	}
	h.publish(ctx, product.EventProductDeleted, cmd.ProductID, product.ProductDeleted{
		ProductID: cmd.ProductID,
		DeletedAt: h.now().UTC(),
	})
	return nil
}

func (h *Handler) CreateCategory(ctx context.Context, role auth.Role, cmd CreateCategory) (*category.Category, error) {
	if err := Authorize(role); err != nil {
		return nil, err
	}
	c, err := h.categories.Create(ctx, cmd.Input)
	if err != nil {
		return nil, err
	}
	h.publish(ctx, category.EventCategoryCreated, c.ID, category.CategoryChanged{
		CategoryID: c.ID,
		Name:       c.Name,
		Image:      c.Image,
		ChangedAt:  h.now().UTC(),
	})
	return c, nil
}

func (h *Handler) UpdateCategory(ctx context.Context, role auth.Role, cmd UpdateCategory) (*category.Category, error) {
	if err := Authorize(role); err != nil {
		return nil, err
	}
	c, err := h.categories.Update(ctx, cmd.CategoryID, cmd.Input)
	if err != nil {
		return nil, err
	}
	h.publish(ctx, category.EventCategoryUpdated, c.ID, category.CategoryChanged{
		CategoryID: c.ID,
		Name:       c.Name,
		Image:      c.Image,
		ChangedAt:  h.now().UTC(),
	})
	return c, nil
}

func (h *Handler) DeleteCategory(ctx context.Context, role auth.Role, cmd DeleteCategory) error {
	if err := Authorize(role); err != nil {
		return err
	}
	if err := h.categories.Delete(ctx, cmd.CategoryID); err != nil {
		return err
	}
	h.publish(ctx, category.EventCategoryDeleted, cmd.CategoryID, category.CategoryDeleted{
		CategoryID: cmd.CategoryID,
		DeletedAt:  h.now().UTC(),
	})
	return nil
}

// publish sends the event after the write has committed. A failure is logged
// and does not undo or fail the mutation.
func (h *Handler) publish(ctx context.Context, eventType, entityID string, data any) {
	if h.publisher == nil {
		return
	}
	event := newEvent(eventType, entityID, data, h.now().UTC())
	if err := h.publisher.Publish(ctx, entityID, event); err != nil {
		log.Printf("[Admin] Failed to publish %s for %s: %v", eventType, entityID, err)
	}
}
