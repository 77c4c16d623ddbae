package query

import (
	"context"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/category"
	"github.com/example/storefront/internal/domain/product"
)

// DefaultRelatedLimit is how many related products a product page shows.
const DefaultRelatedLimit = 4

type ProductReader interface {
	Get(ctx context.Context, id string) (*product.Product, error)
	List(ctx context.Context, category string) ([]product.Product, error)
}

type CategoryReader interface {
	List(ctx context.Context) ([]category.Category, error)
}

type CartReader interface {
	ListItems(ctx context.Context, token string) ([]cart.Item, error)
}

// CartView is a cart with its totals, as shown on the cart page.
type CartView struct {
	Items []cart.Item `json:"items"`
	cart.Totals
}

type Handler struct {
	products   ProductReader
	categories CategoryReader
	carts      CartReader
}

func NewHandler(products ProductReader, categories CategoryReader, carts CartReader) *Handler {
	return &Handler{products: products, categories: categories, carts: carts}
}

// SearchProducts returns the products matching f in store order. No match is
// an empty slice, not an error.
func (h *Handler) SearchProducts(ctx context.Context, f ProductFilter) ([]product.Product, error) {
	categories := f.Categories()

	pushdown := ""
	if len(categories) == 1 {
		pushdown = categories[0]
	}
	candidates, err := h.products.List(ctx, pushdown)
	if err != nil {
		return nil, err
	}

	var allowed map[string]bool
	if len(categories) > 1 {
		allowed = make(map[string]bool, len(categories))
		for _, c := range categories {
			allowed[c] = true
		}
	}

	out := make([]product.Product, 0, len(candidates))
	for _, p := range candidates {
		if allowed != nil && !allowed[p.Category] {
			continue
		}
		if !f.Match(p) {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (h *Handler) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return h.products.Get(ctx, id)
}

// RelatedProducts lists other products of the same category.
func (h *Handler) RelatedProducts(ctx context.Context, id string, limit int) ([]product.Product, error) {
	p, err := h.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	sameCategory, err := h.products.List(ctx, p.Category)
	if err != nil {
		return nil, err
	}

	related := make([]product.Product, 0, limit)
	for _, candidate := range sameCategory {
		if candidate.ID == p.ID {
			continue
		}
		related = append(related, candidate)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

func (h *Handler) ListCategories(ctx context.Context) ([]category.Category, error) {
	return h.categories.List(ctx)
}

// GetCart returns the priced contents of the cart owned by token.
func (h *Handler) GetCart(ctx context.Context, token string) (*CartView, error) {
	items, err := h.carts.ListItems(ctx, token)
	if err != nil {
		return nil, err
	}
	return &CartView{Items: items, Totals: cart.ComputeTotals(items)}, nil
}
