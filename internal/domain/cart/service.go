package cart

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/example/storefront/internal/apperr"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxLookups bounds the concurrent product lookups of one cart read.
const maxLookups = 8

type Service struct {
	carts    Store
	products ProductLookup
	now      func() time.Time
}

func NewService(carts Store, products ProductLookup) *Service {
	return &Service{carts: carts, products: products, now: time.Now}
}

func (s *Service) load(ctx context.Context, token string) (*Cart, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.Invalid("cartToken", "is required")
	}
	c, err := s.carts.Load(ctx, token)
	if err != nil {
		return nil, apperr.Persistence("load cart", err)
	}
	return c, nil
}

// AddItem sets the quantity of a product in the cart, creating the cart on
// first use. Quantities below 1 are clamped to 1. Adding a product that is
// already present replaces its quantity instead of adding to it.
func (s *Service) AddItem(ctx context.Context, token, productID string, quantity int) (*Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, apperr.Invalid("productId", "is required")
	}
	c, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}

	if i := c.indexOf(productID); i >= 0 {
		c.Lines[i].Quantity = quantity
	} else {
		c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: quantity})
	}
	c.Token = token
	c.UpdatedAt = s.now().UTC()

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, apperr.Persistence("save cart", err)
	}

	log.Printf("[Cart] %s: set %s x%d", shortToken(token), productID, quantity)
	return c, nil
}

// RemoveItem drops the line for productID. It fails with NotFoundError and
// leaves the cart untouched when there is no such line.
func (s *Service) RemoveItem(ctx context.Context, token, productID string) (*Cart, error) {
	c, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	i := c.indexOf(productID)
	if i < 0 {
		return nil, apperr.NotFound("cart line", productID)
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.UpdatedAt = s.now().UTC()

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, apperr.Persistence("save cart", err)
	}

	log.Printf("[Cart] %s: removed %s", shortToken(token), productID)
	return c, nil
}

// Clear removes the whole cart.
func (s *Service) Clear(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperr.Invalid("cartToken", "is required")
	}
	if err := s.carts.Delete(ctx, token); err != nil {
		return apperr.Persistence("delete cart", err)
	}
	log.Printf("[Cart] %s: cleared", shortToken(token))
	return nil
}

// ListItems joins every line with the product's current state. Lines whose
// product no longer exists are skipped. Nothing is written.
func (s *Service) ListItems(ctx context.Context, token string) ([]Item, error) {
	c, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	joined := make([]*Item, len(c.Lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLookups)

	for i, line := range c.Lines {
		g.Go(func() error {
			p, err := s.products.Get(gctx, line.ProductID)
			if apperr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			joined[i] = &Item{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Image:     p.Image,
				Category:  p.Category,
				Stock:     p.Stock,
				Quantity:  line.Quantity,
				LineTotal: p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(joined))
	for _, item := range joined {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}

func shortToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
