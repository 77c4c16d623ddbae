package cart

import (
	"context"
	"time"

	"github.com/example/storefront/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Line is one product in a cart. A cart holds at most one line per product.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is owned by an opaque client token, not by a user.
type Cart struct {
	Token     string    `json:"token"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Cart) indexOf(productID string) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Store persists carts by token. Load returns an empty cart for an unknown token.
type Store interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

// ProductLookup resolves the current snapshot of a product.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*product.Product, error)
}

// Item is a cart line joined with its product at read time.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ShippingFee is charged on every non-empty cart.
var ShippingFee = decimal.RequireFromString("5.99")

// ComputeTotals sums price times quantity and adds the flat shipping fee when
// anything is owed.
func ComputeTotals(items []Item) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.Zero
	if subtotal.GreaterThan(decimal.Zero) {
		shipping = ShippingFee
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
