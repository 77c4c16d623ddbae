package product

import (
	"time"

	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/shopspring/decimal"
)

const DefaultImage = "/placeholder.svg?height=400&width=400"

func init() {
	// Prices go over the wire as JSON numbers, matching the stored documents.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Input carries the caller-editable fields of a product.
type Input struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Image       string          `json:"image"`
}

func toDocument(p *Product) store.Document {
	return store.Document{
		"id":          p.ID,
		"name":        p.Name,
		"price":       p.Price.InexactFloat64(),
		"description": p.Description,
		"category":    p.Category,
		"stock":       p.Stock,
		"image":       p.Image,
		"createdAt":   p.CreatedAt,
	}
}

// mutableFields is the patch written by an update. It never carries id or createdAt.
func mutableFields(p *Product) store.Document {
	doc := toDocument(p)
	delete(doc, "id")
	delete(doc, "createdAt")
	return doc
}

func fromDocument(doc store.Document) Product {
	return Product{
		ID:          doc.ID(),
		Name:        doc.String("name"),
		Price:       decimal.NewFromFloat(doc.Float("price")),
		Description: doc.String("description"),
		Category:    doc.String("category"),
		Stock:       doc.Int("stock"),
		Image:       doc.String("image"),
		CreatedAt:   doc.Time("createdAt"),
	}
}
