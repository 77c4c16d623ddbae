package product

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
)

type ProductCreated struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ProductUpdated struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ProductDeleted struct {
	ProductID string    `json:"productId"`
	DeletedAt time.Time `json:"deletedAt"`
}

// CreatedEvent builds the event published after p was created.
func CreatedEvent(p *Product) ProductCreated {
	return ProductCreated{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

func UpdatedEvent(p *Product, at time.Time) ProductUpdated {
	return ProductUpdated{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Stock:     p.Stock,
		UpdatedAt: at,
	}
}
