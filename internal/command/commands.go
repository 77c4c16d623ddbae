package command

import (
	"github.com/example/storefront/internal/domain/category"
	"github.com/example/storefront/internal/domain/product"
)

// Product Commands
type CreateProduct struct {
	product.Input
}

type UpdateProduct struct {
	ProductID string `json:"-"`
	product.Input
}

type DeleteProduct struct {
	ProductID string `json:"productId"`
}

// Category Commands
type CreateCategory struct {
	category.Input
}

type UpdateCategory struct {
	CategoryID string `json:"-"`
	category.Input
}

type DeleteCategory struct {
	CategoryID string `json:"categoryId"`
}
