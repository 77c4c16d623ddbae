// Package seed loads a fixture catalog into the document store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/example/storefront/internal/domain/category"
	"github.com/example/storefront/internal/domain/product"
	"github.com/example/storefront/internal/domain/user"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var DefaultCatalog []byte

type Catalog struct {
	Categories []category.Input `yaml:"categories"`
	Products   []Product        `yaml:"products"`
	Users      []User           `yaml:"users"`
}

// Product mirrors product.Input with the price kept as text so it is parsed
// exactly.
type Product struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Stock       int    `yaml:"stock"`
	Image       string `yaml:"image"`
}

type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Result counts what Apply created.
type Result struct {
	Categories int
	Products   int
	Users      int
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, p := range c.Products {
		if _, err := decimal.NewFromString(p.Price); err != nil {
			return nil, fmt.Errorf("product %d (%s): invalid price %q", i, p.Name, p.Price)
		}
	}
	return &c, nil
}

// Apply writes the catalog through the domain services so every record is
// validated. With reset, the seeded collections are emptied first.
func Apply(ctx context.Context, ds store.DocumentStore, c *Catalog, reset bool) (Result, error) {
	var res Result
	if reset {
		for _, collection := range []string{store.CollectionProducts, store.CollectionCategories, store.CollectionUsers} {
			n, err := purge(ctx, ds, collection)
			if err != nil {
				return res, err
			}
			log.Printf("[Seed] Removed %d document(s) from %s", n, collection)
		}
	}

	categories := category.NewService(ds)
	for _, in := range c.Categories {
		if _, err := categories.Create(ctx, in); err != nil {
			return res, fmt.Errorf("category %s: %w", in.Name, err)
		}
		res.Categories++
	}

	products := product.NewService(ds)
	for _, p := range c.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return res, fmt.Errorf("product %s: %w", p.Name, err)
		}
		_, err = products.Create(ctx, product.Input{
			Name:        p.Name,
			Price:       price,
			Description: p.Description,
			Category:    p.Category,
			Stock:       p.Stock,
			Image:       p.Image,
		})
		if err != nil {
			return res, fmt.Errorf("product %s: %w", p.Name, err)
		}
		res.Products++
	}

	users := user.NewService(ds)
	for _, u := range c.Users {
		_, err := users.Register(ctx, user.Input{Name: u.Name, Email: u.Email, Password: u.Password, Role: u.Role})
		if err != nil {
			return res, fmt.Errorf("user %s: %w", u.Email, err)
		}
		res.Users++
	}
	return res, nil
}

func purge(ctx context.Context, ds store.DocumentStore, collection string) (int, error) {
	docs, err := ds.Find(ctx, collection, nil)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", collection, err)
	}
	for _, doc := range docs {
		if _, err := ds.DeleteOne(ctx, collection, doc.ID()); err != nil {
			return 0, fmt.Errorf("delete %s/%s: %w", collection, doc.ID(), err)
		}
	}
	return len(docs), nil
}
