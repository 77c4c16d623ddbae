package category

import (
	"regexp"
	"strings"

	"github.com/example/storefront/internal/infrastructure/store"
)

const DefaultImage = "/placeholder.svg?height=300&width=300"

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Input carries the caller-editable fields of a category. ID is only read on create.
type Input struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required,max=50"`
	Image string `json:"image"`
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slug derives a URL-friendly id from a category name.
func Slug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.NewReplacer(" ", "-", "_", "-", "&", "-").Replace(slug)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func toDocument(c *Category) store.Document {
	return store.Document{
		"id":    c.ID,
		"name":  c.Name,
		"image": c.Image,
	}
}

func fromDocument(doc store.Document) Category {
	return Category{
		ID:    doc.ID(),
		Name:  doc.String("name"),
		Image: doc.String("image"),
	}
}
