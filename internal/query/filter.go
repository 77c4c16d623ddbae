package query

import (
	"strings"

	"github.com/example/storefront/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductFilter holds the optional search criteria. Every criterion that is set
// must hold for a product to match; unset criteria match everything.
type ProductFilter struct {
	// Category is a single category id or a comma separated list of ids,
	// any of which may match.
	Category   string
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    bool
	OutOfStock bool
	// Limit caps the number of results when positive.
	Limit int
}

// Categories splits Category into its non-empty members.
func (f ProductFilter) Categories() []string {
	var out []string
	for _, c := range strings.Split(f.Category, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Match applies every criterion except the category, which the store handles.
func (f ProductFilter) Match(p product.Product) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock && p.Stock <= 0 {
		return false
	}
	if f.OutOfStock && p.Stock != 0 {
		return false
	}
	return true
}
