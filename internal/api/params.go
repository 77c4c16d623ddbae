package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/query"
	"github.com/shopspring/decimal"
)

// parseProductFilter reads the search criteria of GET /products. Malformed
// numbers and booleans become a ValidationError naming every bad parameter.
func parseProductFilter(values url.Values) (query.ProductFilter, error) {
	f := query.ProductFilter{
		Category: strings.TrimSpace(values.Get("category")),
		Search:   strings.TrimSpace(values.Get("search")),
	}
	verr := &apperr.ValidationError{Fields: map[string]string{}}

	f.MinPrice = parseDecimal(values, "minPrice", verr)
	f.MaxPrice = parseDecimal(values, "maxPrice", verr)
	f.InStock = parseBool(values, "inStock", verr)
	f.OutOfStock = parseBool(values, "outOfStock", verr)

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			verr.Fields["limit"] = "must be a non-negative integer"
		} else {
			f.Limit = n
		}
	}

	if len(verr.Fields) > 0 {
		return query.ProductFilter{}, verr
	}
	return f, nil
}

func parseDecimal(values url.Values, key string, verr *apperr.ValidationError) *decimal.Decimal {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Fields[key] = "must be a number"
		return nil
	}
	return &d
}

func parseBool(values url.Values, key string, verr *apperr.ValidationError) bool {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		verr.Fields[key] = "must be true or false"
		return false
	}
	return b
}
