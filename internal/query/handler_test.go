package query

import (
	"context"
	"errors"
	"testing"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/category"
	"github.com/example/storefront/internal/domain/product"
	"github.com/example/storefront/internal/infrastructure/store/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler    *Handler
	ds         *mocks.MockDocumentStore
	products   *product.Service
	categories *category.Service
	carts      *cart.Service
}

func newTestQueryHandler() *testEnv {
	ds := mocks.NewMockDocumentStore()
	products := product.NewService(ds)
	categories := category.NewService(ds)
	carts := cart.NewService(cart.NewMemoryStore(), products)
	return &testEnv{
		handler:    NewHandler(products, categories, carts),
		ds:         ds,
		products:   products,
		categories: categories,
		carts:      carts,
	}
}

func (e *testEnv) addProduct(t *testing.T, name, cat, price string, stock int) *product.Product {
	t.Helper()
	p, err := e.products.Create(context.Background(), product.Input{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: name + " description",
		Category:    cat,
		Stock:       stock,
	})
	require.NoError(t, err)
	return p
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func names(products []product.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

// ============================================
// SearchProducts Tests
// ============================================

func TestHandler_SearchProducts_CombinedFilters(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "Red Shirt", "shirts", "20", 5)
	env.addProduct(t, "Blue Shirt", "shirts", "30", 0)
	env.addProduct(t, "Red Hat", "hats", "15", 2)

	got, err := env.handler.SearchProducts(context.Background(), ProductFilter{
		Category: "shirts",
		Search:   "red",
		InStock:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Red Shirt"}, names(got))
}

func TestHandler_SearchProducts_NoFilterReturnsAllInStoreOrder(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "B", "x", "1", 1)
	env.addProduct(t, "A", "y", "2", 0)
	env.addProduct(t, "C", "x", "3", 4)

	got, err := env.handler.SearchProducts(context.Background(), ProductFilter{})

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(got))
}

func TestHandler_SearchProducts_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "Wireless HEADPHONES", "audio", "99", 1)
	env.addProduct(t, "Speaker", "audio", "49", 1)

	got, err := env.handler.SearchProducts(context.Background(), ProductFilter{Search: "headPhon"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Wireless HEADPHONES"}, names(got))
}

func TestHandler_SearchProducts_PriceBoundsInclusive(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "Low", "x", "9.99", 1)
	env.addProduct(t, "Min", "x", "10", 1)
	env.addProduct(t, "Max", "x", "50", 1)
	env.addProduct(t, "High", "x", "50.01", 1)

	got, err := env.handler.SearchProducts(context.Background(), ProductFilter{MinPrice: dec("10"), MaxPrice: dec("50")})

	require.NoError(t, err)
	assert.Equal(t, []string{"Min", "Max"}, names(got))
}

func TestHandler_SearchProducts_StockFilters(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "Available", "x", "1", 3)
	env.addProduct(t, "Sold Out", "x", "1", 0)
	ctx := context.Background()

	inStock, err := env.handler.SearchProducts(ctx, ProductFilter{InStock: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Available"}, names(inStock))

	outOfStock, err := env.handler.SearchProducts(ctx, ProductFilter{OutOfStock: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sold Out"}, names(outOfStock))

	both, err := env.handler.SearchProducts(ctx, ProductFilter{InStock: true, OutOfStock: true})
	require.NoError(t, err)
	assert.Empty(t, both)
}

func TestHandler_SearchProducts_MultipleCategories(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "Shirt", "shirts", "1", 1)
	env.addProduct(t, "Hat", "hats", "1", 1)
	env.addProduct(t, "Sock", "socks", "1", 1)

	got, err := env.handler.SearchProducts(context.Background(), ProductFilter{Category: "socks, shirts"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Shirt", "Sock"}, names(got))
}

func TestHandler_SearchProducts_SingleCategoryPushedDown(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "Shirt", "shirts", "1", 1)
	env.ds.Reset()

	_, err := env.handler.SearchProducts(context.Background(), ProductFilter{Category: "shirts"})

	require.NoError(t, err)
	require.Len(t, env.ds.FindCalls, 1)
	assert.Equal(t, "shirts", env.ds.FindCalls[0].Filter["category"])
}

func TestHandler_SearchProducts_EmptyResultIsNotError(t *testing.T) {
	env := newTestQueryHandler()
	env.addProduct(t, "Shirt", "shirts", "1", 1)

	got, err := env.handler.SearchProducts(context.Background(), ProductFilter{Category: "nothing-here"})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHandler_SearchProducts_Limit(t *testing.T) {
	env := newTestQueryHandler()
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		env.addProduct(t, n, "x", "1", 1)
	}

	got, err := env.handler.SearchProducts(context.Background(), ProductFilter{Limit: 4})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(got))
}

func TestHandler_SearchProducts_PersistenceFailure(t *testing.T) {
	env := newTestQueryHandler()
	env.ds.FindErr = errors.New("connection refused")

	_, err := env.handler.SearchProducts(context.Background(), ProductFilter{})

	var pe *apperr.PersistenceError
	assert.ErrorAs(t, err, &pe)
}

// ============================================
// Product Detail / Related Tests
// ============================================

func TestHandler_GetProduct(t *testing.T) {
	env := newTestQueryHandler()
	p := env.addProduct(t, "Lamp", "home", "12", 1)

	got, err := env.handler.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Name)

	_, err = env.handler.GetProduct(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestHandler_RelatedProducts(t *testing.T) {
	env := newTestQueryHandler()
	target := env.addProduct(t, "Lamp", "home", "12", 1)
	for _, n := range []string{"Rug", "Vase", "Clock", "Mirror", "Shelf"} {
		env.addProduct(t, n, "home", "5", 1)
	}
	env.addProduct(t, "Drill", "tools", "40", 1)

	related, err := env.handler.RelatedProducts(context.Background(), target.ID, 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"Rug", "Vase", "Clock", "Mirror"}, names(related))
}

// ============================================
// Category / Cart Tests
// ============================================

func TestHandler_ListCategories(t *testing.T) {
	env := newTestQueryHandler()
	_, err := env.categories.Create(context.Background(), category.Input{ID: "audio", Name: "Audio"})
	require.NoError(t, err)

	categories, err := env.handler.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "audio", categories[0].ID)
}

func TestHandler_GetCart_Totals(t *testing.T) {
	env := newTestQueryHandler()
	ctx := context.Background()
	tee := env.addProduct(t, "Tee", "shirts", "10", 5)
	hat := env.addProduct(t, "Cap", "hats", "5", 5)
	_, _ = env.carts.AddItem(ctx, "tok", tee.ID, 2)
	_, _ = env.carts.AddItem(ctx, "tok", hat.ID, 1)

	view, err := env.handler.GetCart(ctx, "tok")

	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.True(t, decimal.RequireFromString("25").Equal(view.Subtotal))
	assert.True(t, decimal.RequireFromString("5.99").Equal(view.Shipping))
	assert.True(t, decimal.RequireFromString("30.99").Equal(view.Total))
}

func TestHandler_GetCart_DanglingLineAfterProductDeleted(t *testing.T) {
	env := newTestQueryHandler()
	ctx := context.Background()
	tee := env.addProduct(t, "Tee", "shirts", "10", 5)
	_, _ = env.carts.AddItem(ctx, "tok", tee.ID, 2)
	require.NoError(t, env.products.Delete(ctx, tee.ID))

	view, err := env.handler.GetCart(ctx, "tok")

	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}
