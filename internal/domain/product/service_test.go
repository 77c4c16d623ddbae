package product

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/infrastructure/store/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProductService() (*Service, *mocks.MockDocumentStore) {
	ds := mocks.NewMockDocumentStore()
	service := NewService(ds)
	service.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return service, ds
}

func validInput() Input {
	return Input{
		Name:        "Wireless Headphones",
		Price:       decimal.RequireFromString("199.99"),
		Description: "Noise cancelling over-ear headphones",
		Category:    "headphones",
		Stock:       15,
	}
}

func requireFields(t *testing.T, err error, fields ...string) {
	t.Helper()
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, f := range fields {
		assert.Contains(t, verr.Fields, f)
	}
}

func assertSameProduct(t *testing.T, want, got *Product) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.Price.Equal(got.Price), "price %s != %s", want.Price, got.Price)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Category, got.Category)
	assert.Equal(t, want.Stock, got.Stock)
	assert.Equal(t, want.Image, got.Image)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

// ============================================
// Create Product Tests
// ============================================

func TestService_Create_ValidProduct(t *testing.T) {
	service, ds := newTestProductService()
	ctx := context.Background()

	p, err := service.Create(ctx, validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Wireless Headphones", p.Name)
	assert.True(t, decimal.RequireFromString("199.99").Equal(p.Price))
	assert.Equal(t, 15, p.Stock)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), p.CreatedAt)

	require.Len(t, ds.InsertCalls, 1)
	assert.Equal(t, store.CollectionProducts, ds.InsertCalls[0].Collection)

	stored, err := service.Get(ctx, p.ID)
	require.NoError(t, err)
	assertSameProduct(t, p, stored)
}

func TestService_Create_Defaults(t *testing.T) {
	service, _ := newTestProductService()
	in := validInput()
	in.Stock = 0
	in.Image = ""

	p, err := service.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, DefaultImage, p.Image)
}

func TestService_Create_ZeroPriceAllowed(t *testing.T) {
	service, _ := newTestProductService()
	in := validInput()
	in.Price = decimal.Zero

	p, err := service.Create(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, p.Price.IsZero())
}

func TestService_Create_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"empty name", func(in *Input) { in.Name = "" }, "name"},
		{"blank name", func(in *Input) { in.Name = "   " }, "name"},
		{"name too long", func(in *Input) { in.Name = strings.Repeat("a", 101) }, "name"},
		{"negative price", func(in *Input) { in.Price = decimal.RequireFromString("-0.01") }, "price"},
		{"empty description", func(in *Input) { in.Description = "" }, "description"},
		{"negative stock", func(in *Input) { in.Stock = -1 }, "stock"},
		{"missing category", func(in *Input) { in.Category = "" }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ds := newTestProductService()
			in := validInput()
			tt.mutate(&in)

			p, err := service.Create(context.Background(), in)

			assert.Nil(t, p)
			requireFields(t, err, tt.field)
			assert.Empty(t, ds.InsertCalls)
			assert.Equal(t, 0, ds.Count(store.CollectionProducts))
		})
	}
}

func TestService_Create_NameAtLimit(t *testing.T) {
	service, _ := newTestProductService()
	in := validInput()
	in.Name = strings.Repeat("é", 100)

	_, err := service.Create(context.Background(), in)

	assert.NoError(t, err)
}

func TestService_Create_ListsEveryViolation(t *testing.T) {
	service, _ := newTestProductService()

	_, err := service.Create(context.Background(), Input{Price: decimal.NewFromInt(-5), Stock: -2})

	requireFields(t, err, "name", "price", "description", "stock")
}

func TestService_Create_PersistenceFailure(t *testing.T) {
	service, ds := newTestProductService()
	ds.InsertErr = errors.New("connection reset")

	p, err := service.Create(context.Background(), validInput())

	assert.Nil(t, p)
	var pe *apperr.PersistenceError
	assert.ErrorAs(t, err, &pe)
}

// ============================================
// Update Product Tests
// ============================================

func TestService_Update_ReplacesMutableFields(t *testing.T) {
	service, _ := newTestProductService()
	ctx := context.Background()
	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	service.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	updated, err := service.Update(ctx, created.ID, Input{
		Name:        "Studio Headphones",
		Price:       decimal.RequireFromString("149.50"),
		Description: "Closed back",
		Category:    "audio",
		Stock:       3,
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Studio Headphones", updated.Name)
	assert.True(t, decimal.RequireFromString("149.5").Equal(updated.Price))
	assert.Equal(t, "audio", updated.Category)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, DefaultImage, updated.Image)
}

func TestService_Update_PatchNeverCarriesIdentity(t *testing.T) {
	service, ds := newTestProductService()
	ctx := context.Background()
	created, _ := service.Create(ctx, validInput())

	_, err := service.Update(ctx, created.ID, validInput())

	require.NoError(t, err)
	require.Len(t, ds.UpdateCalls, 1)
	assert.NotContains(t, ds.UpdateCalls[0].Patch, "id")
	assert.NotContains(t, ds.UpdateCalls[0].Patch, "createdAt")
}

func TestService_Update_NotFound(t *testing.T) {
	service, ds := newTestProductService()

	p, err := service.Update(context.Background(), "missing", validInput())

	assert.Nil(t, p)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, ds.UpdateCalls)
}

func TestService_Update_InvalidLeavesProductUnchanged(t *testing.T) {
	service, ds := newTestProductService()
	ctx := context.Background()
	created, _ := service.Create(ctx, validInput())
	in := validInput()
	in.Price = decimal.NewFromInt(-1)

	_, err := service.Update(ctx, created.ID, in)

	requireFields(t, err, "price")
	assert.Empty(t, ds.UpdateCalls)
	stored, _ := service.Get(ctx, created.ID)
	assertSameProduct(t, created, stored)
}

// ============================================
// Delete / Get / List Tests
// ============================================

func TestService_Delete(t *testing.T) {
	service, _ := newTestProductService()
	ctx := context.Background()
	created, _ := service.Create(ctx, validInput())

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err := service.Get(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Delete_NotFound(t *testing.T) {
	service, _ := newTestProductService()

	err := service.Delete(context.Background(), "missing")

	assert.True(t, apperr.IsNotFound(err))
}

func TestService_List_PushesCategoryFilterDown(t *testing.T) {
	service, ds := newTestProductService()
	ctx := context.Background()
	in := validInput()
	_, _ = service.Create(ctx, in)
	in.Category = "speakers"
	_, _ = service.Create(ctx, in)
	ds.Reset()

	products, err := service.List(ctx, "speakers")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "speakers", products[0].Category)
	require.Len(t, ds.FindCalls, 1)
	assert.Equal(t, store.Filter{"category": "speakers"}, ds.FindCalls[0].Filter)
}

func TestService_List_PersistenceFailure(t *testing.T) {
	service, ds := newTestProductService()
	ds.FindErr = errors.New("timeout")

	_, err := service.List(context.Background(), "")

	var pe *apperr.PersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestFromDocument_JSONBackedValues(t *testing.T) {
	p := fromDocument(store.Document{
		"id":          "p1",
		"name":        "Mug",
		"price":       12.5,
		"description": "Ceramic",
		"category":    "kitchen",
		"stock":       float64(4),
		"image":       "/mug.png",
		"createdAt":   "2024-03-01T09:00:00Z",
	})

	assert.Equal(t, 4, p.Stock)
	assert.True(t, decimal.RequireFromString("12.5").Equal(p.Price))
	assert.Equal(t, 2024, p.CreatedAt.Year())
}
