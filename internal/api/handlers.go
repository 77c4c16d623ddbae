package api

import (
	"net/http"
	"strconv"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/command"
	"github.com/example/storefront/internal/query"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
	}
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}

	products, err := h.queryHandler.SearchProducts(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.queryHandler.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	limit := query.DefaultRelatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, r, apperr.Invalid("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	products, err := h.queryHandler.RelatedProducts(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProduct
	if err := decodeJSON(r, &cmd); err != nil {
		respondError(w, r, err)
		return
	}

	product, err := h.cmdHandler.CreateProduct(r.Context(), middleware.RoleFromContext(r.Context()), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateProduct
	if err := decodeJSON(r, &cmd); err != nil {
		respondError(w, r, err)
		return
	}
	cmd.ProductID = chi.URLParam(r, "id")

	product, err := h.cmdHandler.UpdateProduct(r.Context(), middleware.RoleFromContext(r.Context()), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteProduct{ProductID: chi.URLParam(r, "id")}
	if err := h.cmdHandler.DeleteProduct(r.Context(), middleware.RoleFromContext(r.Context()), cmd); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Category Handlers

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queryHandler.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateCategory
	if err := decodeJSON(r, &cmd); err != nil {
		respondError(w, r, err)
		return
	}

	c, err := h.cmdHandler.CreateCategory(r.Context(), middleware.RoleFromContext(r.Context()), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateCategory
	if err := decodeJSON(r, &cmd); err != nil {
		respondError(w, r, err)
		return
	}
	cmd.CategoryID = chi.URLParam(r, "id")

	c, err := h.cmdHandler.UpdateCategory(r.Context(), middleware.RoleFromContext(r.Context()), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteCategory{CategoryID: chi.URLParam(r, "id")}
	if err := h.cmdHandler.DeleteCategory(r.Context(), middleware.RoleFromContext(r.Context()), cmd); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
