package api

import (
	"net/http"
	"strings"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/query"
)

// CartHandlers serves the anonymous cart identified by the cart token.
type CartHandlers struct {
	carts        *cart.Service
	queryHandler *query.Handler
}

func NewCartHandlers(carts *cart.Service, queryHandler *query.Handler) *CartHandlers {
	return &CartHandlers{carts: carts, queryHandler: queryHandler}
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandlers) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, r, middleware.CartTokenFromContext(r.Context()))
}

func (h *CartHandlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	token := middleware.CartTokenFromContext(r.Context())
	if _, err := h.carts.AddItem(r.Context(), token, req.ProductID, req.Quantity); err != nil {
		respondError(w, r, err)
		return
	}
	h.respondCart(w, r, token)
}

// RemoveFromCart drops one line when productId is given and clears the cart otherwise.
func (h *CartHandlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.CartTokenFromContext(r.Context())
	productID := strings.TrimSpace(r.URL.Query().Get("productId"))

	var err error
	if productID == "" {
		err = h.carts.Clear(r.Context(), token)
	} else {
		_, err = h.carts.RemoveItem(r.Context(), token, productID)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondCart(w, r, token)
}

func (h *CartHandlers) respondCart(w http.ResponseWriter, r *http.Request, token string) {
	view, err := h.queryHandler.GetCart(r.Context(), token)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
