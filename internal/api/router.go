package api

import (
	"net/http"
	"time"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Handlers     *Handlers
	CartHandlers *CartHandlers
	JWTService   *auth.JWTService
	CartTokenTTL time.Duration
	// RequestTimeout bounds each request; zero means 15 seconds.
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	doc := NewOpenAPISpec()

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Logger, chimw.Recoverer)
	r.Use(chimw.Timeout(timeout))
	r.Use(middleware.OptionalAuth(cfg.JWTService))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/openapi.json", GetOpenAPI(doc))

	h := cfg.Handlers
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.GetProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
		r.Get("/{id}/related", h.GetRelatedProducts)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.CartToken(cfg.CartTokenTTL))
		r.Get("/", cfg.CartHandlers.GetCart)
		r.Post("/", cfg.CartHandlers.AddToCart)
		r.Delete("/", cfg.CartHandlers.RemoveFromCart)
	})

	return r
}
