package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/command"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/category"
	"github.com/example/storefront/internal/domain/product"
	"github.com/example/storefront/internal/infrastructure/cartstore"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/query"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Invalid configuration: %v", err)
	}
	if err := cfg.ValidateJWT(); err != nil {
		log.Fatalf("[API] %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Storefront API")
	log.Println("[API] ========================================")
	log.Printf("[API] Document store: %s", cfg.StoreDriver)
	log.Printf("[API] Cart store:     %s", cfg.CartStore)

	docs, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("[API] Failed to open document store: %v", err)
	}
	defer closeStore()

	cartStore, closeCarts, err := cartstore.Open(ctx, cfg, docs)
	if err != nil {
		log.Fatalf("[API] Failed to open cart store: %v", err)
	}
	defer closeCarts()

	// Catalog events are optional; without brokers mutations are not published.
	var publisher command.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Printf("[API] Publishing catalog events to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	} else {
		log.Println("[API] KAFKA_BROKERS not set, catalog events disabled")
	}

	productSvc := product.NewService(docs)
	categorySvc := category.NewService(docs)
	cartSvc := cart.NewService(cartStore, productSvc)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)

	cmdHandler := command.NewHandler(productSvc, categorySvc, publisher)
	queryHandler := query.NewHandler(productSvc, categorySvc, cartSvc)

	router := api.NewRouter(api.RouterConfig{
		Handlers:     api.NewHandlers(cmdHandler, queryHandler),
		CartHandlers: api.NewCartHandlers(cartSvc, queryHandler),
		JWTService:   jwtService,
		CartTokenTTL: cfg.CartTTL,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}
