package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/seed"
)

func main() {
	file := flag.String("file", "", "YAML catalog to load (defaults to the built-in fixture)")
	reset := flag.Bool("reset", false, "delete existing products, categories and users first")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Seed] Invalid configuration: %v", err)
	}
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("[Seed] STORE_DRIVER is memory; seeded data will not outlive this process")
	}

	data := seed.DefaultCatalog
	if *file != "" {
		data, err = os.ReadFile(*file)
		if err != nil {
			log.Fatalf("[Seed] Failed to read %s: %v", *file, err)
		}
	}
	catalog, err := seed.Parse(data)
	if err != nil {
		log.Fatalf("[Seed] %v", err)
	}

	docs, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("[Seed] Failed to open store: %v", err)
	}
	defer closeStore()

	res, err := seed.Apply(ctx, docs, catalog, *reset)
	if err != nil {
		log.Fatalf("[Seed] %v", err)
	}
	log.Printf("[Seed] Inserted %d categories, %d products, %d users", res.Categories, res.Products, res.Users)
}
