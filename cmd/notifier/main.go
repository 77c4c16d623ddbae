package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/user"
	"github.com/example/storefront/internal/email"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/notification"
)

const consumerGroup = "stock-notifier"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Notifier] Invalid configuration: %v", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("[Notifier] KAFKA_BROKERS is required")
	}

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Storefront - Stock Alert Notifier")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[Notifier] Topic: %s", cfg.KafkaTopic)
	log.Printf("[Notifier] Group: %s", consumerGroup)
	log.Printf("[Notifier] SMTP: %s:%s", cfg.SMTPHost, cfg.SMTPPort)
	log.Printf("[Notifier] Threshold: %d", cfg.StockAlertThreshold)

	docs, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("[Notifier] Failed to open store: %v", err)
	}
	defer closeStore()

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailSvc, user.NewService(docs), cfg.StockAlertThreshold)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	go func() {
		log.Printf("[Notifier] Listening to topic: %s", cfg.KafkaTopic)
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
			log.Printf("[Notifier] Consumer error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Notifier] Shutting down...")
	cancel()
}
