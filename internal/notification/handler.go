package notification

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/product"
	"github.com/example/storefront/internal/domain/user"
	"github.com/example/storefront/internal/email"
)

// Mailer is the part of email.Service the handler needs.
type Mailer interface {
	SendStockAlert(to []string, alert email.StockAlert) error
}

// Recipients finds the accounts that receive stock alerts.
type Recipients interface {
	ListByRole(ctx context.Context, role auth.Role) ([]user.User, error)
}

// envelope mirrors command.Event with the payload left undecoded.
type envelope struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	EntityID string          `json:"entityId"`
	Data     json.RawMessage `json:"data"`
}

type stockPayload struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     json.RawMessage `json:"price"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
}

// Handler emails admins when a catalog event leaves a product at or below
// the stock threshold.
type Handler struct {
	mailer     Mailer
	recipients Recipients
	threshold  int
}

func NewHandler(mailer Mailer, recipients Recipients, threshold int) *Handler {
	return &Handler{
		mailer:     mailer,
		recipients: recipients,
		threshold:  threshold,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event envelope
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	switch event.Type {
	case product.EventProductCreated, product.EventProductUpdated:
		return h.handleStockChange(ctx, event)
	}
	return nil
}

func (h *Handler) handleStockChange(ctx context.Context, event envelope) error {
	var p stockPayload
	if err := json.Unmarshal(event.Data, &p); err != nil {
		log.Printf("[Notifier] Failed to unmarshal %s event: %v", event.Type, err)
		return err
	}
	if p.Stock > h.threshold {
		return nil
	}

	admins, err := h.recipients.ListByRole(ctx, auth.RoleAdmin)
	if err != nil {
		log.Printf("[Notifier] Error listing admins: %v", err)
		return err
	}
	to := make([]string, 0, len(admins))
	for _, a := range admins {
		to = append(to, a.Email)
	}
	if len(to) == 0 {
		log.Printf("[Notifier] No admin to notify about product %s", p.ProductID)
		return nil
	}

	alert := email.StockAlert{
		ProductID: p.ProductID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     strings.Trim(string(p.Price), `"`),
		Stock:     p.Stock,
		EventType: event.Type,
	}
	if err := h.mailer.SendStockAlert(to, alert); err != nil {
		log.Printf("[Notifier] Failed to send stock alert for %s: %v", p.ProductID, err)
		return err
	}

	log.Printf("[Notifier] Stock alert for %s sent to %d admin(s)", p.ProductID, len(to))
	return nil
}
