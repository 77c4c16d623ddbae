package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildStockAlertBody_EscapesFields(t *testing.T) {
	body := BuildStockAlertBody(StockAlert{
		ProductID: "p-1",
		Name:      "<Gift> Card",
		Category:  "cards",
		Price:     "25.00",
		Stock:     2,
		EventType: "ProductUpdated",
	})

	assert.Contains(t, body, "&lt;Gift&gt; Card")
	assert.NotContains(t, body, "<Gift>")
	assert.Contains(t, body, "$25.00")
	assert.Contains(t, body, "ProductUpdated")
	assert.Contains(t, body, "has 2 left in stock")
}

func TestSendStockAlert_NoRecipients(t *testing.T) {
	s := NewService("127.0.0.1", "1", "noreply@example.com")

	assert.NoError(t, s.SendStockAlert(nil, StockAlert{Name: "x"}))
}
