package email

import (
	"fmt"
	"html"
)

// StockAlert describes a product whose stock fell to the alert threshold.
type StockAlert struct {
	ProductID string
	Name      string
	Category  string
	Price     string
	Stock     int
	EventType string
}

// BuildStockAlertBody renders the HTML body of a low stock alert.
func BuildStockAlertBody(a StockAlert) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; color: #333;">
	<h2 style="color: #b00020;">Low stock</h2>
	<p><strong>%s</strong> has %d left in stock.</p>
	<table style="border-collapse: collapse;">
		<tr><td style="padding: 4px 12px;">Product ID</td><td style="padding: 4px 12px;">%s</td></tr>
		<tr><td style="padding: 4px 12px;">Category</td><td style="padding: 4px 12px;">%s</td></tr>
		<tr><td style="padding: 4px 12px;">Price</td><td style="padding: 4px 12px;">$%s</td></tr>
		<tr><td style="padding: 4px 12px;">Triggered by</td><td style="padding: 4px 12px;">%s</td></tr>
	</table>
	<p style="color: #888; font-size: 12px;">Restock it from the admin console.</p>
</body>
</html>`,
		html.EscapeString(a.Name),
		a.Stock,
		html.EscapeString(a.ProductID),
		html.EscapeString(a.Category),
		html.EscapeString(a.Price),
		html.EscapeString(a.EventType),
	)
}
