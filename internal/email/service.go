package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Service sends mail through a plain SMTP relay.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendStockAlert tells the recipients that a product is at or below the stock threshold.
func (s *Service) SendStockAlert(to []string, alert StockAlert) error {
	if len(to) == 0 {
		return nil
	}
	subject := fmt.Sprintf("[Storefront] Low stock: %s", alert.Name)
	return s.send(to, subject, BuildStockAlertBody(alert))
}

func (s *Service) send(to []string, subject, body string) error {
	headers := []string{
		"From: " + s.from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, to, []byte(msg))
}
