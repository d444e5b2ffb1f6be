// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
	"github.com/sirupsen/logrus"

	"quickbite/models"
)

// EmailService sends transactional mail through Postmark. When no API
// token is configured the service is disabled and every send is a no-op.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService reads POSTMARK_API_TOKEN and EMAIL_SENDER from the
// environment. A missing token disables sending rather than failing.
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		logrus.Info("POSTMARK_API_TOKEN not set, order confirmation emails disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation to the customer
func (es *EmailService) SendOrderConfirmationEmail(order models.Order) error {
	subject := "Your QuickBite order"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Thanks for your order! Order #%d is <strong>%s</strong>.<br><br>Total: <strong>$%.2f</strong><br><br>We'll let you know when it's on the way.",
		order.CustomerName,
		order.ID,
		order.Status,
		order.TotalAmount,
	)

	return es.SendEmail(order.CustomerEmail, subject, htmlContent)
}
