// internal/workers/notifications_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/yfarouk/dealstack-be/internal/pkg/config"
)

// NotificationProcessor sends deal receipt notifications
type NotificationProcessor struct {
	config *config.Config
	logger *slog.Logger
}

// NewNotificationProcessor creates a new notification processor
func NewNotificationProcessor(cfg *config.Config, logger *slog.Logger) *NotificationProcessor {
	return &NotificationProcessor{
		config: cfg,
		logger: logger.With(slog.String("processor", "notification")),
	}
}

// SendDealReceipt emails the customer a receipt for a settled deal.
// The contact field is only usable when it is an email address;
// phone-number contacts are logged and skipped.
func (p *NotificationProcessor) SendDealReceipt(ctx context.Context, t *asynq.Task) error {
	var payload DealReceiptPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if !strings.Contains(payload.Contact, "@") {
		p.logger.InfoContext(ctx, "skipping receipt, contact is not an email",
			slog.String("deal_id", payload.DealID))
		return nil
	}

	subject := fmt.Sprintf("Receipt for your %s purchase", payload.DealType)
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for your purchase. Your total was %s.\nReference: %s\n",
		payload.CustomerName, payload.TotalAmount, payload.DealID,
	)

	p.logger.InfoContext(ctx, "sending deal receipt",
		slog.String("deal_id", payload.DealID),
		slog.String("to", payload.Contact))

	// In development, just log the email
	if p.config.App.Environment == "development" {
		p.logger.InfoContext(ctx, "receipt would be sent",
			slog.String("to", payload.Contact),
			slog.String("subject", subject),
			slog.String("body", body))
		return nil
	}

	from := "noreply@dealstack.app"
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, payload.Contact, subject, body,
	))

	auth := smtp.PlainAuth("", "", "", "smtp.example.com")
	if err := smtp.SendMail("smtp.example.com:587", auth, from, []string{payload.Contact}, msg); err != nil {
		return fmt.Errorf("failed to send receipt: %w", err)
	}

	p.logger.InfoContext(ctx, "deal receipt sent",
		slog.String("deal_id", payload.DealID))
	return nil
}
