package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds SMTP connection parameters.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string // optional, some servers allow unauthenticated relay
	Password string
	From     string
	AdminTo  string
}

// EmailNotifier sends a plain-text order summary to the store admin via
// go-mail over SMTP.
type EmailNotifier struct {
	config SMTPConfig
	logger *slog.Logger
}

func NewEmailNotifier(config SMTPConfig, logger *slog.Logger) *EmailNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailNotifier{config: config, logger: logger}
}

func (e *EmailNotifier) NotifyOrderCreated(ctx context.Context, ev OrderCreated) error {
	msg := mail.NewMsg()
	if err := msg.From(e.config.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(e.config.AdminTo); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}

	msg.Subject(fmt.Sprintf("New order %s", shortID(ev.OrderID)))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"New order received.\n\nOrder: %s\nCustomer: %s\nAmount: ₹%s\nPayment: %s\nPlaced: %s\n",
		ev.OrderID, ev.UserEmail, ev.TotalAmount.StringFixed(2), ev.PaymentMethod,
		ev.Timestamp.Format(time.RFC3339),
	))

	client, err := mail.NewClient(e.config.Host, e.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		e.logger.Error("smtp: failed to send order notification", "error", err)
		return fmt.Errorf("send order notification: %w", err)
	}

	e.logger.Info("smtp: order notification sent", "order_id", ev.OrderID)
	return nil
}

func (e *EmailNotifier) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(e.config.Port),
		mail.WithTimeout(30 * time.Second),
	}

	switch e.config.Port {
	case 465:
		opts = append(opts, mail.WithSSL())
	case 587:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if e.config.Username != "" && e.config.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(e.config.Username),
			mail.WithPassword(e.config.Password),
		)
	}
	return opts
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
