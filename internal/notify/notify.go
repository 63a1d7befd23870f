package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreated is the notification payload emitted after a checkout persists
// its order. Every sink is best-effort: a failed notification is logged by
// the caller and never changes the checkout outcome.
type OrderCreated struct {
	OrderID       string          `json:"order_id"`
	UserEmail     string          `json:"user_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Notifier delivers an order-created notification to a sink.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, ev OrderCreated) error
}

// Multi fans out to several sinks, returning the first error after trying
// all of them.
type Multi []Notifier

func (m Multi) NotifyOrderCreated(ctx context.Context, ev OrderCreated) error {
	var firstErr error
	for _, n := range m {
		if err := n.NotifyOrderCreated(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
