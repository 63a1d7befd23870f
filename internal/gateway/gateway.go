package gateway

import (
	"context"
	"time"
)

// Provider defines the interface for the payment gateway.
// Implementations create remote payment orders; callback verification is a
// pure function (see VerifySignature) and needs no provider round trip.
type Provider interface {
	// CreatePaymentOrder creates a payment order on the gateway for the
	// amount in minor units. The shopper completes payment against the
	// returned gateway order id in the gateway's own UI.
	CreatePaymentOrder(ctx context.Context, params CreatePaymentOrderParams) (*PaymentOrder, error)
}

// CreatePaymentOrderParams contains parameters for creating a payment order.
type CreatePaymentOrderParams struct {
	// AmountPaise is the amount in the smallest currency unit (paise for INR).
	AmountPaise int64

	// Currency code (ISO 4217) - e.g., "INR".
	Currency string

	// Receipt is an optional merchant-side reference shown in the gateway
	// dashboard.
	Receipt string

	// Notes are free-form key/values attached to the gateway order.
	Notes map[string]interface{}
}

// PaymentOrder represents a payment order created on the gateway.
type PaymentOrder struct {
	// GatewayOrderID is the gateway's order identifier (order_...).
	GatewayOrderID string

	// AmountPaise echoes the requested amount in minor units.
	AmountPaise int64

	// Currency code.
	Currency string

	// Status as reported by the gateway ("created" for a fresh order).
	Status string

	// CreatedAt is when the gateway order was created.
	CreatedAt time.Time
}
