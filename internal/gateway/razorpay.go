package gateway

import (
	"context"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayConfig contains configuration for the Razorpay provider.
type RazorpayConfig struct {
	// KeyID is the public key identifier (rzp_test_... or rzp_live_...).
	KeyID string

	// KeySecret authenticates API calls. It is also the shared secret for
	// callback signature verification, held server-side only.
	KeySecret string

	// TimeoutSeconds bounds each API call. Defaults to 30. The type matches
	// the SDK's SetTimeout contract.
	TimeoutSeconds int16
}

// IsTestMode reports whether the key pair targets the test environment.
func (c RazorpayConfig) IsTestMode() bool {
	return len(c.KeyID) >= 8 && c.KeyID[:8] == "rzp_test"
}

// RazorpayProvider implements Provider against the Razorpay Orders API.
type RazorpayProvider struct {
	client *razorpay.Client
}

// Compile-time check that RazorpayProvider implements Provider.
var _ Provider = (*RazorpayProvider)(nil)

// NewRazorpayProvider creates a Razorpay-backed payment provider.
func NewRazorpayProvider(cfg RazorpayConfig) (*RazorpayProvider, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrMissingCredentials
	}

	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	client.SetTimeout(timeout)

	return &RazorpayProvider{client: client}, nil
}

// CreatePaymentOrder creates an order on Razorpay. Razorpay rejects amounts
// below 100 paise, so that is checked before the round trip.
func (p *RazorpayProvider) CreatePaymentOrder(ctx context.Context, params CreatePaymentOrderParams) (*PaymentOrder, error) {
	if params.AmountPaise < 100 {
		return nil, &GatewayError{Message: "amount below gateway minimum", Op: "order.create", OriginalError: ErrInvalidAmount}
	}
	// The SDK does not accept a context; honor cancellation before the call.
	if err := ctx.Err(); err != nil {
		return nil, &GatewayError{Message: "request cancelled", Op: "order.create", OriginalError: err}
	}

	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":   params.AmountPaise,
		"currency": currency,
	}
	if params.Receipt != "" {
		data["receipt"] = params.Receipt
	}
	if len(params.Notes) > 0 {
		data["notes"] = params.Notes
	}

	body, err := p.client.Order.Create(data, nil)
	if err != nil {
		return nil, &GatewayError{Message: "failed to create payment order", Op: "order.create", OriginalError: err}
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, &GatewayError{Message: "response missing order id", Op: "order.create", OriginalError: ErrMalformedResponse}
	}

	order := &PaymentOrder{
		GatewayOrderID: id,
		AmountPaise:    params.AmountPaise,
		Currency:       currency,
		Status:         "created",
		CreatedAt:      time.Now(),
	}

	// Prefer the gateway's echo of amount/status when present.
	if amount, ok := body["amount"].(float64); ok {
		order.AmountPaise = int64(amount)
	}
	if status, ok := body["status"].(string); ok {
		order.Status = status
	}
	if created, ok := body["created_at"].(float64); ok {
		order.CreatedAt = time.Unix(int64(created), 0)
	}

	return order, nil
}
