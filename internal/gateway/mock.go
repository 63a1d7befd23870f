package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockProvider is a mock payment provider for testing.
// Simulates payment-order creation without calling the gateway API.
type MockProvider struct {
	// CreatePaymentOrderFunc allows customizing order creation behavior
	CreatePaymentOrderFunc func(ctx context.Context, params CreatePaymentOrderParams) (*PaymentOrder, error)

	// Orders stores created payment orders for retrieval
	Orders map[string]*PaymentOrder

	// CallLog tracks method calls for test assertions
	CallLog []string
}

// NewMockProvider creates a new mock payment provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Orders:  make(map[string]*PaymentOrder),
		CallLog: []string{},
	}
}

// CreatePaymentOrder creates a mock payment order.
func (m *MockProvider) CreatePaymentOrder(ctx context.Context, params CreatePaymentOrderParams) (*PaymentOrder, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreatePaymentOrder(%d, %s)", params.AmountPaise, params.Currency))

	if m.CreatePaymentOrderFunc != nil {
		return m.CreatePaymentOrderFunc(ctx, params)
	}

	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}

	order := &PaymentOrder{
		GatewayOrderID: "order_" + uuid.New().String()[:13],
		AmountPaise:    params.AmountPaise,
		Currency:       currency,
		Status:         "created",
		CreatedAt:      time.Now(),
	}

	m.Orders[order.GatewayOrderID] = order
	return order, nil
}
