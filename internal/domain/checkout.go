package domain

import (
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout. The wire values are part of the
// order record shape and must not change.
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

// Order lifecycle values. An order is created exactly once per successful
// (or pay-on-delivery) checkout attempt; later transitions belong to the
// fulfillment side, not this system.
const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusOrphaned  = "orphaned"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Checkout domain errors.
var (
	ErrEmptyCheckout          = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrMissingShippingAddress = &Error{Code: EINVALID, Message: "Shipping address is required"}
	ErrMissingCustomerEmail   = &Error{Code: EINVALID, Message: "Customer email is required"}
	ErrUnknownPaymentMethod   = &Error{Code: EINVALID, Message: "Unknown payment method"}
	ErrOrderNotFound          = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrPaymentRejected        = &Error{Code: EPAYMENT, Message: "Payment could not be processed. Please try again."}
)

// Address is a shipping or billing address as captured at checkout time.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CheckoutRequest is the immutable snapshot handed to the orchestrator.
// It is built once from the live cart state at submission time; the
// orchestrator never re-reads the cart mid-flow.
type CheckoutRequest struct {
	Lines           []CartLine      `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  Address         `json:"billing_address"`
	SameAsShipping  bool            `json:"same_as_shipping"`
	PaymentMethod   string          `json:"payment_method"`
	UserID          string          `json:"user_id"`
	UserEmail       string          `json:"user_email"`
}

// Validate blocks submission before any external call is made.
func (r CheckoutRequest) Validate() error {
	if len(r.Lines) == 0 {
		return ErrEmptyCheckout
	}
	if r.UserEmail == "" {
		return ErrMissingCustomerEmail
	}
	if r.ShippingAddress.Name == "" || r.ShippingAddress.Line1 == "" {
		return ErrMissingShippingAddress
	}
	if r.PaymentMethod != PaymentMethodRazorpay && r.PaymentMethod != PaymentMethodCOD {
		return ErrUnknownPaymentMethod
	}
	return nil
}

// EffectiveBillingAddress resolves the billing address, falling back to the
// shipping address when the shopper marked them the same.
func (r CheckoutRequest) EffectiveBillingAddress() Address {
	if r.SameAsShipping {
		return r.ShippingAddress
	}
	return r.BillingAddress
}

// CheckoutResult is the single outcome surfaced to the caller. No raw error
// crosses the orchestrator boundary.
type CheckoutResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message"`
}
