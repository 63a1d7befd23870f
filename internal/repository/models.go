package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Order is the terminal order header record. Both payment paths converge to
// this shape; COD orders simply carry null gateway identifiers.
type Order struct {
	ID                pgtype.UUID
	UserID            string
	UserEmail         string
	UserName          string
	ShippingAddress   []byte
	BillingAddress    []byte
	Subtotal          pgtype.Numeric
	Tax               pgtype.Numeric
	ShippingCost      pgtype.Numeric
	TotalAmount       pgtype.Numeric
	PaymentMethod     string
	Status            string
	PaymentStatus     string
	RazorpayOrderID   pgtype.Text
	RazorpayPaymentID pgtype.Text
	CreatedAt         pgtype.Timestamptz
}

// OrderItem is one row per cart line, snapshotting product name, image and
// price at purchase time so later catalog edits cannot rewrite history.
type OrderItem struct {
	ID           pgtype.UUID
	OrderID      pgtype.UUID
	ProductID    string
	ProductName  string
	ProductImage string
	Size         pgtype.Text
	Color        pgtype.Text
	Quantity     int32
	UnitPrice    pgtype.Numeric
	TotalPrice   pgtype.Numeric
}

// Payment links gateway identifiers to an order. Created only for
// gateway-verified payments.
type Payment struct {
	ID                pgtype.UUID
	OrderID           pgtype.UUID
	RazorpayOrderID   string
	RazorpayPaymentID string
	Amount            pgtype.Numeric
	Currency          string
	Status            string
	Gateway           string
	CreatedAt         pgtype.Timestamptz
}

// AdminNotification is the administrative notification row summarizing a new
// order.
type AdminNotification struct {
	ID        pgtype.UUID
	Type      string
	Title     string
	Message   string
	OrderID   pgtype.UUID
	CreatedAt pgtype.Timestamptz
}
