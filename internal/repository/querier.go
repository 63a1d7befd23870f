package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// CreateOrderParams contains the full order header snapshot.
type CreateOrderParams struct {
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
}

type CreateOrderItemParams struct {
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

type CreatePaymentParams struct {
	OrderID           pgtype.UUID
	RazorpayOrderID   string
	RazorpayPaymentID string
	Amount            pgtype.Numeric
	Currency          string
	Status            string
	Gateway           string
}

type CreateAdminNotificationParams struct {
	Type    string
	Title   string
	Message string
	OrderID pgtype.UUID
}

type UpdateOrderStatusParams struct {
	ID     pgtype.UUID
	Status string
}

// Querier is the repository surface the checkout orchestrator and read-back
// handlers depend on. The per-checkout write sequence is strictly
// header -> items -> payment -> notification; each step's input depends on
// the prior step's generated identifier.
type Querier interface {
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error)
	CreateAdminNotification(ctx context.Context, arg CreateAdminNotificationParams) (AdminNotification, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) error

	GetOrder(ctx context.Context, id pgtype.UUID) (Order, error)
	GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)
}
