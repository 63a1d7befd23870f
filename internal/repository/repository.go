package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries implements Querier over a pgx connection source.
type Queries struct {
	db DBTX
}

var _ Querier = (*Queries)(nil)

// New creates a repository bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const createOrder = `
INSERT INTO orders (
	user_id, user_email, user_name, shipping_address, billing_address,
	subtotal, tax, shipping_cost, total_amount,
	payment_method, status, payment_status, razorpay_order_id, razorpay_payment_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, user_id, user_email, user_name, shipping_address, billing_address,
	subtotal, tax, shipping_cost, total_amount,
	payment_method, status, payment_status, razorpay_order_id, razorpay_payment_id, created_at
`

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.UserID, arg.UserEmail, arg.UserName, arg.ShippingAddress, arg.BillingAddress,
		arg.Subtotal, arg.Tax, arg.ShippingCost, arg.TotalAmount,
		arg.PaymentMethod, arg.Status, arg.PaymentStatus, arg.RazorpayOrderID, arg.RazorpayPaymentID,
	)
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.UserEmail, &o.UserName, &o.ShippingAddress, &o.BillingAddress,
		&o.Subtotal, &o.Tax, &o.ShippingCost, &o.TotalAmount,
		&o.PaymentMethod, &o.Status, &o.PaymentStatus, &o.RazorpayOrderID, &o.RazorpayPaymentID, &o.CreatedAt,
	)
	if err != nil {
		return Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	return o, nil
}

const createOrderItem = `
INSERT INTO order_items (
	order_id, product_id, product_name, product_image, size, color,
	quantity, unit_price, total_price
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, order_id, product_id, product_name, product_image, size, color,
	quantity, unit_price, total_price
`

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID, arg.ProductID, arg.ProductName, arg.ProductImage, arg.Size, arg.Color,
		arg.Quantity, arg.UnitPrice, arg.TotalPrice,
	)
	var i OrderItem
	err := row.Scan(
		&i.ID, &i.OrderID, &i.ProductID, &i.ProductName, &i.ProductImage, &i.Size, &i.Color,
		&i.Quantity, &i.UnitPrice, &i.TotalPrice,
	)
	if err != nil {
		return OrderItem{}, fmt.Errorf("failed to insert order item: %w", err)
	}
	return i, nil
}

const createPayment = `
INSERT INTO payments (
	order_id, razorpay_order_id, razorpay_payment_id, amount, currency, status, gateway
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, order_id, razorpay_order_id, razorpay_payment_id, amount, currency, status, gateway, created_at
`

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	row := q.db.QueryRow(ctx, createPayment,
		arg.OrderID, arg.RazorpayOrderID, arg.RazorpayPaymentID, arg.Amount, arg.Currency, arg.Status, arg.Gateway,
	)
	var p Payment
	err := row.Scan(
		&p.ID, &p.OrderID, &p.RazorpayOrderID, &p.RazorpayPaymentID, &p.Amount, &p.Currency, &p.Status, &p.Gateway, &p.CreatedAt,
	)
	if err != nil {
		return Payment{}, fmt.Errorf("failed to insert payment: %w", err)
	}
	return p, nil
}

const createAdminNotification = `
INSERT INTO admin_notifications (type, title, message, order_id)
VALUES ($1, $2, $3, $4)
RETURNING id, type, title, message, order_id, created_at
`

func (q *Queries) CreateAdminNotification(ctx context.Context, arg CreateAdminNotificationParams) (AdminNotification, error) {
	row := q.db.QueryRow(ctx, createAdminNotification, arg.Type, arg.Title, arg.Message, arg.OrderID)
	var n AdminNotification
	err := row.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.OrderID, &n.CreatedAt)
	if err != nil {
		return AdminNotification{}, fmt.Errorf("failed to insert admin notification: %w", err)
	}
	return n, nil
}

const updateOrderStatus = `
UPDATE orders SET status = $2 WHERE id = $1
`

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) error {
	if _, err := q.db.Exec(ctx, updateOrderStatus, arg.ID, arg.Status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

const getOrder = `
SELECT id, user_id, user_email, user_name, shipping_address, billing_address,
	subtotal, tax, shipping_cost, total_amount,
	payment_method, status, payment_status, razorpay_order_id, razorpay_payment_id, created_at
FROM orders WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id pgtype.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, getOrder, id)
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.UserEmail, &o.UserName, &o.ShippingAddress, &o.BillingAddress,
		&o.Subtotal, &o.Tax, &o.ShippingCost, &o.TotalAmount,
		&o.PaymentMethod, &o.Status, &o.PaymentStatus, &o.RazorpayOrderID, &o.RazorpayPaymentID, &o.CreatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

const getOrderItems = `
SELECT id, order_id, product_id, product_name, product_image, size, color,
	quantity, unit_price, total_price
FROM order_items WHERE order_id = $1
ORDER BY id
`

func (q *Queries) GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, getOrderItems, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID, &i.OrderID, &i.ProductID, &i.ProductName, &i.ProductImage, &i.Size, &i.Color,
			&i.Quantity, &i.UnitPrice, &i.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listOrdersByUser = `
SELECT id, user_id, user_email, user_name, shipping_address, billing_address,
	subtotal, tax, shipping_cost, total_amount,
	payment_method, status, payment_status, razorpay_order_id, razorpay_payment_id, created_at
FROM orders WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.UserEmail, &o.UserName, &o.ShippingAddress, &o.BillingAddress,
			&o.Subtotal, &o.Tax, &o.ShippingCost, &o.TotalAmount,
			&o.PaymentMethod, &o.Status, &o.PaymentStatus, &o.RazorpayOrderID, &o.RazorpayPaymentID, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
