package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/rvasant/kinara/internal/domain"
	"github.com/rvasant/kinara/internal/repository"
	"github.com/shopspring/decimal"
)

// OrderItemView is one snapshotted line of a placed order.
type OrderItemView struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image,omitempty"`
	Size         string          `json:"size,omitempty"`
	Color        string          `json:"color,omitempty"`
	Quantity     int32           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// OrderView is the read-back shape for a single order, items included.
type OrderView struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	UserEmail         string          `json:"user_email"`
	UserName          string          `json:"user_name"`
	ShippingAddress   domain.Address  `json:"shipping_address"`
	BillingAddress    domain.Address  `json:"billing_address"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaymentMethod     string          `json:"payment_method"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"payment_status"`
	RazorpayOrderID   string          `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string          `json:"razorpay_payment_id,omitempty"`
	CreatedAt         string          `json:"created_at,omitempty"`
	Items             []OrderItemView `json:"items"`
}

// OrderService reads back placed orders for the storefront's order history
// and confirmation pages.
type OrderService interface {
	GetOrder(ctx context.Context, id string) (*OrderView, error)
	ListUserOrders(ctx context.Context, userID string) ([]OrderView, error)
}

type orderService struct {
	repo   repository.Querier
	logger *slog.Logger
}

func NewOrderService(repo repository.Querier, logger *slog.Logger) OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &orderService{repo: repo, logger: logger}
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*OrderView, error) {
	uid, err := repository.UUIDFromString(id)
	if err != nil {
		return nil, domain.Invalid("service.GetOrder", "Invalid order id")
	}

	order, err := s.repo.GetOrder(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.WrapError(err, domain.EINTERNAL, "service.GetOrder", "Failed to fetch order details")
	}

	items, err := s.repo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "service.GetOrder", "Failed to fetch order details")
	}

	view := s.toView(order)
	for _, item := range items {
		view.Items = append(view.Items, toItemView(item))
	}
	return &view, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string) ([]OrderView, error) {
	if userID == "" {
		return nil, domain.Invalid("service.ListUserOrders", "user_id is required")
	}

	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "service.ListUserOrders", "Failed to fetch orders")
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view := s.toView(order)
		items, err := s.repo.GetOrderItems(ctx, order.ID)
		if err != nil {
			return nil, domain.WrapError(err, domain.EINTERNAL, "service.ListUserOrders", "Failed to fetch orders")
		}
		for _, item := range items {
			view.Items = append(view.Items, toItemView(item))
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *orderService) toView(order repository.Order) OrderView {
	view := OrderView{
		ID:                repository.UUIDString(order.ID),
		UserID:            order.UserID,
		UserEmail:         order.UserEmail,
		UserName:          order.UserName,
		Subtotal:          repository.DecimalFromNumeric(order.Subtotal),
		Tax:               repository.DecimalFromNumeric(order.Tax),
		ShippingCost:      repository.DecimalFromNumeric(order.ShippingCost),
		TotalAmount:       repository.DecimalFromNumeric(order.TotalAmount),
		PaymentMethod:     order.PaymentMethod,
		Status:            order.Status,
		PaymentStatus:     order.PaymentStatus,
		RazorpayOrderID:   order.RazorpayOrderID.String,
		RazorpayPaymentID: order.RazorpayPaymentID.String,
		Items:             []OrderItemView{},
	}
	if order.CreatedAt.Valid {
		view.CreatedAt = order.CreatedAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
	}

	// Address rows were written by this system; a decode failure means the
	// row was edited out of band, so log and return what parses.
	if err := json.Unmarshal(order.ShippingAddress, &view.ShippingAddress); err != nil {
		s.logger.Warn("undecodable shipping address", "order_id", view.ID, "error", err)
	}
	if err := json.Unmarshal(order.BillingAddress, &view.BillingAddress); err != nil {
		s.logger.Warn("undecodable billing address", "order_id", view.ID, "error", err)
	}
	return view
}

func toItemView(item repository.OrderItem) OrderItemView {
	return OrderItemView{
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductImage: item.ProductImage,
		Size:         item.Size.String,
		Color:        item.Color.String,
		Quantity:     item.Quantity,
		UnitPrice:    repository.DecimalFromNumeric(item.UnitPrice),
		TotalPrice:   repository.DecimalFromNumeric(item.TotalPrice),
	}
}
