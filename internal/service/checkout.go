package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rvasant/kinara/internal/domain"
	"github.com/rvasant/kinara/internal/gateway"
	"github.com/rvasant/kinara/internal/notify"
	"github.com/rvasant/kinara/internal/repository"
	"github.com/shopspring/decimal"
)

// User-facing outcome messages. These are part of the storefront contract
// and are surfaced verbatim by the API.
const (
	msgCODPlaced        = "Order placed successfully! You can pay when the order is delivered."
	msgOrderConfirmed   = "Order confirmed successfully!"
	msgPaymentFailed    = "Failed to process payment. Please try again."
	msgVerifyFailed     = "Payment verification failed"
	msgPaymentCancelled = "Payment cancelled by user"
	msgPersistFailed    = "Failed to create order. Please contact support."
)

// PendingPayment is returned when a gateway checkout suspends waiting for
// the shopper to complete payment in the gateway's own UI. The client opens
// the gateway widget against GatewayOrderID and resumes the attempt through
// ConfirmPayment or CancelPayment.
type PendingPayment struct {
	GatewayOrderID string `json:"gateway_order_id"`
	AmountPaise    int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// SubmitOutcome is the result of a checkout submission. Pending non-nil
// means the attempt suspended on the gateway branch and is awaiting user
// payment; otherwise Result is terminal.
type SubmitOutcome struct {
	Result  domain.CheckoutResult
	Pending *PendingPayment
}

// CheckoutService drives a checkout attempt end to end. Cash-on-delivery
// attempts complete within Submit; gateway attempts suspend after the remote
// payment order is created and resume via ConfirmPayment or CancelPayment.
type CheckoutService interface {
	// Submit validates the request and runs the branch selected by its
	// payment method. A non-nil error is returned only for validation
	// failures; every downstream failure is reduced into the outcome.
	Submit(ctx context.Context, req domain.CheckoutRequest) (*SubmitOutcome, error)

	// ConfirmPayment resumes a suspended gateway attempt after the shopper
	// paid. The signature is verified before anything is persisted; a
	// mismatch produces a failed result and no order.
	ConfirmPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) domain.CheckoutResult

	// CancelPayment resolves a suspended gateway attempt as failed after
	// the shopper dismissed the gateway UI. No order is persisted.
	CancelPayment(gatewayOrderID string) domain.CheckoutResult
}

// checkoutService implements CheckoutService.
type checkoutService struct {
	repo     repository.Querier
	provider gateway.Provider
	notifier notify.Notifier
	keyID    string
	secret   string
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]domain.CheckoutRequest
}

// NewCheckoutService creates a new CheckoutService instance. notifier may be
// nil when no out-of-band sink is configured.
func NewCheckoutService(
	repo repository.Querier,
	provider gateway.Provider,
	notifier notify.Notifier,
	keyID, secret string,
	logger *slog.Logger,
) CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &checkoutService{
		repo:     repo,
		provider: provider,
		notifier: notifier,
		keyID:    keyID,
		secret:   secret,
		logger:   logger,
		pending:  make(map[string]domain.CheckoutRequest),
	}
}

// paymentInfo carries the converged payment fields both branches write into
// the order header.
type paymentInfo struct {
	method            string
	paymentStatus     string
	razorpayOrderID   string
	razorpayPaymentID string
}

func (s *checkoutService) Submit(ctx context.Context, req domain.CheckoutRequest) (*SubmitOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.PaymentMethod == domain.PaymentMethodCOD {
		result := s.persistOrder(ctx, req, paymentInfo{
			method:        domain.PaymentMethodCOD,
			paymentStatus: domain.PaymentStatusPending,
		})
		return &SubmitOutcome{Result: result}, nil
	}

	// Gateway branch. Create the remote payment order, then suspend until
	// the gateway callback or dismissal resolves the attempt.
	order, err := s.provider.CreatePaymentOrder(ctx, gateway.CreatePaymentOrderParams{
		AmountPaise: req.Total.Shift(2).IntPart(),
		Currency:    "INR",
		Receipt:     fmt.Sprintf("rcpt_%d", time.Now().Unix()),
	})
	if err != nil {
		s.logger.Error("gateway order creation failed", "error", err)
		return &SubmitOutcome{Result: domain.CheckoutResult{
			Success: false,
			Message: msgPaymentFailed,
		}}, nil
	}

	s.mu.Lock()
	s.pending[order.GatewayOrderID] = req
	s.mu.Unlock()

	s.logger.Info("gateway order created, awaiting payment",
		"gateway_order_id", order.GatewayOrderID,
		"amount_paise", order.AmountPaise,
	)

	return &SubmitOutcome{Pending: &PendingPayment{
		GatewayOrderID: order.GatewayOrderID,
		AmountPaise:    order.AmountPaise,
		Currency:       order.Currency,
		KeyID:          s.keyID,
	}}, nil
}

func (s *checkoutService) ConfirmPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) domain.CheckoutResult {
	req, ok := s.takePending(gatewayOrderID)
	if !ok {
		s.logger.Warn("payment confirmation for unknown attempt", "gateway_order_id", gatewayOrderID)
		return domain.CheckoutResult{Success: false, Message: msgVerifyFailed}
	}

	if !gateway.VerifySignature(gatewayOrderID, paymentID, signature, s.secret) {
		s.logger.Warn("payment signature mismatch", "gateway_order_id", gatewayOrderID)
		return domain.CheckoutResult{Success: false, Message: msgVerifyFailed}
	}

	return s.persistOrder(ctx, req, paymentInfo{
		method:            domain.PaymentMethodRazorpay,
		paymentStatus:     domain.PaymentStatusCompleted,
		razorpayOrderID:   gatewayOrderID,
		razorpayPaymentID: paymentID,
	})
}

func (s *checkoutService) CancelPayment(gatewayOrderID string) domain.CheckoutResult {
	if _, ok := s.takePending(gatewayOrderID); ok {
		s.logger.Info("payment cancelled by user", "gateway_order_id", gatewayOrderID)
	}
	return domain.CheckoutResult{Success: false, Message: msgPaymentCancelled}
}

func (s *checkoutService) takePending(gatewayOrderID string) (domain.CheckoutRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.pending[gatewayOrderID]
	if ok {
		delete(s.pending, gatewayOrderID)
	}
	return req, ok
}

// persistOrder runs the write sequence shared by both branches: order header,
// line items, payment record when gateway-paid, admin notification. The
// notification step is best effort; everything before it is load bearing.
func (s *checkoutService) persistOrder(ctx context.Context, req domain.CheckoutRequest, pay paymentInfo) domain.CheckoutResult {
	shippingJSON, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return s.persistFailure("marshal shipping address", err)
	}
	billingJSON, err := json.Marshal(req.EffectiveBillingAddress())
	if err != nil {
		return s.persistFailure("marshal billing address", err)
	}

	order, err := s.repo.CreateOrder(ctx, repository.CreateOrderParams{
		UserID:            req.UserID,
		UserEmail:         req.UserEmail,
		UserName:          req.ShippingAddress.Name,
		ShippingAddress:   shippingJSON,
		BillingAddress:    billingJSON,
		Subtotal:          repository.NumericFromDecimal(req.Subtotal),
		Tax:               repository.NumericFromDecimal(req.Tax),
		ShippingCost:      repository.NumericFromDecimal(req.Shipping),
		TotalAmount:       repository.NumericFromDecimal(req.Total),
		PaymentMethod:     pay.method,
		Status:            domain.OrderStatusConfirmed,
		PaymentStatus:     pay.paymentStatus,
		RazorpayOrderID:   repository.TextOrNull(pay.razorpayOrderID),
		RazorpayPaymentID: repository.TextOrNull(pay.razorpayPaymentID),
	})
	if err != nil {
		return s.persistFailure("create order header", err)
	}

	orderID := repository.UUIDString(order.ID)

	for _, line := range req.Lines {
		_, err := s.repo.CreateOrderItem(ctx, repository.CreateOrderItemParams{
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			ProductImage: line.ImageURL,
			Size:         repository.TextOrNull(line.Size),
			Color:        repository.TextOrNull(line.Color),
			Quantity:     int32(line.Quantity),
			UnitPrice:    repository.NumericFromDecimal(line.UnitPrice),
			TotalPrice:   repository.NumericFromDecimal(line.Subtotal()),
		})
		if err != nil {
			// The header already exists and is not deleted. Mark it so
			// the inconsistency is visible instead of silent.
			s.markOrphaned(ctx, order)
			return s.persistFailure("create order item", err)
		}
	}

	if pay.method == domain.PaymentMethodRazorpay && pay.razorpayPaymentID != "" {
		_, err := s.repo.CreatePayment(ctx, repository.CreatePaymentParams{
			OrderID:           order.ID,
			RazorpayOrderID:   pay.razorpayOrderID,
			RazorpayPaymentID: pay.razorpayPaymentID,
			Amount:            repository.NumericFromDecimal(req.Total),
			Currency:          "INR",
			Status:            domain.PaymentStatusCompleted,
			Gateway:           "razorpay",
		})
		if err != nil {
			return s.persistFailure("create payment record", err)
		}
	}

	s.notifyAdmin(ctx, order, req.Total)

	message := msgOrderConfirmed
	if pay.method == domain.PaymentMethodCOD {
		message = msgCODPlaced
	}

	s.logger.Info("checkout completed",
		"order_id", orderID,
		"payment_method", pay.method,
		"total", req.Total.StringFixed(2),
	)

	return domain.CheckoutResult{
		Success: true,
		OrderID: orderID,
		Message: message,
	}
}

func (s *checkoutService) persistFailure(step string, err error) domain.CheckoutResult {
	s.logger.Error("checkout persistence failed", "step", step, "error", err)
	return domain.CheckoutResult{Success: false, Message: msgPersistFailed}
}

// markOrphaned flags an order header whose line items could not be written.
// Best effort: if the update itself fails the header stays confirmed and the
// failure is only logged.
func (s *checkoutService) markOrphaned(ctx context.Context, order repository.Order) {
	err := s.repo.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:     order.ID,
		Status: domain.OrderStatusOrphaned,
	})
	if err != nil {
		s.logger.Error("failed to mark orphaned order",
			"order_id", repository.UUIDString(order.ID),
			"error", err,
		)
	}
}

// notifyAdmin records the admin notification row and fans out to any
// configured sinks. Failures never change the checkout outcome.
func (s *checkoutService) notifyAdmin(ctx context.Context, order repository.Order, total decimal.Decimal) {
	orderID := repository.UUIDString(order.ID)

	_, err := s.repo.CreateAdminNotification(ctx, repository.CreateAdminNotificationParams{
		Type:    "new_order",
		Title:   "New Order Received",
		Message: fmt.Sprintf("New order #%s for ₹%s from %s", shortOrderID(orderID), total.StringFixed(2), order.UserEmail),
		OrderID: order.ID,
	})
	if err != nil {
		s.logger.Error("admin notification failed", "order_id", orderID, "error", err)
	}

	if s.notifier == nil {
		return
	}
	err = s.notifier.NotifyOrderCreated(ctx, notify.OrderCreated{
		OrderID:       orderID,
		UserEmail:     order.UserEmail,
		TotalAmount:   total,
		PaymentMethod: order.PaymentMethod,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("order notification failed", "order_id", orderID, "error", err)
	}
}

func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
