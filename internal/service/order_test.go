package service

import (
	"context"
	"testing"

	"github.com/rvasant/kinara/internal/domain"
	"github.com/rvasant/kinara/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrder(t *testing.T) {
	repo := &mockQuerier{}
	checkout := newTestService(repo, gateway.NewMockProvider())
	orders := NewOrderService(repo, nil)

	outcome, err := checkout.Submit(context.Background(), newCheckoutRequest(domain.PaymentMethodCOD))
	require.NoError(t, err)
	require.True(t, outcome.Result.Success)

	view, err := orders.GetOrder(context.Background(), outcome.Result.OrderID)
	require.NoError(t, err)

	assert.Equal(t, outcome.Result.OrderID, view.ID)
	assert.Equal(t, "asha@example.com", view.UserEmail)
	assert.Equal(t, "cod", view.PaymentMethod)
	assert.Equal(t, "pending", view.PaymentStatus)
	assert.Equal(t, "500.00", view.TotalAmount.StringFixed(2))
	assert.Equal(t, "Asha Rao", view.ShippingAddress.Name)
	assert.Equal(t, "Mumbai", view.ShippingAddress.City)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "prod-1", view.Items[0].ProductID)
	assert.Equal(t, int32(2), view.Items[0].Quantity)
	assert.Equal(t, "250.00", view.Items[0].UnitPrice.StringFixed(2))
}

func TestGetOrderNotFound(t *testing.T) {
	orders := NewOrderService(&mockQuerier{}, nil)

	_, err := orders.GetOrder(context.Background(), "0b8f7f3e-4f1a-4a8e-9a6c-1c2d3e4f5a6b")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestGetOrderInvalidID(t *testing.T) {
	orders := NewOrderService(&mockQuerier{}, nil)

	_, err := orders.GetOrder(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestListUserOrders(t *testing.T) {
	repo := &mockQuerier{}
	checkout := newTestService(repo, gateway.NewMockProvider())
	orders := NewOrderService(repo, nil)

	for i := 0; i < 2; i++ {
		outcome, err := checkout.Submit(context.Background(), newCheckoutRequest(domain.PaymentMethodCOD))
		require.NoError(t, err)
		require.True(t, outcome.Result.Success)
	}

	views, err := orders.ListUserOrders(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, views, 2)

	none, err := orders.ListUserOrders(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = orders.ListUserOrders(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
