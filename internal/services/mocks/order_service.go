package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) order(ret mock.Arguments) (*models.OrderResponse, error) {
	order, _ := ret.Get(0).(*models.OrderResponse)

	return order, ret.Error(1)
}

func (m *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	ret := m.Called(ctx, req)

	order, _ := ret.Get(0).(*models.Order)

	return order, ret.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, id string) (*models.OrderResponse, error) {
	return m.order(m.Called(ctx, id))
}

func (m *OrderService) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*models.OrderResponse, error) {
	ret := m.Called(ctx, buyerID)

	orders, _ := ret.Get(0).([]*models.OrderResponse)

	return orders, ret.Error(1)
}

func (m *OrderService) UpdateOrderStatus(ctx context.Context, id string, status string) (*models.OrderResponse, error) {
	return m.order(m.Called(ctx, id, status))
}

func (m *OrderService) CancelOrder(ctx context.Context, id string, requester *models.Claims) (*models.OrderResponse, error) {
	return m.order(m.Called(ctx, id, requester))
}
