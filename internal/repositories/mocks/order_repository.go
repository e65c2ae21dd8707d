package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	ret := m.Called(ctx, order)

	return ret.Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	ret := m.Called(ctx, id)

	order, _ := ret.Get(0).(*models.Order)

	return order, ret.Error(1)
}

func (m *OrderRepository) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*models.Order, error) {
	ret := m.Called(ctx, buyerID)

	orders, _ := ret.Get(0).([]*models.Order)

	return orders, ret.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	ret := m.Called(ctx, id, next)

	order, _ := ret.Get(0).(*models.Order)
	previous, _ := ret.Get(1).(models.OrderStatus)

	return order, previous, ret.Error(2)
}
