package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	ret := m.Called(ctx, userID)

	cart, _ := ret.Get(0).(*models.Cart)

	return cart, ret.Error(1)
}

func (m *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	ret := m.Called(ctx, cart)

	return ret.Error(0)
}
