package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) cart(ret mock.Arguments) (*models.CartResponse, error) {
	cart, _ := ret.Get(0).(*models.CartResponse)

	return cart, ret.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, userID string) (*models.CartResponse, error) {
	return m.cart(m.Called(ctx, userID))
}

func (m *CartService) AddToCart(ctx context.Context, userID string, req *models.AddToCartRequest) (*models.CartResponse, error) {
	return m.cart(m.Called(ctx, userID, req))
}

func (m *CartService) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartResponse, error) {
	return m.cart(m.Called(ctx, userID, productID, quantity))
}

func (m *CartService) RemoveFromCart(ctx context.Context, userID, productID string) (*models.CartResponse, error) {
	return m.cart(m.Called(ctx, userID, productID))
}

func (m *CartService) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
