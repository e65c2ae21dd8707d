package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	ret := m.Called(ctx, product)

	return ret.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	ret := m.Called(ctx, id)

	product, _ := ret.Get(0).(*models.Product)

	return product, ret.Error(1)
}

// UpdateProduct applies change to the stored row the expectation returns, the way the locked read does.
func (m *ProductRepository) UpdateProduct(ctx context.Context, id string, change func(*models.Product) error) (*models.Product, error) {
	ret := m.Called(ctx, id, change)

	stored, _ := ret.Get(0).(*models.Product)
	if err := ret.Error(1); err != nil || stored == nil {
		return stored, err
	}

	if err := change(stored); err != nil {
		return nil, err
	}

	return stored, nil
}

func (m *ProductRepository) ListActiveProducts(ctx context.Context) ([]*models.Product, error) {
	return m.list(m.Called(ctx))
}

func (m *ProductRepository) SearchByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	return m.list(m.Called(ctx, category))
}

func (m *ProductRepository) SearchByName(ctx context.Context, name string) ([]*models.Product, error) {
	return m.list(m.Called(ctx, name))
}

func (m *ProductRepository) list(ret mock.Arguments) ([]*models.Product, error) {
	products, _ := ret.Get(0).([]*models.Product)

	return products, ret.Error(1)
}
