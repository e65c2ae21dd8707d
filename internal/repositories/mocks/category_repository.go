package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	ret := m.Called(ctx, category)

	return ret.Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	ret := m.Called(ctx, id)

	category, _ := ret.Get(0).(*models.Category)

	return category, ret.Error(1)
}

func (m *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	ret := m.Called(ctx, name)

	category, _ := ret.Get(0).(*models.Category)

	return category, ret.Error(1)
}

func (m *CategoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	ret := m.Called(ctx, activeOnly)

	categories, _ := ret.Get(0).([]*models.Category)

	return categories, ret.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	ret := m.Called(ctx, category)

	return ret.Error(0)
}
