package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) product(ret mock.Arguments) (*models.Product, error) {
	product, _ := ret.Get(0).(*models.Product)

	return product, ret.Error(1)
}

func (m *ProductService) products(ret mock.Arguments) ([]*models.Product, error) {
	products, _ := ret.Get(0).([]*models.Product)

	return products, ret.Error(1)
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	return m.product(m.Called(ctx, req))
}

func (m *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *ProductService) ListActiveProducts(ctx context.Context) ([]*models.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *ProductService) SearchProducts(ctx context.Context, name, category string) ([]*models.Product, error) {
	return m.products(m.Called(ctx, name, category))
}

func (m *ProductService) UpdatePrice(ctx context.Context, id string, req *models.UpdatePriceRequest) (*models.Product, error) {
	return m.product(m.Called(ctx, id, req))
}

func (m *ProductService) UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error) {
	return m.product(m.Called(ctx, id, stock))
}

func (m *ProductService) ReduceStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	return m.product(m.Called(ctx, id, quantity))
}

func (m *ProductService) SetActive(ctx context.Context, id string, active bool) (*models.Product, error) {
	return m.product(m.Called(ctx, id, active))
}

type CategoryService struct {
	mock.Mock
}

func (m *CategoryService) category(ret mock.Arguments) (*models.Category, error) {
	category, _ := ret.Get(0).(*models.Category)

	return category, ret.Error(1)
}

func (m *CategoryService) categories(ret mock.Arguments) ([]*models.Category, error) {
	categories, _ := ret.Get(0).([]*models.Category)

	return categories, ret.Error(1)
}

func (m *CategoryService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	return m.category(m.Called(ctx, req))
}

func (m *CategoryService) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	return m.categories(m.Called(ctx))
}

func (m *CategoryService) GetActiveCategories(ctx context.Context) ([]*models.Category, error) {
	return m.categories(m.Called(ctx))
}

func (m *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	return m.category(m.Called(ctx, id))
}

func (m *CategoryService) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return m.category(m.Called(ctx, name))
}

func (m *CategoryService) UpdateCategory(ctx context.Context, id string, req *models.CategoryRequest) (*models.Category, error) {
	return m.category(m.Called(ctx, id, req))
}

func (m *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryService) ActivateCategory(ctx context.Context, id string) (*models.Category, error) {
	return m.category(m.Called(ctx, id))
}
