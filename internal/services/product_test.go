package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	appErrors "github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/repositories/mocks"
	service "github.com/knah1d/shopease/internal/services"
	serviceMocks "github.com/knah1d/shopease/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	repo       *mocks.ProductRepository
	categories *mocks.CategoryRepository
	cache      *serviceMocks.Cache
	service    service.ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		repo:       new(mocks.ProductRepository),
		categories: new(mocks.CategoryRepository),
		cache:      new(serviceMocks.Cache),
	}
	f.service = service.NewProductService(f.repo, f.categories, f.cache, 10*time.Minute, "USD")

	return f
}

func intPtr(i int) *int { return &i }

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	category := &models.Category{ID: "c-1", Name: "Gadgets", Active: true}

	t.Run("Success - Create Product", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		req := &models.CreateProductRequest{
			Name:          "Widget",
			Description:   "<b>Nice</b> widget",
			Price:         9.99,
			StockQuantity: intPtr(10),
			Category:      "gadgets",
		}

		f.categories.On("GetCategoryByName", mock.Anything, "gadgets").Return(category, nil).Once()
		f.repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Widget" && p.Active && p.Category == "Gadgets"
		})).Return(nil).Once()

		// Act
		product, err := f.service.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Nice widget", product.Description)
		assert.Equal(t, "9.99 USD", product.Price.String())
		assert.Equal(t, 10, product.StockQuantity)
		f.repo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.categories.On("GetCategoryByName", mock.Anything, "Toys").Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := f.service.CreateProduct(ctx, &models.CreateProductRequest{
			Name: "Kite", Price: 5, StockQuantity: intPtr(1), Category: "Toys",
		})

		// Assert
		assertAppError(t, err, appErrors.ErrCodeValidation)
		f.repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Inactive Category", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.categories.On("GetCategoryByName", mock.Anything, "Old").
			Return(&models.Category{ID: "c-2", Name: "Old", Active: false}, nil).Once()

		// Act
		_, err := f.service.CreateProduct(ctx, &models.CreateProductRequest{
			Name: "Relic", Price: 5, StockQuantity: intPtr(1), Category: "Old",
		})

		// Assert
		assertAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.categories.On("GetCategoryByName", mock.Anything, "Gadgets").Return(category, nil).Once()
		f.repo.On("CreateProduct", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		// Act
		_, err := f.service.CreateProduct(ctx, &models.CreateProductRequest{
			Name: "Widget", Price: 1, StockQuantity: intPtr(1), Category: "Gadgets",
		})

		// Assert
		appErr := assertAppError(t, err, appErrors.ErrCodeDatabaseError)
		assert.Contains(t, appErr.Message, "Failed to create product")
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	key := "shopease:product:p-1"

	t.Run("Success - Cache Hit Skips Database", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		cached := newTestProduct(t, "p-1", "9.99", 3)

		f.cache.On("Get", mock.Anything, key, mock.AnythingOfType("*models.Product")).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*models.Product) = *cached
			}).Return(true, nil).Once()

		// Act
		product, err := f.service.GetProduct(ctx, "p-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, cached.Name, product.Name)
		f.repo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Cache Miss Loads And Stores", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		stored := newTestProduct(t, "p-1", "9.99", 3)

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		f.repo.On("GetProductByID", mock.Anything, "p-1").Return(stored, nil).Once()
		f.cache.On("Set", mock.Anything, key, stored, 10*time.Minute).Return(nil).Once()

		// Act
		product, err := f.service.GetProduct(ctx, "p-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stored, product)
		f.cache.AssertExpectations(t)
		f.repo.AssertExpectations(t)
	})

	t.Run("Success - Cache Outage Falls Back To Database", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		stored := newTestProduct(t, "p-1", "9.99", 3)

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, errors.New("redis down")).Once()
		f.repo.On("GetProductByID", mock.Anything, "p-1").Return(stored, nil).Once()
		f.cache.On("Set", mock.Anything, key, stored, mock.Anything).Return(errors.New("redis down")).Once()

		// Act
		product, err := f.service.GetProduct(ctx, "p-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stored, product)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
		f.repo.On("GetProductByID", mock.Anything, "p-404").Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := f.service.GetProduct(ctx, "p-404")

		// Assert
		assertAppError(t, err, appErrors.ErrCodeNotFound)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductMutations(t *testing.T) {
	ctx := context.Background()
	keys := []string{"shopease:product:p-1"}

	t.Run("Success - Update Price Evicts Cache", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		product := newTestProduct(t, "p-1", "9.99", 3)

		f.repo.On("UpdateProduct", mock.Anything, "p-1", mock.Anything).Return(product, nil).Once()
		f.cache.On("Delete", mock.Anything, keys).Return(nil).Once()

		// Act
		updated, err := f.service.UpdatePrice(ctx, "p-1", &models.UpdatePriceRequest{Price: 12.5})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "12.50 USD", updated.Price.String())
		f.cache.AssertExpectations(t)
	})

	t.Run("Success - Update Price Keeps Reserved Stock", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		locked := newTestProduct(t, "p-1", "9.99", 2)

		f.repo.On("UpdateProduct", mock.Anything, "p-1", mock.Anything).Return(locked, nil).Once()
		f.cache.On("Delete", mock.Anything, keys).Return(nil).Once()

		// Act
		updated, err := f.service.UpdatePrice(ctx, "p-1", &models.UpdatePriceRequest{Price: 12.5})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, updated.StockQuantity)
		assert.Equal(t, "12.50 USD", updated.Price.String())
		f.repo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Deactivate", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		product := newTestProduct(t, "p-1", "9.99", 3)

		f.repo.On("UpdateProduct", mock.Anything, "p-1", mock.Anything).Return(product, nil).Once()
		f.cache.On("Delete", mock.Anything, keys).Return(nil).Once()

		// Act
		updated, err := f.service.SetActive(ctx, "p-1", false)

		// Assert
		require.NoError(t, err)
		assert.False(t, updated.Active)
		assert.Equal(t, 3, updated.StockQuantity)
	})

	t.Run("Success - Reduce Stock", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		product := newTestProduct(t, "p-1", "9.99", 5)

		f.repo.On("UpdateProduct", mock.Anything, "p-1", mock.Anything).Return(product, nil).Once()
		f.cache.On("Delete", mock.Anything, keys).Return(nil).Once()

		// Act
		updated, err := f.service.ReduceStock(ctx, "p-1", 2)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, updated.StockQuantity)
	})

	t.Run("Failure - Reduce Stock Beyond Available", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		product := newTestProduct(t, "p-1", "9.99", 2)

		f.repo.On("UpdateProduct", mock.Anything, "p-1", mock.Anything).Return(product, nil).Once()

		// Act
		_, err := f.service.ReduceStock(ctx, "p-1", 5)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeValidation)
		assert.Equal(t, 2, product.StockQuantity)
		f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Negative Stock", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		product := newTestProduct(t, "p-1", "9.99", 2)

		f.repo.On("UpdateProduct", mock.Anything, "p-1", mock.Anything).Return(product, nil).Once()

		// Act
		_, err := f.service.UpdateStock(ctx, "p-1", -1)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.repo.On("UpdateProduct", mock.Anything, "p-404", mock.Anything).Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := f.service.UpdateStock(ctx, "p-404", 1)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	found := []*models.Product{{ID: "p-1"}}

	t.Run("Success - Category Takes Precedence", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.repo.On("SearchByCategory", mock.Anything, "Gadgets").Return(found, nil).Once()

		// Act
		got, err := f.service.SearchProducts(ctx, "widget", " Gadgets ")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, found, got)
		f.repo.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything)
	})

	t.Run("Success - Name Search", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.repo.On("SearchByName", mock.Anything, "widget").Return(found, nil).Once()

		// Act
		got, err := f.service.SearchProducts(ctx, "widget", "")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, found, got)
	})

	t.Run("Success - No Filters Lists Active", func(t *testing.T) {
		// Arrange
		f := newProductFixture()
		f.repo.On("ListActiveProducts", mock.Anything).Return(found, nil).Once()

		// Act
		got, err := f.service.SearchProducts(ctx, "", "")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, found, got)
	})
}
