package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{
	"id", "name", "description", "price", "currency", "stock_quantity", "category", "image_url", "active", "created_at", "updated_at",
}

func newTestProduct(t *testing.T) *models.Product {
	t.Helper()

	price, err := models.MoneyFromString("19.99", "USD")
	require.NoError(t, err)

	product, err := models.NewProduct("", "Widget", "A useful widget", price, 10, "Gadgets", "")
	require.NoError(t, err)

	return product
}

func TestProductRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewProductRepo(db)
	ctx := context.Background()
	product := newTestProduct(t)

	insertSQL := regexp.QuoteMeta(`INSERT INTO products`)

	t.Run("Success - CreateProduct", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(insertSQL).
			WithArgs(product.ID, product.Name, product.Description, "19.99", "USD", 10, "Gadgets", "", true,
				product.CreatedAt, product.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		// Act
		err := repo.CreateProduct(ctx, product)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - CreateProduct Duplicate Id", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(insertSQL).WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateProduct(ctx, product)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - GetProductByID", func(t *testing.T) {
		// Arrange
		now := time.Now()
		rows := sqlmock.NewRows(productRowColumns).
			AddRow(product.ID, "Widget", "A useful widget", "19.99", "USD", 10, "Gadgets", "", true, now, now)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
			WithArgs(product.ID).
			WillReturnRows(rows)

		// Act
		found, err := repo.GetProductByID(ctx, product.ID)

		// Assert
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(found.Price))
		assert.Equal(t, models.CategoryName("Gadgets"), found.Category)
		assert.Equal(t, 10, found.StockQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - GetProductByID Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		// Act
		found, err := repo.GetProductByID(ctx, "missing")

		// Assert
		assert.Nil(t, found)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	lockSQL := regexp.QuoteMeta(`FROM products WHERE id = $1 FOR UPDATE`)

	t.Run("Success - UpdateProduct Writes Locked Row", func(t *testing.T) {
		// Arrange
		now := time.Now()
		rows := sqlmock.NewRows(productRowColumns).
			AddRow(product.ID, "Widget", "A useful widget", "19.99", "USD", 2, "Gadgets", "", true, now, now)

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(product.ID).WillReturnRows(rows)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE products`)).
			WithArgs(product.ID, "Widget", "A useful widget", "24.75", "USD", 2, "Gadgets", "", true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		newPrice, err := models.MoneyFromString("24.75", "USD")
		require.NoError(t, err)

		// Act
		updated, err := repo.UpdateProduct(ctx, product.ID, func(p *models.Product) error {
			return p.UpdatePrice(newPrice)
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, updated.StockQuantity)
		assert.True(t, newPrice.Equal(updated.Price))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - UpdateProduct Rejected Change Rolls Back", func(t *testing.T) {
		// Arrange
		now := time.Now()
		rows := sqlmock.NewRows(productRowColumns).
			AddRow(product.ID, "Widget", "A useful widget", "19.99", "USD", 2, "Gadgets", "", true, now, now)

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(product.ID).WillReturnRows(rows)
		mock.ExpectRollback()

		// Act
		updated, err := repo.UpdateProduct(ctx, product.ID, func(p *models.Product) error {
			return p.ReduceStock(5)
		})

		// Assert
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - UpdateProduct Missing Row", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("missing").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		// Act
		_, err := repo.UpdateProduct(ctx, "missing", func(*models.Product) error { return nil })

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - SearchByName", func(t *testing.T) {
		// Arrange
		now := time.Now()
		rows := sqlmock.NewRows(productRowColumns).
			AddRow("p-1", "Blue Widget", "", "5.00", "USD", 1, "Gadgets", "", true, now, now).
			AddRow("p-2", "Red Widget", "", "6.50", "USD", 0, "Gadgets", "", true, now, now)

		mock.ExpectQuery(regexp.QuoteMeta(`name ILIKE '%' || $1 || '%'`)).
			WithArgs("widget").
			WillReturnRows(rows)

		// Act
		products, err := repo.SearchByName(ctx, "widget")

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "6.5", products[1].Price.Amount().String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - SearchByName Matches Wildcards Literally", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`ESCAPE '\'`)).
			WithArgs(`50\% off\_sale\\`).
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		// Act
		products, err := repo.SearchByName(ctx, `50% off_sale\`)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - SearchByCategory", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`LOWER(category) = LOWER($1)`)).
			WithArgs("gadgets").
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		// Act
		products, err := repo.SearchByCategory(ctx, "gadgets")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - ListActiveProducts Query Error", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("db down")
		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE active = TRUE`)).WillReturnError(dbErr)

		// Act
		products, err := repo.ListActiveProducts(ctx)

		// Assert
		assert.Nil(t, products)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Stored Price Is Negative", func(t *testing.T) {
		// Arrange
		now := time.Now()
		rows := sqlmock.NewRows(productRowColumns).
			AddRow("p-1", "Broken", "", "-1.00", "USD", 1, "Gadgets", "", true, now, now)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).WillReturnRows(rows)

		// Act
		_, err := repo.GetProductByID(ctx, "p-1")

		// Assert
		assert.ErrorIs(t, err, models.ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
