package repository_test

import (
	"context"
	"database/sql"
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

var categoryRowColumns = []string{"id", "name", "description", "image_url", "active", "created_at", "updated_at"}

func TestCategoryRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewCategoryRepo(db)
	ctx := context.Background()

	category, err := models.NewCategory("Books", "Paper and ink", "")
	require.NoError(t, err)

	t.Run("Success - CreateCategory", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO categories`)).
			WithArgs(category.ID, "Books", "Paper and ink", "", true, category.CreatedAt, category.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		// Act
		err := repo.CreateCategory(ctx, category)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - CreateCategory Duplicate Name", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO categories`)).WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateCategory(ctx, category)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - GetCategoryByName Case Insensitive", func(t *testing.T) {
		// Arrange
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(name) = LOWER($1)`)).
			WithArgs("books").
			WillReturnRows(sqlmock.NewRows(categoryRowColumns).AddRow(category.ID, "Books", "", "", true, now, now))

		// Act
		found, err := repo.GetCategoryByName(ctx, "books")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Books", found.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - GetCategoryByID Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE id = $1`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.GetCategoryByID(ctx, "missing")

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - ListCategories Active Only", func(t *testing.T) {
		// Arrange
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE active = TRUE ORDER BY name`)).
			WillReturnRows(sqlmock.NewRows(categoryRowColumns).
				AddRow("c-1", "Books", "", "", true, now, now).
				AddRow("c-2", "Games", "", "", true, now, now))

		// Act
		categories, err := repo.ListCategories(ctx, true)

		// Assert
		require.NoError(t, err)
		assert.Len(t, categories, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - UpdateCategory Soft Delete", func(t *testing.T) {
		// Arrange
		category.Deactivate()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE categories SET`)).
			WithArgs(category.ID, category.Name, category.Description, category.ImageURL, false, category.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateCategory(ctx, category)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - UpdateCategory Missing Row", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE categories SET`)).WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateCategory(ctx, category)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
