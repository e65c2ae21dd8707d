package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/utils"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

const categoryColumns = `id, name, description, image_url, active, created_at, updated_at`

func scanCategory(row interface{ Scan(dest ...any) error }) (*models.Category, error) {
	category := &models.Category{}

	err := row.Scan(&category.ID, &category.Name, &category.Description, &category.ImageURL,
		&category.Active, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (id, name, description, image_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(dbCtx, query, category.ID, category.Name, category.Description,
		category.ImageURL, category.Active, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %s: %w", category.Name, ErrDuplicateEntry)
		}

		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category, err := scanCategory(r.DB.QueryRowContext(dbCtx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}

	return category, nil
}

// GetCategoryByName matches case-insensitively.
func (r *categoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category, err := scanCategory(r.DB.QueryRowContext(dbCtx,
		`SELECT `+categoryColumns+` FROM categories WHERE LOWER(name) = LOWER($1)`, name))
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", name, err)
	}

	return category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}

	query += ` ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $2, description = $3, image_url = $4, active = $5, updated_at = $6
		WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, category.ID, category.Name, category.Description,
		category.ImageURL, category.Active, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %s: %w", category.Name, ErrDuplicateEntry)
		}

		return fmt.Errorf("failed to update category: %w", err)
	}

	return expectAffected(result)
}
