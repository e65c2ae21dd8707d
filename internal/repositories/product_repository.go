package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	// UpdateProduct locks the row, lets change edit it and writes the result back in one transaction.
	UpdateProduct(ctx context.Context, id string, change func(*models.Product) error) (*models.Product, error)
	ListActiveProducts(ctx context.Context) ([]*models.Product, error)
	SearchByCategory(ctx context.Context, category string) ([]*models.Product, error)
	SearchByName(ctx context.Context, name string) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, description, price, currency, stock_quantity, category, image_url, active, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	var (
		product  models.Product
		price    decimal.Decimal
		currency string
		category string
	)

	err := row.Scan(&product.ID, &product.Name, &product.Description, &price, &currency, &product.StockQuantity,
		&category, &product.ImageURL, &product.Active, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	product.Price, err = models.NewMoney(price, currency)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for product %s: %w", product.ID, err)
	}

	product.Category = models.CategoryName(category)

	return &product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, name, description, price, currency, stock_quantity, category, image_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(dbCtx, query, product.ID, product.Name, product.Description,
		product.Price.Amount(), product.Price.Currency(), product.StockQuantity, product.Category.String(),
		product.ImageURL, product.Active, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("product %s: %w", product.ID, ErrDuplicateEntry)
		}

		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, id string, change func(*models.Product) error) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	product, err := scanProduct(tx.QueryRowContext(dbCtx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock product %s: %w", id, err)
	}

	if err := change(product); err != nil {
		return nil, err
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, currency = $5, stock_quantity = $6,
		    category = $7, image_url = $8, active = $9, updated_at = $10
		WHERE id = $1`

	result, err := tx.ExecContext(dbCtx, query, product.ID, product.Name, product.Description,
		product.Price.Amount(), product.Price.Currency(), product.StockQuantity, product.Category.String(),
		product.ImageURL, product.Active, product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := expectAffected(result); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListActiveProducts(ctx context.Context) ([]*models.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE active = TRUE ORDER BY created_at DESC`)
}

func (r *productRepository) SearchByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+`
		FROM products WHERE active = TRUE AND LOWER(category) = LOWER($1)
		ORDER BY created_at DESC`, category)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName is a case-insensitive substring match; wildcard characters in name match literally.
func (r *productRepository) SearchByName(ctx context.Context, name string) ([]*models.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+`
		FROM products WHERE active = TRUE AND name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC`, likeEscaper.Replace(name))
}

func (r *productRepository) list(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	return products, rows.Err()
}
