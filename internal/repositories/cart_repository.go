package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/shopspring/decimal"
)

type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{Items: []*models.CartItem{}}

	query := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}

	query = `
		SELECT id, product_id, product_name, unit_price, currency, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY position`

	rows, err := r.DB.QueryContext(dbCtx, query, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item     models.CartItem
			price    decimal.Decimal
			currency string
		)

		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &price, &currency, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		if item.UnitPrice, err = models.NewMoney(price, currency); err != nil {
			return nil, fmt.Errorf("invalid stored price for cart item %s: %w", item.ID, err)
		}

		cart.Items = append(cart.Items, &item)
	}

	return cart, rows.Err()
}

// SaveCart upserts the cart row and replaces its lines in one transaction.
func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at`

	if _, err := tx.ExecContext(dbCtx, query, cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	query = `
		INSERT INTO cart_items (id, cart_id, position, product_id, product_name, unit_price, currency, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, item := range cart.Items {
		_, err := tx.ExecContext(dbCtx, query, item.ID, cart.ID, i, item.ProductID, item.ProductName,
			item.UnitPrice.Amount(), item.UnitPrice.Currency(), item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart: %w", err)
	}

	return nil
}
