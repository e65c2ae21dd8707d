package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	// CreateOrder persists the order and its items and reserves stock for every line in one transaction.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*models.Order, error)
	// UpdateOrderStatus locks the order row, applies the transition and, when the target
	// status releases stock, returns the reserved quantities. It reports the previous status.
	UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, models.OrderStatus, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, buyer_id, street, city, state, zip_code, country, payment_method,
	delivery_charge, currency, status, order_date, updated_at`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range order.Items {
		if err := reserveStock(dbCtx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO orders (id, buyer_id, street, city, state, zip_code, country, payment_method,
		                    delivery_charge, currency, status, order_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	address := order.DeliveryAddress

	_, err = tx.ExecContext(dbCtx, query, order.ID, order.BuyerID, address.Street, address.City, address.State,
		address.ZipCode, address.Country, order.PaymentMethod, order.DeliveryCharge.Amount(), order.Currency(),
		order.Status, order.OrderDate, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	query = `
		INSERT INTO order_items (id, order_id, position, product_id, product_name, quantity, unit_price, total_price, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for i, item := range order.Items {
		_, err := tx.ExecContext(dbCtx, query, item.ID, order.ID, i, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice.Amount(), item.TotalPrice.Amount(), item.UnitPrice.Currency())
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// reserveStock decrements stock only if enough is left; otherwise it reports what is available.
func reserveStock(ctx context.Context, tx *sql.Tx, productID string, quantity int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		 WHERE id = $1 AND stock_quantity >= $2`, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to reserve stock for product %s: %w", productID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected > 0 {
		return nil
	}

	var available int
	if err := tx.QueryRowContext(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&available); err != nil {
		return fmt.Errorf("failed to read stock for product %s: %w", productID, err)
	}

	return &models.InsufficientStockError{ProductID: productID, Available: available, Requested: quantity}
}

func releaseStock(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx,
			`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = NOW() WHERE id = $1`,
			item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to release stock for product %s: %w", item.ProductID, err)
		}
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return loadOrder(dbCtx, r.DB, id, false)
}

func (r *orderRepository) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx,
		`SELECT `+orderColumns+` FROM orders WHERE buyer_id = $1 ORDER BY order_date DESC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := []*models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()

			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		rows.Close()

		return nil, err
	}

	rows.Close()

	for _, order := range orders {
		if order.Items, err = loadOrderItems(dbCtx, r.DB, order.ID); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	order, err := loadOrder(dbCtx, tx, id, true)
	if err != nil {
		return nil, "", err
	}

	previous := order.Status

	if err := order.UpdateStatus(next); err != nil {
		return nil, previous, err
	}

	if next.ReleasesStock() {
		if err := releaseStock(dbCtx, tx, order); err != nil {
			return nil, previous, err
		}
	}

	_, err = tx.ExecContext(dbCtx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		order.ID, order.Status, order.UpdatedAt)
	if err != nil {
		return nil, previous, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, previous, fmt.Errorf("failed to commit order status: %w", err)
	}

	return order, previous, nil
}

func loadOrder(ctx context.Context, q querier, id string, forUpdate bool) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	order, err := scanOrder(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}

	if order.Items, err = loadOrderItems(ctx, q, id); err != nil {
		return nil, err
	}

	return order, nil
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	var (
		order    models.Order
		charge   decimal.Decimal
		currency string
	)

	address := &order.DeliveryAddress

	err := row.Scan(&order.ID, &order.BuyerID, &address.Street, &address.City, &address.State, &address.ZipCode,
		&address.Country, &order.PaymentMethod, &charge, &currency, &order.Status, &order.OrderDate, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if order.DeliveryCharge, err = models.NewMoney(charge, currency); err != nil {
		return nil, fmt.Errorf("invalid stored delivery charge for order %s: %w", order.ID, err)
	}

	return &order, nil
}

func loadOrderItems(ctx context.Context, q querier, orderID string) ([]*models.OrderItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, product_id, product_name, quantity, unit_price, total_price, currency
		FROM order_items
		WHERE order_id = $1
		ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	items := []*models.OrderItem{}

	for rows.Next() {
		var (
			item             models.OrderItem
			unitPrice, total decimal.Decimal
			currency         string
		)

		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &unitPrice, &total, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = orderID

		if item.UnitPrice, err = models.NewMoney(unitPrice, currency); err != nil {
			return nil, err
		}

		if item.TotalPrice, err = models.NewMoney(total, currency); err != nil {
			return nil, err
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}
