package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/lib/pq"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	ListPaymentsByOrderID(ctx context.Context, orderID string) ([]*models.Payment, error)
	// UpdatePayment writes the payment only while its stored status is one of from.
	// It reports false when another writer already moved the payment on.
	UpdatePayment(ctx context.Context, payment *models.Payment, from ...models.PaymentStatus) (bool, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

const paymentColumns = `id, transaction_id, order_id, amount, currency, status, gateway_type, session_key,
	gateway_transaction_id, bank_transaction_id, validation_id, card_type, card_brand, gateway_response,
	failure_reason, refunded_amount, refund_ref_id, customer_name, customer_email, customer_phone,
	created_at, updated_at`

func scanPayment(row interface{ Scan(dest ...any) error }) (*models.Payment, error) {
	p := &models.Payment{}

	err := row.Scan(&p.ID, &p.TransactionID, &p.OrderID, &p.Amount, &p.Currency, &p.Status, &p.GatewayType,
		&p.SessionKey, &p.GatewayTransactionID, &p.BankTransactionID, &p.ValidationID, &p.CardType, &p.CardBrand,
		&p.GatewayResponse, &p.FailureReason, &p.RefundedAmount, &p.RefundRefID, &p.CustomerName,
		&p.CustomerEmail, &p.CustomerPhone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *paymentRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, transaction_id, order_id, amount, currency, status, gateway_type,
		                      refunded_amount, customer_name, customer_email, customer_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(dbCtx, query, p.ID, p.TransactionID, p.OrderID, p.Amount, p.Currency, p.Status,
		p.GatewayType, p.RefundedAmount, p.CustomerName, p.CustomerEmail, p.CustomerPhone, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	p, err := scanPayment(r.DB.QueryRowContext(dbCtx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %s: %w", transactionID, err)
	}

	return p, nil
}

func (r *paymentRepository) ListPaymentsByOrderID(ctx context.Context, orderID string) ([]*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY created_at DESC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) UpdatePayment(ctx context.Context, p *models.Payment, from ...models.PaymentStatus) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	query := `
		UPDATE payments
		SET status = $2, session_key = $3, gateway_transaction_id = $4, bank_transaction_id = $5,
		    validation_id = $6, card_type = $7, card_brand = $8, gateway_response = $9,
		    failure_reason = $10, refunded_amount = $11, refund_ref_id = $12, updated_at = $13
		WHERE transaction_id = $1 AND status = ANY($14)`

	result, err := r.DB.ExecContext(dbCtx, query, p.TransactionID, p.Status, p.SessionKey, p.GatewayTransactionID,
		p.BankTransactionID, p.ValidationID, p.CardType, p.CardBrand, p.GatewayResponse, p.FailureReason,
		p.RefundedAmount, p.RefundRefID, p.UpdatedAt, pq.Array(allowed))
	if err != nil {
		return false, fmt.Errorf("failed to update payment %s: %w", p.TransactionID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
