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

var paymentRowColumns = []string{
	"id", "transaction_id", "order_id", "amount", "currency", "status", "gateway_type", "session_key",
	"gateway_transaction_id", "bank_transaction_id", "validation_id", "card_type", "card_brand", "gateway_response",
	"failure_reason", "refunded_amount", "refund_ref_id", "customer_name", "customer_email", "customer_phone",
	"created_at", "updated_at",
}

func newRepoTestPayment(t *testing.T) *models.Payment {
	t.Helper()

	amount, err := models.MoneyFromString("360", "BDT")
	require.NoError(t, err)

	return models.NewPayment("order-1", amount, "Alice", "alice@example.com", "01700000000")
}

func TestPaymentRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPaymentRepo(db)
	ctx := context.Background()
	payment := newRepoTestPayment(t)

	t.Run("Success - CreatePayment", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
			WithArgs(payment.ID, payment.TransactionID, "order-1", "360", "BDT", "PENDING", models.GatewaySSLCommerz,
				"0", "Alice", "alice@example.com", "01700000000", payment.CreatedAt, payment.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		// Act
		err := repo.CreatePayment(ctx, payment)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - GetPaymentByTransactionID", func(t *testing.T) {
		// Arrange
		now := time.Now()
		rows := sqlmock.NewRows(paymentRowColumns).
			AddRow(payment.ID, payment.TransactionID, "order-1", "360.00", "BDT", "SUCCESS", "SSLCOMMERZ", "sess",
				"gw-1", "bank-1", "val-1", "VISA-Dutch Bangla", "VISA", "{}", "", "0.00", "", "Alice",
				"alice@example.com", "01700000000", now, now)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE transaction_id = $1`)).
			WithArgs(payment.TransactionID).
			WillReturnRows(rows)

		// Act
		found, err := repo.GetPaymentByTransactionID(ctx, payment.TransactionID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusSuccess, found.Status)
		assert.Equal(t, "360", found.Amount.String())
		assert.True(t, found.RefundedAmount.IsZero())
		assert.Equal(t, "val-1", found.ValidationID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - GetPaymentByTransactionID Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE transaction_id = $1`)).
			WithArgs("TXN-missing").
			WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.GetPaymentByTransactionID(ctx, "TXN-missing")

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - ListPaymentsByOrderID", func(t *testing.T) {
		// Arrange
		now := time.Now()
		rows := sqlmock.NewRows(paymentRowColumns).
			AddRow("pay-2", "TXN2", "order-1", "360.00", "BDT", "FAILED", "SSLCOMMERZ", "", "", "", "", "", "", "",
				"declined", "0", "", "Alice", "alice@example.com", "01700000000", now, now).
			AddRow("pay-1", "TXN1", "order-1", "360.00", "BDT", "CANCELLED", "SSLCOMMERZ", "", "", "", "", "", "", "",
				"", "0", "", "Alice", "alice@example.com", "01700000000", now, now)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE order_id = $1 ORDER BY created_at DESC`)).
			WithArgs("order-1").
			WillReturnRows(rows)

		// Act
		payments, err := repo.ListPaymentsByOrderID(ctx, "order-1")

		// Assert
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, "declined", payments[0].FailureReason)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	updateSQL := regexp.QuoteMeta(`WHERE transaction_id = $1 AND status = ANY($14)`)

	t.Run("Success - UpdatePayment From Allowed Status", func(t *testing.T) {
		// Arrange
		payment.Status = models.PaymentStatusSuccess
		payment.ValidationID = "val-1"

		mock.ExpectExec(updateSQL).
			WithArgs(payment.TransactionID, "SUCCESS", "", "", "", "val-1", "", "", "", "", "0", "", payment.UpdatedAt,
				pq.Array([]string{"PENDING", "PROCESSING"})).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		updated, err := repo.UpdatePayment(ctx, payment, models.PaymentStatusPending, models.PaymentStatusProcessing)

		// Assert
		require.NoError(t, err)
		assert.True(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - UpdatePayment Skipped For Final Status", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		updated, err := repo.UpdatePayment(ctx, payment, models.PaymentStatusPending)

		// Assert
		require.NoError(t, err)
		assert.False(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - UpdatePayment Database Error", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("deadlock detected")
		mock.ExpectExec(updateSQL).WillReturnError(dbErr)

		// Act
		updated, err := repo.UpdatePayment(ctx, payment, models.PaymentStatusPending)

		// Assert
		assert.False(t, updated)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
