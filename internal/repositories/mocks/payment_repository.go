package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	ret := m.Called(ctx, payment)

	return ret.Error(0)
}

func (m *PaymentRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	ret := m.Called(ctx, transactionID)

	payment, _ := ret.Get(0).(*models.Payment)

	return payment, ret.Error(1)
}

func (m *PaymentRepository) ListPaymentsByOrderID(ctx context.Context, orderID string) ([]*models.Payment, error) {
	ret := m.Called(ctx, orderID)

	payments, _ := ret.Get(0).([]*models.Payment)

	return payments, ret.Error(1)
}

func (m *PaymentRepository) UpdatePayment(ctx context.Context, payment *models.Payment, from ...models.PaymentStatus) (bool, error) {
	ret := m.Called(ctx, payment, from)

	return ret.Bool(0), ret.Error(1)
}
