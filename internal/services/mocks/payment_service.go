package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) initiation(ret mock.Arguments) (*models.PaymentInitiationResponse, error) {
	resp, _ := ret.Get(0).(*models.PaymentInitiationResponse)

	return resp, ret.Error(1)
}

func (m *PaymentService) payment(ret mock.Arguments) (*models.Payment, error) {
	payment, _ := ret.Get(0).(*models.Payment)

	return payment, ret.Error(1)
}

func (m *PaymentService) InitiateOrderPayment(ctx context.Context, orderID string, requester *models.Claims, req *models.OrderPaymentRequest) (*models.PaymentInitiationResponse, error) {
	return m.initiation(m.Called(ctx, orderID, requester, req))
}

func (m *PaymentService) InitiatePayment(ctx context.Context, req *models.PaymentInitiationRequest) (*models.PaymentInitiationResponse, error) {
	return m.initiation(m.Called(ctx, req))
}

func (m *PaymentService) HandleSuccess(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	return m.payment(m.Called(ctx, cb))
}

func (m *PaymentService) HandleIPN(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	return m.payment(m.Called(ctx, cb))
}

func (m *PaymentService) HandleFailure(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	return m.payment(m.Called(ctx, cb))
}

func (m *PaymentService) HandleCancel(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	return m.payment(m.Called(ctx, cb))
}

func (m *PaymentService) GetPaymentStatus(ctx context.Context, transactionID string) (*models.PaymentStatusResponse, error) {
	ret := m.Called(ctx, transactionID)

	resp, _ := ret.Get(0).(*models.PaymentStatusResponse)

	return resp, ret.Error(1)
}

func (m *PaymentService) ListOrderPayments(ctx context.Context, orderID string) ([]*models.Payment, error) {
	ret := m.Called(ctx, orderID)

	payments, _ := ret.Get(0).([]*models.Payment)

	return payments, ret.Error(1)
}

func (m *PaymentService) RefundPayment(ctx context.Context, transactionID string, req *models.RefundRequest) (*models.Payment, error) {
	return m.payment(m.Called(ctx, transactionID, req))
}
