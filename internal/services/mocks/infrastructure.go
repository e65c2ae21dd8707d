package mocks

import (
	"context"
	"time"

	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/pkg/sslcommerz"
	"github.com/stretchr/testify/mock"
)

type Cache struct {
	mock.Mock
}

func (m *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	ret := m.Called(ctx, key, value)

	return ret.Bool(0), ret.Error(1)
}

func (m *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	ret := m.Called(ctx, key, value, ttl)

	return ret.Error(0)
}

func (m *Cache) Delete(ctx context.Context, keys ...string) error {
	ret := m.Called(ctx, keys)

	return ret.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, key string, event any) error {
	ret := m.Called(ctx, key, event)

	return ret.Error(0)
}

func (m *Publisher) Close() error {
	return m.Called().Error(0)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	ret := m.Called(ctx, req)

	return ret.Error(0)
}

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) InitiateSession(ctx context.Context, req *sslcommerz.SessionRequest) (*sslcommerz.SessionResponse, error) {
	ret := m.Called(ctx, req)

	resp, _ := ret.Get(0).(*sslcommerz.SessionResponse)

	return resp, ret.Error(1)
}

func (m *PaymentGateway) ValidateTransaction(ctx context.Context, validationID string) (*sslcommerz.ValidationResponse, error) {
	ret := m.Called(ctx, validationID)

	resp, _ := ret.Get(0).(*sslcommerz.ValidationResponse)

	return resp, ret.Error(1)
}

func (m *PaymentGateway) InitiateRefund(ctx context.Context, req *sslcommerz.RefundRequest) (*sslcommerz.RefundResponse, error) {
	ret := m.Called(ctx, req)

	resp, _ := ret.Get(0).(*sslcommerz.RefundResponse)

	return resp, ret.Error(1)
}
