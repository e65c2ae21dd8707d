package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {
	ret := m.Called(ctx, req)

	notification, _ := ret.Get(0).(*models.Notification)

	return notification, ret.Error(1)
}

func (m *NotificationService) ListNotifications(ctx context.Context, recipient string, page, size int) (*models.PaginatedResponse, error) {
	ret := m.Called(ctx, recipient, page, size)

	resp, _ := ret.Get(0).(*models.PaginatedResponse)

	return resp, ret.Error(1)
}
