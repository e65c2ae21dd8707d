package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	ret := m.Called(ctx, notification)

	return ret.Error(0)
}

func (m *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id string, status models.NotificationStatus, errorMsg string) error {
	ret := m.Called(ctx, id, status, errorMsg)

	return ret.Error(0)
}

func (m *NotificationRepository) ListNotificationsByRecipient(ctx context.Context, recipient string, page, size int) ([]*models.Notification, int, error) {
	ret := m.Called(ctx, recipient, page, size)

	notifications, _ := ret.Get(0).([]*models.Notification)

	return notifications, ret.Int(1), ret.Error(2)
}
