package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/metrics"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
	"github.com/knah1d/shopease/pkg/sendgrid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error)
	ListNotifications(ctx context.Context, recipient string, page, size int) (*models.PaginatedResponse, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

// SendEmail records the notification before delivery and stores the outcome afterwards.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {
	logger := middleware.LoggerFromContext(ctx)

	var metadataJSON json.RawMessage

	if req.Metadata != nil {
		metadataBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, errors.BadRequestError("Invalid notification metadata").WithError(err)
		}

		metadataJSON = metadataBytes
	}

	now := time.Now().UTC()
	notification := &models.Notification{
		ID:        models.NewID(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadataJSON,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to create notification record").WithError(err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		notification.Status = models.StatusFailed
		notification.ErrorMessage = err.Error()

		metrics.EmailsSent.WithLabelValues(string(models.StatusFailed)).Inc()

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, notification.ErrorMessage); updateErr != nil {
			logger.Error("Failed to record notification failure", slog.String("notificationId", notification.ID), slog.Any("error", updateErr))
		}

		return nil, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.StatusSent
	metrics.EmailsSent.WithLabelValues(string(models.StatusSent)).Inc()

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, errors.DatabaseError("Notification sent but status update failed").WithError(err)
	}

	logger.Info("Email sent", slog.String("notificationId", notification.ID))

	return notification, nil
}

func (n *notificationService) ListNotifications(ctx context.Context, recipient string, page, size int) (*models.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	notifications, total, err := n.repo.ListNotificationsByRecipient(ctx, recipient, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     notifications,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}
