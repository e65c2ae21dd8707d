package handlers

import (
	"net/http"

	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/knah1d/shopease/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the emails sent to the authenticated user, newest first.
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		page := utils.QueryInt(r, "page", 1)
		size := utils.QueryInt(r, "size", 10)

		notifications, err := h.notificationService.ListNotifications(r.Context(), claims.Email, page, size)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Notifications retrieved", notifications)
	}
}
