package handlers

import (
	"context"
	"net/http"

	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/knah1d/shopease/internal/utils/response"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers() http.HandlerFunc {
	return listUsers("Users retrieved", h.adminService.ListUsers)
}

func (h *AdminHandler) ListCustomers() http.HandlerFunc {
	return listUsers("Customers retrieved", h.adminService.ListCustomers)
}

func (h *AdminHandler) ListSellers() http.HandlerFunc {
	return listUsers("Sellers retrieved", h.adminService.ListSellers)
}

func listUsers(message string, list func(ctx context.Context) ([]*models.User, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := list(r.Context())
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, message, users)
	}
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Param role query string true "CUSTOMER, SELLER, BOTH or ADMIN"
// @Success 200 {object} response.APIResponse{data=models.User}
// @Router /admin/users/{userId}/role [put]
func (h *AdminHandler) UpdateUserRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.PathID(r, w, "userId")
		if !ok {
			return
		}

		role := r.URL.Query().Get("role")
		if role == "" {
			response.Error(w, r, errors.ValidationError("Missing query parameter").WithDetail("role"))

			return
		}

		user, err := h.adminService.UpdateUserRole(r.Context(), userID, role)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "User role updated", user)
	}
}

func (h *AdminHandler) SetUserActive(active bool) http.HandlerFunc {
	message := "User deactivated"
	if active {
		message = "User activated"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.PathID(r, w, "userId")
		if !ok {
			return
		}

		user, err := h.adminService.SetUserActive(r.Context(), userID, active)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, message, user)
	}
}

func (h *AdminHandler) DashboardStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.adminService.DashboardStats(r.Context())
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Dashboard statistics retrieved", stats)
	}
}
