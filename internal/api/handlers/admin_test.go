package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knah1d/shopease/internal/api/handlers"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/services/mocks"
	"github.com/knah1d/shopease/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func adminRequest(method, target string, pathParams map[string]string) *http.Request {
	return testutils.CreateTestRequestWithRole(method, target, nil, "admin-1", models.RoleAdmin, pathParams)
}

func TestAdminHandler_ListUsers(t *testing.T) {
	users := []*models.User{
		{ID: "user-1", Role: models.RoleCustomer},
		{ID: "user-2", Role: models.RoleSeller},
	}

	t.Run("Success - All Users", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("ListUsers", mock.Anything).Return(users, nil).Once()
		w := httptest.NewRecorder()

		// Act
		adminHandler.ListUsers()(w, adminRequest(http.MethodGet, "/api/admin/users", nil))

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var got []*models.User
		decodeData(t, decodeResponse(t, w), &got)
		assert.Len(t, got, 2)
	})

	t.Run("Success - Sellers", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("ListSellers", mock.Anything).Return(users[1:], nil).Once()
		w := httptest.NewRecorder()

		// Act
		adminHandler.ListSellers()(w, adminRequest(http.MethodGet, "/api/admin/users/sellers", nil))

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		mockAdminService.AssertExpectations(t)
		mockAdminService.AssertNotCalled(t, "ListCustomers")
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("ListCustomers", mock.Anything).Return(nil, errors.DatabaseError("Failed to list users")).Once()
		w := httptest.NewRecorder()

		// Act
		adminHandler.ListCustomers()(w, adminRequest(http.MethodGet, "/api/admin/users/customers", nil))

		// Assert
		assertErrorCode(t, w, http.StatusInternalServerError, errors.ErrCodeDatabaseError)
	})
}

func TestAdminHandler_UpdateUserRole(t *testing.T) {
	t.Run("Success - Role Changed", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("UpdateUserRole", mock.Anything, "user-1", "SELLER").
			Return(&models.User{ID: "user-1", Role: models.RoleSeller}, nil).Once()
		w := httptest.NewRecorder()

		// Act
		adminHandler.UpdateUserRole()(w, adminRequest(http.MethodPut, "/api/admin/users/user-1/role?role=SELLER",
			map[string]string{"userId": "user-1"}))

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var user models.User
		decodeData(t, decodeResponse(t, w), &user)
		assert.Equal(t, models.RoleSeller, user.Role)
	})

	t.Run("Failure - Missing Role Parameter", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)
		w := httptest.NewRecorder()

		// Act
		adminHandler.UpdateUserRole()(w, adminRequest(http.MethodPut, "/api/admin/users/user-1/role",
			map[string]string{"userId": "user-1"}))

		// Assert
		assertErrorCode(t, w, http.StatusBadRequest, errors.ErrCodeValidation)
		mockAdminService.AssertNotCalled(t, "UpdateUserRole")
	})

	t.Run("Failure - Unknown Role", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("UpdateUserRole", mock.Anything, "user-1", "OWNER").
			Return(nil, errors.ValidationError("Invalid role")).Once()
		w := httptest.NewRecorder()

		// Act
		adminHandler.UpdateUserRole()(w, adminRequest(http.MethodPut, "/api/admin/users/user-1/role?role=OWNER",
			map[string]string{"userId": "user-1"}))

		// Assert
		assertErrorCode(t, w, http.StatusBadRequest, errors.ErrCodeValidation)
	})
}

func TestAdminHandler_SetUserActive(t *testing.T) {
	t.Run("Success - Deactivate", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("SetUserActive", mock.Anything, "user-1", false).
			Return(&models.User{ID: "user-1", Active: false}, nil).Once()
		w := httptest.NewRecorder()

		// Act
		adminHandler.SetUserActive(false)(w, adminRequest(http.MethodPut, "/api/admin/users/user-1/deactivate",
			map[string]string{"userId": "user-1"}))

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "User deactivated", decodeResponse(t, w).Message)
		mockAdminService.AssertExpectations(t)
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		// Arrange
		mockAdminService := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("SetUserActive", mock.Anything, "ghost", true).
			Return(nil, errors.NotFoundError("User not found")).Once()
		w := httptest.NewRecorder()

		// Act
		adminHandler.SetUserActive(true)(w, adminRequest(http.MethodPut, "/api/admin/users/ghost/activate",
			map[string]string{"userId": "ghost"}))

		// Assert
		assertErrorCode(t, w, http.StatusNotFound, errors.ErrCodeNotFound)
	})
}

func TestAdminHandler_DashboardStats(t *testing.T) {
	// Arrange
	mockAdminService := new(mocks.AdminService)
	adminHandler := handlers.NewAdminHandler(mockAdminService)

	stats := &models.DashboardStats{TotalUsers: 10, ActiveUsers: 8, TotalProducts: 25, TotalOrders: 4, TotalCategories: 3}
	mockAdminService.On("DashboardStats", mock.Anything).Return(stats, nil).Once()
	w := httptest.NewRecorder()

	// Act
	adminHandler.DashboardStats()(w, adminRequest(http.MethodGet, "/api/admin/dashboard/stats", nil))

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.DashboardStats
	decodeData(t, decodeResponse(t, w), &got)
	assert.Equal(t, *stats, got)
}
