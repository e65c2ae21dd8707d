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

func TestUserHandler_Register(t *testing.T) {
	t.Run("Success - User Registration", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		registerReq := &models.RegisterRequest{
			Name:     "Test User",
			Email:    "test@example.com",
			Phone:    "01712345678",
			Password: "secret123",
		}

		createdUser := &models.User{ID: "user-1", Name: registerReq.Name, Email: registerReq.Email, Role: models.RoleCustomer, Active: true}

		mockUserService.On("Register", mock.Anything, mock.MatchedBy(func(r *models.RegisterRequest) bool {
			return r.Email == registerReq.Email && r.Name == registerReq.Name
		})).Return(createdUser, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/users/register", jsonBody(t, registerReq), nil)
		w := httptest.NewRecorder()

		// Act
		userHandler.Register()(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)

		respBody := decodeResponse(t, w)
		assert.True(t, respBody.Success)

		var user models.User
		decodeData(t, respBody, &user)
		assert.Equal(t, createdUser.ID, user.ID)
		assert.Equal(t, createdUser.Email, user.Email)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Input", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		body := jsonBody(t, map[string]string{"email": "test@example.com"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/users/register", body, nil)
		w := httptest.NewRecorder()

		// Act
		userHandler.Register()(w, req)

		// Assert
		assertErrorCode(t, w, http.StatusBadRequest, errors.ErrCodeValidation)
		mockUserService.AssertNotCalled(t, "Register")
	})

	t.Run("Failure - Email Already Exists", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		registerReq := &models.RegisterRequest{Name: "Dup", Email: "dup@example.com", Phone: "01712345678", Password: "secret123"}
		mockUserService.On("Register", mock.Anything, mock.Anything).
			Return(nil, errors.DuplicateEntryError("Email already registered")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/users/register", jsonBody(t, registerReq), nil)
		w := httptest.NewRecorder()

		// Act
		userHandler.Register()(w, req)

		// Assert
		assertErrorCode(t, w, http.StatusConflict, errors.ErrCodeDuplicateEntry)
		mockUserService.AssertExpectations(t)
	})
}

func TestUserHandler_Login(t *testing.T) {
	loginReq := &models.LoginRequest{Email: "test@example.com", Password: "secret123"}

	t.Run("Success - Token Issued", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, loginReq).
			Return(&models.LoginResponse{Token: "jwt-token", ExpiresIn: 86400, User: &models.User{ID: "user-1"}}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/users/login", jsonBody(t, loginReq), nil)
		w := httptest.NewRecorder()

		// Act
		userHandler.Login()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var loginResp models.LoginResponse
		decodeData(t, decodeResponse(t, w), &loginResp)
		assert.Equal(t, "jwt-token", loginResp.Token)
		assert.Equal(t, 86400, loginResp.ExpiresIn)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Credentials", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, loginReq).Return(nil, errors.InvalidCredentialsError()).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/users/login", jsonBody(t, loginReq), nil)
		w := httptest.NewRecorder()

		// Act
		userHandler.Login()(w, req)

		// Assert
		assertErrorCode(t, w, http.StatusUnauthorized, errors.ErrCodeInvalidCredentials)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, loginReq).
			Return(nil, errors.TooManyRequestsError("Too many login attempts")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/users/login", jsonBody(t, loginReq), nil)
		w := httptest.NewRecorder()

		// Act
		userHandler.Login()(w, req)

		// Assert
		assertErrorCode(t, w, http.StatusTooManyRequests, errors.ErrCodeTooManyRequests)
	})
}

func TestUserHandler_Profile(t *testing.T) {
	t.Run("Success - Own Profile", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetProfile", mock.Anything, "user-1").
			Return(&models.User{ID: "user-1", Name: "Test User"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/users/profile/user-1", nil, "user-1",
			map[string]string{"userId": "user-1"})
		w := httptest.NewRecorder()

		// Act
		userHandler.Profile()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Success - Admin Views Any Profile", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetProfile", mock.Anything, "user-2").Return(&models.User{ID: "user-2"}, nil).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodGet, "/api/users/profile/user-2", nil, "admin-1", models.RoleAdmin,
			map[string]string{"userId": "user-2"})
		w := httptest.NewRecorder()

		// Act
		userHandler.Profile()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failure - Other User's Profile", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/users/profile/user-2", nil, "user-1",
			map[string]string{"userId": "user-2"})
		w := httptest.NewRecorder()

		// Act
		userHandler.Profile()(w, req)

		// Assert
		assertErrorCode(t, w, http.StatusForbidden, errors.ErrCodeForbidden)
		mockUserService.AssertNotCalled(t, "GetProfile")
	})

	t.Run("Failure - Unauthenticated", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/users/profile/user-1", nil,
			map[string]string{"userId": "user-1"})
		w := httptest.NewRecorder()

		// Act
		userHandler.Profile()(w, req)

		// Assert
		assertErrorCode(t, w, http.StatusUnauthorized, errors.ErrCodeUnauthorized)
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetProfile", mock.Anything, "user-1").Return(nil, errors.NotFoundError("User not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/users/profile/user-1", nil, "user-1",
			map[string]string{"userId": "user-1"})
		w := httptest.NewRecorder()

		// Act
		userHandler.Profile()(w, req)

		// Assert
		assertErrorCode(t, w, http.StatusNotFound, errors.ErrCodeNotFound)
	})
}
