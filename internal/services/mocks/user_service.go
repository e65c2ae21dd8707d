package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	ret := m.Called(ctx, req)

	user, _ := ret.Get(0).(*models.User)

	return user, ret.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ret := m.Called(ctx, req)

	resp, _ := ret.Get(0).(*models.LoginResponse)

	return resp, ret.Error(1)
}

func (m *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	ret := m.Called(ctx, id)

	user, _ := ret.Get(0).(*models.User)

	return user, ret.Error(1)
}

type AdminService struct {
	mock.Mock
}

func (m *AdminService) users(ret mock.Arguments) ([]*models.User, error) {
	users, _ := ret.Get(0).([]*models.User)

	return users, ret.Error(1)
}

func (m *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return m.users(m.Called(ctx))
}

func (m *AdminService) ListCustomers(ctx context.Context) ([]*models.User, error) {
	return m.users(m.Called(ctx))
}

func (m *AdminService) ListSellers(ctx context.Context) ([]*models.User, error) {
	return m.users(m.Called(ctx))
}

func (m *AdminService) UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	ret := m.Called(ctx, userID, role)

	user, _ := ret.Get(0).(*models.User)

	return user, ret.Error(1)
}

func (m *AdminService) SetUserActive(ctx context.Context, userID string, active bool) (*models.User, error) {
	ret := m.Called(ctx, userID, active)

	user, _ := ret.Get(0).(*models.User)

	return user, ret.Error(1)
}

func (m *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ret := m.Called(ctx)

	stats, _ := ret.Get(0).(*models.DashboardStats)

	return stats, ret.Error(1)
}
