package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := m.Called(ctx, user)

	return ret.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ret := m.Called(ctx, id)

	user, _ := ret.Get(0).(*models.User)

	return user, ret.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := m.Called(ctx, email)

	user, _ := ret.Get(0).(*models.User)

	return user, ret.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	ret := m.Called(ctx, user)

	return ret.Error(0)
}

func (m *UserRepository) ListUsers(ctx context.Context, roles ...models.Role) ([]*models.User, error) {
	ret := m.Called(ctx, roles)

	users, _ := ret.Get(0).([]*models.User)

	return users, ret.Error(1)
}
