package service

import (
	"context"
	"log/slog"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListCustomers(ctx context.Context) ([]*models.User, error)
	ListSellers(ctx context.Context) ([]*models.User, error)
	UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error)
	SetUserActive(ctx context.Context, userID string, active bool) (*models.User, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type adminService struct {
	users repository.UserRepository
	stats repository.StatsRepository
}

func NewAdminService(users repository.UserRepository, stats repository.StatsRepository) AdminService {
	return &adminService{users: users, stats: stats}
}

func (s *adminService) list(ctx context.Context, roles ...models.Role) ([]*models.User, error) {
	users, err := s.users.ListUsers(ctx, roles...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch users").WithError(err)
	}

	return users, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.list(ctx)
}

// Users with role BOTH appear in both the customer and the seller listings.
func (s *adminService) ListCustomers(ctx context.Context) ([]*models.User, error) {
	return s.list(ctx, models.RoleCustomer, models.RoleBoth)
}

func (s *adminService) ListSellers(ctx context.Context) ([]*models.User, error) {
	return s.list(ctx, models.RoleSeller, models.RoleBoth)
}

func (s *adminService) UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	if role == "" {
		return nil, errors.AddValidationError("role", "is required")
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, errors.AddValidationError("role", "must be one of CUSTOMER, SELLER, BOTH, ADMIN")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, appError(err, "User not found", "Failed to load user")
	}

	user.ChangeRole(parsed)

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, appError(err, "User not found", "Failed to update user")
	}

	middleware.LoggerFromContext(ctx).Info("User role changed",
		slog.String("targetUserId", userID), slog.String("role", string(parsed)))

	return user, nil
}

func (s *adminService) SetUserActive(ctx context.Context, userID string, active bool) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, appError(err, "User not found", "Failed to load user")
	}

	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, appError(err, "User not found", "Failed to update user")
	}

	middleware.LoggerFromContext(ctx).Info("User activation changed",
		slog.String("targetUserId", userID), slog.Bool("active", active))

	return user, nil
}

func (s *adminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.stats.DashboardStats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load dashboard statistics").WithError(err)
	}

	return stats, nil
}
