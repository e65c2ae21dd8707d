package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/metrics"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	repo        repository.UserRepository
	rateLimiter repository.RateLimitRepository
	jwtKey      []byte
	tokenTTL    time.Duration
}

func NewUserService(repo repository.UserRepository, rateLimiter repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) UserService {
	return &userService{
		repo:        repo,
		rateLimiter: rateLimiter,
		jwtKey:      jwtKey,
		tokenTTL:    tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	logger := middleware.LoggerFromContext(ctx)

	role, err := models.ParseRole(req.Role)
	if err != nil || role == models.RoleAdmin {
		return nil, errors.AddValidationError("role", "must be one of CUSTOMER, SELLER, BOTH")
	}

	email, err := models.NormalizeEmail(req.Email)
	if err != nil {
		return nil, errors.AddValidationError("email", "invalid email format")
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to check existing user").WithError(err)
	}

	if existing != nil {
		logger.Warn("Registration rejected, email already registered")

		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user, err := models.NewUser(req.Name, email, req.Phone, string(hashedPassword), role)
	if err != nil {
		return nil, errors.ValidationError(err.Error()).WithError(err)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEntry) {
			return nil, errors.DuplicateEntryError("Email already registered").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	logger.Info("User registered", slog.String("userId", user.ID), slog.String("role", string(user.Role)))

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	email, err := models.NormalizeEmail(req.Email)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()

		return nil, errors.InvalidCredentialsError()
	}

	allowed, _, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()

		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail("retry after " + strconv.Itoa(retryAfter) + " seconds")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()

			return nil, errors.InvalidCredentialsError()
		}

		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		logger.Warn("Login failed, wrong password", slog.String("userId", user.ID))

		return nil, errors.InvalidCredentialsError()
	}

	if !user.Active {
		metrics.LoginAttempts.WithLabelValues("inactive").Inc()

		return nil, errors.ForbiddenError("Account is deactivated")
	}

	now := time.Now()
	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Info("User logged in", slog.String("userId", user.ID))

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		User:      user,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, appError(err, "User not found", "Failed to load user")
	}

	return user, nil
}
