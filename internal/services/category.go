package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]*models.Category, error)
	GetActiveCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req *models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ActivateCategory(ctx context.Context, id string) (*models.Category, error)
}

type categoryService struct {
	repo       repository.CategoryRepository
	textPolicy *bluemonday.Policy
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo, textPolicy: bluemonday.StrictPolicy()}
}

func (s *categoryService) ensureNameFree(ctx context.Context, name string) error {
	existing, err := s.repo.GetCategoryByName(ctx, strings.TrimSpace(name))
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return errors.DatabaseError("Failed to check category name").WithError(err)
	}

	if existing != nil {
		return errors.DuplicateEntryError("Category with name '" + existing.Name + "' already exists")
	}

	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	if err := s.ensureNameFree(ctx, req.Name); err != nil {
		return nil, err
	}

	category, err := models.NewCategory(req.Name, s.textPolicy.Sanitize(req.Description), req.ImageURL)
	if err != nil {
		return nil, errors.ValidationError(err.Error()).WithError(err)
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, appError(err, "Category not found", "Failed to create category")
	}

	middleware.LoggerFromContext(ctx).Info("Category created", slog.String("categoryId", category.ID))

	return category, nil
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	return s.list(ctx, false)
}

func (s *categoryService) GetActiveCategories(ctx context.Context) ([]*models.Category, error) {
	return s.list(ctx, true)
}

func (s *categoryService) list(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	categories, err := s.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list categories").WithError(err)
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, appError(err, "Category not found", "Failed to get category")
	}

	return category, nil
}

func (s *categoryService) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.repo.GetCategoryByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, appError(err, "Category not found", "Failed to get category")
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *models.CategoryRequest) (*models.Category, error) {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(strings.TrimSpace(req.Name), category.Name) {
		if err := s.ensureNameFree(ctx, req.Name); err != nil {
			return nil, err
		}
	}

	if err := category.Update(req.Name, s.textPolicy.Sanitize(req.Description), req.ImageURL); err != nil {
		return nil, errors.ValidationError(err.Error()).WithError(err)
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, appError(err, "Category not found", "Failed to update category")
	}

	return category, nil
}

// DeleteCategory deactivates the category; products keep their reference to it.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	_, err := s.setActive(ctx, id, false)

	return err
}

func (s *categoryService) ActivateCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.setActive(ctx, id, true)
}

func (s *categoryService) setActive(ctx context.Context, id string, active bool) (*models.Category, error) {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		category.Activate()
	} else {
		category.Deactivate()
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, appError(err, "Category not found", "Failed to update category")
	}

	middleware.LoggerFromContext(ctx).Info("Category activation changed",
		slog.String("categoryId", id), slog.Bool("active", active))

	return category, nil
}
