package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/knah1d/shopease/internal/models"
	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/knah1d/shopease/internal/utils/response"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: utils.NewValidator()}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusCreated, "Category created successfully", category)
	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryService.GetAllCategories(r.Context())
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Categories retrieved", categories)
	}
}

func (h *CategoryHandler) ListActiveCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryService.GetActiveCategories(r.Context())
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Active categories retrieved", categories)
	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		category, err := h.categoryService.GetCategoryByID(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Category retrieved", category)
	}
}

func (h *CategoryHandler) GetCategoryByName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := utils.PathID(r, w, "name")
		if !ok {
			return
		}

		category, err := h.categoryService.GetCategoryByName(r.Context(), name)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Category retrieved", category)
	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		var req models.CategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Category updated", category)
	}
}

// DeleteCategory deactivates the category; products keep their category name.
func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Category deleted", nil)
	}
}

func (h *CategoryHandler) ActivateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		category, err := h.categoryService.ActivateCategory(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Category activated", category)
	}
}
