package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/knah1d/shopease/internal/models"
	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/knah1d/shopease/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: utils.NewValidator()}
}

// CreateProduct godoc
// @Summary Create a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product details"
// @Success 201 {object} response.APIResponse{data=models.Product}
// @Router /products/createProduct [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusCreated, "Product created successfully", product)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Product retrieved successfully", product)
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.productService.ListActiveProducts(r.Context())
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Products retrieved successfully", products)
	}
}

// SearchProducts godoc
// @Summary Search products by category or name
// @Tags Products
// @Produce json
// @Param name query string false "Case-insensitive name fragment"
// @Param category query string false "Category name; wins over name"
// @Success 200 {object} response.APIResponse{data=[]models.Product}
// @Router /products/search [get]
func (h *ProductHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		products, err := h.productService.SearchProducts(r.Context(), query.Get("name"), query.Get("category"))
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Products retrieved successfully", products)
	}
}

func (h *ProductHandler) UpdatePrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		var req models.UpdatePriceRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdatePrice(r.Context(), id, &req)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Product price updated", product)
	}
}

func (h *ProductHandler) UpdateStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		var req models.UpdateStockRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateStock(r.Context(), id, *req.StockQuantity)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Product stock updated", product)
	}
}

func (h *ProductHandler) ReduceStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		var req models.ReduceStockRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.ReduceStock(r.Context(), id, req.Quantity)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Product stock reduced", product)
	}
}

// SetActive serves both the activate and the deactivate route.
func (h *ProductHandler) SetActive(active bool) http.HandlerFunc {
	message := "Product deactivated"
	if active {
		message = "Product activated"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, w, "id")
		if !ok {
			return
		}

		product, err := h.productService.SetActive(r.Context(), id, active)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, message, product)
	}
}
