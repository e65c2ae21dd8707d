package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/models"
	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/knah1d/shopease/internal/utils/response"
)

// CartHandler serves the cart of the authenticated user.
type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: utils.NewValidator()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Cart retrieved", cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req models.AddToCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddToCart(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", "userID", claims.UserID, "productID", req.ProductID, "error", err)
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Item added to cart", cart)
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		productID, ok := utils.PathID(r, w, "productId")
		if !ok {
			return
		}

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateItemQuantity(r.Context(), claims.UserID, productID, *req.Quantity)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Cart item updated", cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		productID, ok := utils.PathID(r, w, "productId")
		if !ok {
			return
		}

		cart, err := h.cartService.RemoveFromCart(r.Context(), claims.UserID, productID)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Item removed from cart", cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Cart cleared", nil)
	}
}
