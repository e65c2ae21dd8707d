package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/knah1d/shopease/internal/utils/response"
)

type OrderHandler struct {
	orderService   service.OrderService
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewOrderHandler(orderService service.OrderService, paymentService service.PaymentService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
		validator:      utils.NewValidator(),
	}
}

// CreateOrder godoc
// @Summary Place an order for the authenticated buyer
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Order lines and delivery address"
// @Success 201 {object} response.APIResponse{data=models.CreateOrderResponse}
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		// Only admins may place an order on behalf of another buyer.
		if req.UserID == "" || claims.Role != models.RoleAdmin {
			req.UserID = claims.UserID
		}

		order, err := h.orderService.CreateOrder(r.Context(), &req)
		if err != nil {
			logger.Warn("Order creation failed", slog.String("buyerID", req.UserID), slog.String("error", err.Error()))
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusCreated, "Order created successfully", models.CreateOrderResponse{OrderID: order.ID})
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		orderID, ok := utils.PathID(r, w, "orderId")
		if !ok {
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), orderID)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		if !claims.HasRole(models.RoleAdmin, models.RoleSeller, models.RoleBoth) && order.BuyerID != claims.UserID {
			response.Error(w, r, errors.ForbiddenError("You are not allowed to view this order"))

			return
		}

		response.Success(w, http.StatusOK, "Order retrieved successfully", order)
	}
}

func (h *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		userID, ok := utils.PathID(r, w, "userId")
		if !ok {
			return
		}

		if !canActFor(claims, userID) {
			response.Error(w, r, errors.ForbiddenError("You can only list your own orders"))

			return
		}

		orders, err := h.orderService.ListOrdersByBuyer(r.Context(), userID)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Orders retrieved successfully", orders)
	}
}

func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, ok := utils.PathID(r, w, "orderId")
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), orderID, req.Status)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Order status updated", order)
	}
}

func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		orderID, ok := utils.PathID(r, w, "orderId")
		if !ok {
			return
		}

		order, err := h.orderService.CancelOrder(r.Context(), orderID, claims)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Order cancelled", order)
	}
}

// InitiatePayment starts an SSLCommerz session for the order. The body is optional.
func (h *OrderHandler) InitiatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		orderID, ok := utils.PathID(r, w, "orderId")
		if !ok {
			return
		}

		var req models.OrderPaymentRequest
		if r.ContentLength > 0 && !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.paymentService.InitiateOrderPayment(r.Context(), orderID, claims, &req)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		if !resp.IsSuccessful() {
			response.Success(w, http.StatusOK, "Payment initiation failed", resp)

			return
		}

		response.Success(w, http.StatusOK, "Payment session created", resp)
	}
}
