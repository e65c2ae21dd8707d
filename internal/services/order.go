package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/config"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/events"
	"github.com/knah1d/shopease/internal/metrics"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.OrderResponse, error)
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*models.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, id string, status string) (*models.OrderResponse, error)
	CancelOrder(ctx context.Context, id string, requester *models.Claims) (*models.OrderResponse, error)
}

type orderService struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	publisher events.Publisher
	notifier  NotificationService
	cfg       config.Orders
}

func NewOrderService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	publisher events.Publisher,
	notifier NotificationService,
	cfg config.Orders,
) OrderService {
	return &orderService{
		orders:    orders,
		users:     users,
		products:  products,
		publisher: publisher,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// CreateOrder prices every line from the catalog; the stock itself is reserved by the repository
// in the same transaction that stores the order.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	if len(req.OrderItems) == 0 {
		return nil, errors.AddValidationError("orderItems", "at least one item is required")
	}

	buyer, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, appError(err, "User not found", "Failed to load buyer")
	}

	if !buyer.Active {
		return nil, errors.ForbiddenError("Account is deactivated")
	}

	addr := req.DeliveryAddress

	address, err := models.NewDeliveryAddress(addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country)
	if err != nil {
		return nil, errors.ValidationError(err.Error()).WithError(err)
	}

	products := make([]*models.Product, 0, len(req.OrderItems))
	requested := make(map[string]int, len(req.OrderItems))

	for _, line := range req.OrderItems {
		product, err := s.products.GetProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, appError(err, "Product not found: "+line.ProductID, "Failed to load product")
		}

		if !product.Active {
			return nil, errors.StateConflictError(fmt.Sprintf("%s: %s", models.ErrProductInactive, product.ID))
		}

		requested[product.ID] += line.Quantity
		if requested[product.ID] > product.StockQuantity {
			return nil, appError(&models.InsufficientStockError{
				ProductID: product.ID,
				Available: product.StockQuantity,
				Requested: requested[product.ID],
			}, "Product not found", "Failed to check stock")
		}

		products = append(products, product)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = products[0].Price.Currency()
	}

	chargeAmount := decimal.Zero
	if req.DeliveryCharge != nil {
		chargeAmount = decimal.NewFromFloat(*req.DeliveryCharge)
	}

	deliveryCharge, err := models.NewMoney(chargeAmount, currency)
	if err != nil {
		return nil, errors.AddValidationError("deliveryCharge", err.Error())
	}

	paymentMethod := req.PaymentMethod
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = s.cfg.DefaultPaymentMethod
	}

	order, err := models.NewOrder(buyer.ID, address, paymentMethod, deliveryCharge)
	if err != nil {
		return nil, errors.ValidationError(err.Error()).WithError(err)
	}

	for i, line := range req.OrderItems {
		product := products[i]
		if product.Price.Currency() != currency {
			return nil, errors.StateConflictError(models.ErrCurrencyMismatch.Error())
		}

		if err := order.AddItem(product.ID, product.Name, line.Quantity, product.Price); err != nil {
			return nil, appError(err, "Order not found", "Failed to build order")
		}
	}

	total, err := order.CalculateTotalAmount()
	if err != nil {
		return nil, appError(err, "Order not found", "Failed to calculate order total")
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, appError(err, "Order not found", "Failed to create order")
	}

	metrics.OrdersCreated.Inc()
	logger.Info("Order created",
		slog.String("orderId", order.ID),
		slog.String("buyerId", buyer.ID),
		slog.String("total", total.String()))

	s.publish(ctx, order.ID, &models.OrderCreatedEvent{
		Type:        models.EventOrderCreated,
		OrderID:     order.ID,
		BuyerID:     buyer.ID,
		TotalAmount: total,
		ItemCount:   len(order.Items),
		Timestamp:   time.Now().UTC(),
	})

	s.sendConfirmation(ctx, buyer, order, total)

	return order, nil
}

func (s *orderService) sendConfirmation(ctx context.Context, buyer *models.User, order *models.Order, total models.Money) {
	_, err := s.notifier.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      buyer.Email,
		Subject: "Your ShopEase order " + order.ID,
		Content: fmt.Sprintf("Hi %s, we received your order %s with %d item(s). Total: %s. Delivering to %s.",
			buyer.Name, order.ID, len(order.Items), total, order.DeliveryAddress.FullAddress()),
		Metadata: map[string]string{"orderId": order.ID},
	})
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order confirmation email not sent",
			slog.String("orderId", order.ID), slog.Any("error", err))
	}
}

func (s *orderService) publish(ctx context.Context, orderID string, event any) {
	if err := s.publisher.Publish(ctx, orderID, event); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to publish order event",
			slog.String("orderId", orderID), slog.Any("error", err))
	}
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*models.OrderResponse, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, appError(err, "Order not found", "Failed to get order")
	}

	return toOrderResponse(order)
}

func (s *orderService) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*models.OrderResponse, error) {
	orders, err := s.orders.ListOrdersByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	responses := make([]*models.OrderResponse, 0, len(orders))

	for _, order := range orders {
		resp, err := toOrderResponse(order)
		if err != nil {
			return nil, err
		}

		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status string) (*models.OrderResponse, error) {
	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, errors.AddValidationError("status", "must be a known order status")
	}

	return s.transition(ctx, id, next)
}

// CancelOrder is the buyer-facing cancel; admins may cancel any order.
func (s *orderService) CancelOrder(ctx context.Context, id string, requester *models.Claims) (*models.OrderResponse, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, appError(err, "Order not found", "Failed to get order")
	}

	if order.BuyerID != requester.UserID && requester.Role != models.RoleAdmin {
		return nil, errors.ForbiddenError("You can only cancel your own orders")
	}

	if !order.CanBeCancelled() {
		return nil, errors.StateConflictError(fmt.Sprintf("Order in status %s can no longer be cancelled", order.Status))
	}

	return s.transition(ctx, id, models.OrderStatusCancelled)
}

func (s *orderService) transition(ctx context.Context, id string, next models.OrderStatus) (*models.OrderResponse, error) {
	order, previous, err := s.orders.UpdateOrderStatus(ctx, id, next)
	if err != nil {
		return nil, appError(err, "Order not found", "Failed to update order status")
	}

	metrics.OrderTransitions.WithLabelValues(string(previous), string(next)).Inc()
	middleware.LoggerFromContext(ctx).Info("Order status changed",
		slog.String("orderId", id),
		slog.String("from", string(previous)),
		slog.String("to", string(next)))

	s.publish(ctx, id, &models.OrderStatusChangedEvent{
		Type:      models.EventOrderStatusChanged,
		OrderID:   id,
		From:      previous,
		To:        next,
		Timestamp: time.Now().UTC(),
	})

	return toOrderResponse(order)
}

func toOrderResponse(order *models.Order) (*models.OrderResponse, error) {
	resp, err := models.NewOrderResponse(order)
	if err != nil {
		return nil, appError(err, "Order not found", "Failed to calculate order total")
	}

	return resp, nil
}
