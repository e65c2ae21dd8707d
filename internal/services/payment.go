package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/events"
	"github.com/knah1d/shopease/internal/metrics"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
	"github.com/knah1d/shopease/pkg/sslcommerz"
	"github.com/shopspring/decimal"
)

// PaymentGateway is the part of the SSLCommerz client the payment flow depends on.
type PaymentGateway interface {
	InitiateSession(ctx context.Context, req *sslcommerz.SessionRequest) (*sslcommerz.SessionResponse, error)
	ValidateTransaction(ctx context.Context, validationID string) (*sslcommerz.ValidationResponse, error)
	InitiateRefund(ctx context.Context, req *sslcommerz.RefundRequest) (*sslcommerz.RefundResponse, error)
}

type PaymentService interface {
	InitiateOrderPayment(ctx context.Context, orderID string, requester *models.Claims, req *models.OrderPaymentRequest) (*models.PaymentInitiationResponse, error)
	InitiatePayment(ctx context.Context, req *models.PaymentInitiationRequest) (*models.PaymentInitiationResponse, error)
	HandleSuccess(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error)
	HandleIPN(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error)
	HandleFailure(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error)
	HandleCancel(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error)
	GetPaymentStatus(ctx context.Context, transactionID string) (*models.PaymentStatusResponse, error)
	ListOrderPayments(ctx context.Context, orderID string) ([]*models.Payment, error)
	RefundPayment(ctx context.Context, transactionID string, req *models.RefundRequest) (*models.Payment, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	users     repository.UserRepository
	orders    OrderService
	gateway   PaymentGateway
	publisher events.Publisher
}

func NewPaymentService(
	repo repository.PaymentRepository,
	users repository.UserRepository,
	orders OrderService,
	gateway PaymentGateway,
	publisher events.Publisher,
) PaymentService {
	return &paymentService{
		repo:      repo,
		users:     users,
		orders:    orders,
		gateway:   gateway,
		publisher: publisher,
	}
}

type customer struct {
	name, email, phone             string
	address, city, country, postal string
}

// InitiateOrderPayment charges the order total to the buyer's own contact details.
func (s *paymentService) InitiateOrderPayment(ctx context.Context, orderID string, requester *models.Claims, req *models.OrderPaymentRequest) (*models.PaymentInitiationResponse, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != requester.UserID && requester.Role != models.RoleAdmin {
		return nil, errors.ForbiddenError("You can only pay for your own orders")
	}

	if order.Status != models.OrderStatusPending {
		return nil, errors.StateConflictError(fmt.Sprintf("Order in status %s is not awaiting payment", order.Status))
	}

	buyer, err := s.users.GetUserByID(ctx, order.BuyerID)
	if err != nil {
		return nil, appError(err, "User not found", "Failed to load buyer")
	}

	c := customer{name: buyer.Name, email: buyer.Email, phone: buyer.Phone}
	if req != nil {
		if req.CustomerPhone != "" {
			c.phone = req.CustomerPhone
		}

		c.address, c.city, c.country, c.postal = req.CustomerAddress, req.CustomerCity, req.CustomerCountry, req.CustomerPostcode
	}

	return s.initiate(ctx, order, c, "", "", "")
}

// InitiatePayment is the generic entry point; the submitted amount must match the order total exactly.
func (s *paymentService) InitiatePayment(ctx context.Context, req *models.PaymentInitiationRequest) (*models.PaymentInitiationResponse, error) {
	order, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	amount := decimal.NewFromFloat(req.Amount).Round(2)
	if !amount.Equal(order.TotalAmount.Amount()) {
		return nil, errors.AddValidationError("amount", "must equal the order total of "+order.TotalAmount.String())
	}

	if req.Currency != "" && !strings.EqualFold(req.Currency, order.TotalAmount.Currency()) {
		return nil, errors.AddValidationError("currency", "must be "+order.TotalAmount.Currency())
	}

	c := customer{
		name:    req.CustomerName,
		email:   req.CustomerEmail,
		phone:   req.CustomerPhone,
		address: req.CustomerAddress,
		city:    req.CustomerCity,
		country: req.CustomerCountry,
		postal:  req.CustomerPostcode,
	}

	return s.initiate(ctx, order, c, req.ProductName, req.ProductCategory, req.ProductProfile)
}

func (s *paymentService) initiate(ctx context.Context, order *models.OrderResponse, c customer, productName, productCategory, productProfile string) (*models.PaymentInitiationResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	payment := models.NewPayment(order.ID, order.TotalAmount, c.name, c.email, c.phone)

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, appError(err, "Payment not found", "Failed to create payment")
	}

	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	session, err := s.gateway.InitiateSession(ctx, &sslcommerz.SessionRequest{
		TransactionID:   payment.TransactionID,
		TotalAmount:     payment.Amount,
		Currency:        payment.Currency,
		CustomerName:    c.name,
		CustomerEmail:   c.email,
		CustomerPhone:   c.phone,
		CustomerAddress: c.address,
		CustomerCity:    c.city,
		CustomerPost:    c.postal,
		CustomerCountry: c.country,
		ProductName:     productName,
		ProductCategory: productCategory,
		ProductProfile:  productProfile,
		NumOfItems:      itemCount,
	})

	resp := &models.PaymentInitiationResponse{TransactionID: payment.TransactionID, OrderID: order.ID}

	if err != nil || !session.Successful() {
		reason := "gateway did not open a session"

		switch {
		case err != nil:
			reason = err.Error()
		case session.FailedReason != "":
			reason = session.FailedReason
		}

		logger.Warn("Payment initiation failed",
			slog.String("transactionId", payment.TransactionID), slog.String("reason", reason))

		payment.Status = models.PaymentStatusFailed
		payment.FailureReason = reason
		if session != nil {
			payment.GatewayResponse = rawJSON(session)
		}

		s.save(ctx, payment, models.PaymentStatusPending)

		resp.Status = string(models.PaymentStatusFailed)
		resp.FailedReason = reason

		return resp, nil
	}

	payment.Status = models.PaymentStatusPending
	payment.SessionKey = session.SessionKey
	payment.GatewayResponse = rawJSON(session)
	s.save(ctx, payment, models.PaymentStatusPending)

	logger.Info("Payment session opened",
		slog.String("transactionId", payment.TransactionID), slog.String("orderId", order.ID))

	resp.Status = "SUCCESS"
	resp.SessionKey = session.SessionKey
	resp.GatewayPageURL = session.GatewayPageURL

	return resp, nil
}

func (s *paymentService) HandleSuccess(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	return s.validate(ctx, cb)
}

// HandleIPN routes gateway notifications by their reported status; anything else is validated.
func (s *paymentService) HandleIPN(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	switch strings.ToUpper(cb.Status) {
	case "FAILED", "EXPIRED", "UNATTEMPTED":
		return s.HandleFailure(ctx, cb)
	case "CANCELLED":
		return s.HandleCancel(ctx, cb)
	default:
		return s.validate(ctx, cb)
	}
}

func (s *paymentService) HandleFailure(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	reason := cb.Error
	if reason == "" {
		reason = "Payment failed at gateway"
	}

	payment, err := s.lookup(ctx, cb.TransactionID)
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, payment, func(p *models.Payment) {
		p.Status = models.PaymentStatusFailed
		p.FailureReason = reason
	})
}

func (s *paymentService) HandleCancel(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	payment, err := s.lookup(ctx, cb.TransactionID)
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, payment, func(p *models.Payment) {
		p.Status = models.PaymentStatusCancelled
		p.FailureReason = "Payment cancelled by customer"
	})
}

// validate confirms a callback with the gateway validation API before marking the payment paid.
// An unreachable validator leaves the payment untouched so the IPN retry can settle it.
func (s *paymentService) validate(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error) {
	payment, err := s.lookup(ctx, cb.TransactionID)
	if err != nil {
		return nil, err
	}

	if payment.Status.IsFinal() {
		return payment, nil
	}

	if cb.ValidationID == "" {
		return s.settle(ctx, payment, func(p *models.Payment) {
			p.Status = models.PaymentStatusFailed
			p.FailureReason = "missing validation id"
		})
	}

	validation, err := s.gateway.ValidateTransaction(ctx, cb.ValidationID)
	if err != nil {
		return nil, errors.ThirdPartyError("Payment validation unavailable").WithError(err)
	}

	problem := ""

	switch {
	case !validation.Valid():
		problem = "gateway validation status " + validation.Status
	case validation.TransactionID != "" && validation.TransactionID != payment.TransactionID:
		problem = "validated transaction does not match"
	case !validation.Amount.Round(2).Equal(payment.Amount.Round(2)):
		problem = fmt.Sprintf("validated amount %s does not match %s", validation.Amount.StringFixed(2), payment.Amount.StringFixed(2))
	case validation.Currency != "" && !strings.EqualFold(validation.Currency, payment.Currency):
		problem = "validated currency does not match"
	}

	if problem != "" {
		return s.settle(ctx, payment, func(p *models.Payment) {
			p.Status = models.PaymentStatusFailed
			p.FailureReason = problem
			p.GatewayResponse = rawJSON(validation)
		})
	}

	settled, err := s.settle(ctx, payment, func(p *models.Payment) {
		p.Status = models.PaymentStatusSuccess
		p.ValidationID = validation.ValidationID
		p.BankTransactionID = validation.BankTransactionID
		p.CardType = validation.CardType
		p.CardBrand = validation.CardBrand
		p.GatewayResponse = rawJSON(validation)
	})
	if err != nil {
		return nil, err
	}

	if settled.Status == models.PaymentStatusSuccess {
		s.advanceOrder(ctx, settled.OrderID, models.OrderStatusConfirmed, func(current models.OrderStatus) bool {
			return current == models.OrderStatusPending
		})
	}

	return settled, nil
}

// settle applies change to a non-final payment. When another callback got there first, the stored payment is returned unchanged.
func (s *paymentService) settle(ctx context.Context, payment *models.Payment, change func(*models.Payment)) (*models.Payment, error) {
	if payment.Status.IsFinal() {
		return payment, nil
	}

	previous := payment.Status
	change(payment)

	updated, err := s.repo.UpdatePayment(ctx, payment, models.PaymentStatusPending, models.PaymentStatusProcessing)
	if err != nil {
		return nil, appError(err, "Payment not found", "Failed to update payment")
	}

	if !updated {
		return s.lookup(ctx, payment.TransactionID)
	}

	s.recordOutcome(ctx, payment, previous)

	return payment, nil
}

func (s *paymentService) lookup(ctx context.Context, transactionID string) (*models.Payment, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, errors.AddValidationError("tran_id", "is required")
	}

	payment, err := s.repo.GetPaymentByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, appError(err, "Payment not found", "Failed to get payment")
	}

	return payment, nil
}

// save persists an initiation outcome; failures are logged because the gateway answer is already final.
func (s *paymentService) save(ctx context.Context, payment *models.Payment, from ...models.PaymentStatus) {
	updated, err := s.repo.UpdatePayment(ctx, payment, from...)
	if err != nil || !updated {
		middleware.LoggerFromContext(ctx).Error("Failed to store payment initiation outcome",
			slog.String("transactionId", payment.TransactionID), slog.Bool("updated", updated), slog.Any("error", err))

		return
	}

	s.recordOutcome(ctx, payment, models.PaymentStatusPending)
}

func (s *paymentService) recordOutcome(ctx context.Context, payment *models.Payment, previous models.PaymentStatus) {
	metrics.PaymentOutcomes.WithLabelValues(string(payment.Status)).Inc()
	middleware.LoggerFromContext(ctx).Info("Payment status changed",
		slog.String("transactionId", payment.TransactionID),
		slog.String("from", string(previous)),
		slog.String("to", string(payment.Status)))

	event := &models.PaymentStatusChangedEvent{
		Type:          models.EventPaymentStatusChanged,
		TransactionID: payment.TransactionID,
		OrderID:       payment.OrderID,
		Status:        payment.Status,
		Timestamp:     time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, payment.OrderID, event); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to publish payment event",
			slog.String("transactionId", payment.TransactionID), slog.Any("error", err))
	}
}

// advanceOrder moves the order to next when its current status satisfies when.
func (s *paymentService) advanceOrder(ctx context.Context, orderID string, next models.OrderStatus, when func(models.OrderStatus) bool) {
	logger := middleware.LoggerFromContext(ctx)

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		logger.Error("Failed to load order after payment", slog.String("orderId", orderID), slog.Any("error", err))
		return
	}

	if !when(order.Status) {
		logger.Warn("Order not advanced after payment",
			slog.String("orderId", orderID), slog.String("status", string(order.Status)))

		return
	}

	if _, err := s.orders.UpdateOrderStatus(ctx, orderID, string(next)); err != nil {
		logger.Error("Failed to advance order after payment", slog.String("orderId", orderID), slog.Any("error", err))
	}
}

func (s *paymentService) GetPaymentStatus(ctx context.Context, transactionID string) (*models.PaymentStatusResponse, error) {
	payment, err := s.lookup(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return &models.PaymentStatusResponse{
		TransactionID: payment.TransactionID,
		OrderID:       payment.OrderID,
		Status:        payment.Status,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		CreatedAt:     payment.CreatedAt,
	}, nil
}

func (s *paymentService) ListOrderPayments(ctx context.Context, orderID string) ([]*models.Payment, error) {
	payments, err := s.repo.ListPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list payments").WithError(err)
	}

	return payments, nil
}

// RefundPayment refunds the requested amount, or everything not yet refunded when no amount is given.
func (s *paymentService) RefundPayment(ctx context.Context, transactionID string, req *models.RefundRequest) (*models.Payment, error) {
	logger := middleware.LoggerFromContext(ctx)

	payment, err := s.lookup(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !payment.Status.IsRefundable() {
		return nil, errors.StateConflictError(fmt.Sprintf("Payment in status %s cannot be refunded", payment.Status))
	}

	if payment.BankTransactionID == "" {
		return nil, errors.StateConflictError("Payment has no bank transaction to refund")
	}

	remaining := payment.Amount.Sub(payment.RefundedAmount)

	amount := remaining
	if req.Amount != nil {
		amount = decimal.NewFromFloat(*req.Amount).Round(2)
	}

	if !amount.IsPositive() || amount.GreaterThan(remaining) {
		return nil, errors.AddValidationError("amount", "must be greater than zero and at most "+remaining.StringFixed(2))
	}

	refund, err := s.gateway.InitiateRefund(ctx, &sslcommerz.RefundRequest{
		BankTransactionID: payment.BankTransactionID,
		Amount:            amount,
		Remarks:           req.Remarks,
		ReferenceID:       payment.TransactionID,
	})
	if err != nil {
		return nil, errors.ThirdPartyError("Refund request failed").WithError(err)
	}

	if !refund.Accepted() {
		return nil, errors.ThirdPartyError("Refund rejected by gateway").WithDetail(refund.ErrorReason)
	}

	previous := payment.Status
	payment.RefundedAmount = payment.RefundedAmount.Add(amount)
	payment.RefundRefID = refund.RefundRefID

	payment.Status = models.PaymentStatusPartiallyRefunded
	if payment.RefundedAmount.GreaterThanOrEqual(payment.Amount) {
		payment.Status = models.PaymentStatusRefunded
	}

	updated, err := s.repo.UpdatePayment(ctx, payment, models.PaymentStatusSuccess, models.PaymentStatusPartiallyRefunded)
	if err != nil {
		return nil, appError(err, "Payment not found", "Failed to update payment")
	}

	if !updated {
		return nil, errors.StateConflictError("Payment was modified concurrently")
	}

	s.recordOutcome(ctx, payment, previous)
	logger.Info("Payment refunded",
		slog.String("transactionId", payment.TransactionID),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("refundRefId", refund.RefundRefID))

	if payment.Status == models.PaymentStatusRefunded {
		s.advanceOrder(ctx, payment.OrderID, models.OrderStatusRefunded, func(current models.OrderStatus) bool {
			return current.CanTransitionTo(models.OrderStatusRefunded)
		})
	}

	return payment, nil
}

func rawJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return string(data)
}
