package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/utils"
	"github.com/knah1d/shopease/internal/utils/response"
)

// ResultPages are the storefront pages a browser lands on after a gateway callback.
type ResultPages struct {
	Success string
	Fail    string
	Cancel  string
}

type PaymentHandler struct {
	paymentService service.PaymentService
	pages          ResultPages
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService, pages ResultPages) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		pages:          pages,
		validator:      utils.NewValidator(),
	}
}

// InitiatePayment godoc
// @Summary Start a payment session for an order
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payment body models.PaymentInitiationRequest true "Payment details"
// @Success 200 {object} response.APIResponse{data=models.PaymentInitiationResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /payments/initiate [post]
func (h *PaymentHandler) InitiatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PaymentInitiationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.paymentService.InitiatePayment(r.Context(), &req)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		message := "Payment session created"
		if !resp.IsSuccessful() {
			message = "Payment initiation failed"
		}

		response.Success(w, http.StatusOK, message, resp)
	}
}

// Success handles the browser redirect the gateway issues after a completed payment.
func (h *PaymentHandler) Success() http.HandlerFunc {
	return h.callback(h.paymentService.HandleSuccess)
}

func (h *PaymentHandler) Fail() http.HandlerFunc {
	return h.callback(h.paymentService.HandleFailure)
}

func (h *PaymentHandler) Cancel() http.HandlerFunc {
	return h.callback(h.paymentService.HandleCancel)
}


type callbackFunc func(ctx context.Context, cb *models.PaymentCallback) (*models.Payment, error)

func parseCallback(r *http.Request) (*models.PaymentCallback, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	return &models.PaymentCallback{
		TransactionID:     r.PostForm.Get("tran_id"),
		ValidationID:      r.PostForm.Get("val_id"),
		Amount:            r.PostForm.Get("amount"),
		Currency:          r.PostForm.Get("currency"),
		Status:            r.PostForm.Get("status"),
		BankTransactionID: r.PostForm.Get("bank_tran_id"),
		Error:             r.PostForm.Get("error"),
	}, nil
}

func (h *PaymentHandler) callback(handle callbackFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		cb, err := parseCallback(r)
		if err != nil || cb.TransactionID == "" {
			logger.Warn("Malformed payment callback", slog.String("path", r.URL.Path))
			h.redirect(w, r, h.pages.Fail, "", "invalid callback")

			return
		}

		payment, err := handle(r.Context(), cb)
		if err != nil {
			logger.Error("Payment callback failed",
				slog.String("transactionId", cb.TransactionID), slog.String("error", err.Error()))
			h.redirect(w, r, h.pages.Fail, cb.TransactionID, err.Error())

			return
		}

		switch payment.Status {
		case models.PaymentStatusSuccess:
			h.redirect(w, r, h.pages.Success, payment.TransactionID, "")
		case models.PaymentStatusCancelled:
			h.redirect(w, r, h.pages.Cancel, payment.TransactionID, "")
		default:
			h.redirect(w, r, h.pages.Fail, payment.TransactionID, payment.FailureReason)
		}
	}
}

func (h *PaymentHandler) redirect(w http.ResponseWriter, r *http.Request, page, transactionID, reason string) {
	target, err := url.Parse(page)
	if err != nil {
		http.Error(w, "invalid result page", http.StatusInternalServerError)

		return
	}

	query := target.Query()
	if transactionID != "" {
		query.Set("tran_id", transactionID)
	}

	if reason != "" {
		query.Set("reason", reason)
	}

	target.RawQuery = query.Encode()

	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

// IPN acknowledges the gateway's server-to-server notification in plain text.
func (h *PaymentHandler) IPN() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cb, err := parseCallback(r)
		if err != nil || cb.TransactionID == "" {
			http.Error(w, "missing tran_id", http.StatusBadRequest)

			return
		}

		payment, err := h.paymentService.HandleIPN(r.Context(), cb)
		if err != nil {
			status := http.StatusInternalServerError
			if appErr, ok := errors.IsAppError(err); ok {
				status = appErr.StatusCode
			}

			http.Error(w, err.Error(), status)

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "IPN processed: %s", payment.Status)
	}
}

func (h *PaymentHandler) GetPaymentStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, ok := utils.PathID(r, w, "transactionId")
		if !ok {
			return
		}

		status, err := h.paymentService.GetPaymentStatus(r.Context(), transactionID)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Payment status retrieved", status)
	}
}

func (h *PaymentHandler) ListOrderPayments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, ok := utils.PathID(r, w, "orderId")
		if !ok {
			return
		}

		payments, err := h.paymentService.ListOrderPayments(r.Context(), orderID)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Payments retrieved", payments)
	}
}

// RefundPayment godoc
// @Summary Refund a settled payment in full or in part
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param transactionId path string true "Transaction ID"
// @Param refund body models.RefundRequest true "Refund amount and remarks"
// @Success 200 {object} response.APIResponse{data=models.Payment}
// @Failure 409 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /admin/payments/{transactionId}/refund [post]
func (h *PaymentHandler) RefundPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, ok := utils.PathID(r, w, "transactionId")
		if !ok {
			return
		}

		var req models.RefundRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		payment, err := h.paymentService.RefundPayment(r.Context(), transactionID, &req)
		if err != nil {
			response.Error(w, r, err)

			return
		}

		response.Success(w, http.StatusOK, "Refund processed", payment)
	}
}
