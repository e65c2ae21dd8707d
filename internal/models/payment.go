package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusProcessing        PaymentStatus = "PROCESSING"
	PaymentStatusSuccess           PaymentStatus = "SUCCESS"
	PaymentStatusFailed            PaymentStatus = "FAILED"
	PaymentStatusCancelled         PaymentStatus = "CANCELLED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

const GatewaySSLCommerz = "SSLCOMMERZ"

// IsFinal is true once the gateway outcome is known; later callbacks must not change it.
func (s PaymentStatus) IsFinal() bool {
	switch s {
	case PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled,
		PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}

	return false
}

func (s PaymentStatus) IsRefundable() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusPartiallyRefunded
}

type Payment struct {
	ID                   string          `json:"id"`
	TransactionID        string          `json:"transactionId"`
	OrderID              string          `json:"orderId"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Status               PaymentStatus   `json:"status"`
	GatewayType          string          `json:"gatewayType"`
	SessionKey           string          `json:"-"`
	GatewayTransactionID string          `json:"gatewayTransactionId,omitempty"`
	BankTransactionID    string          `json:"bankTransactionId,omitempty"`
	ValidationID         string          `json:"-"`
	CardType             string          `json:"cardType,omitempty"`
	CardBrand            string          `json:"cardBrand,omitempty"`
	GatewayResponse      string          `json:"-"`
	FailureReason        string          `json:"failureReason,omitempty"`
	RefundedAmount       decimal.Decimal `json:"refundedAmount"`
	RefundRefID          string          `json:"refundRefId,omitempty"`
	CustomerName         string          `json:"customerName"`
	CustomerEmail        string          `json:"customerEmail"`
	CustomerPhone        string          `json:"customerPhone"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// NewTransactionID returns TXN<unix millis>_<8 hex chars>.
func NewTransactionID(now time.Time) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("TXN%d_%s", now.UnixMilli(), NewID()[:8])
	}

	return fmt.Sprintf("TXN%d_%s", now.UnixMilli(), hex.EncodeToString(suffix))
}

func NewPayment(orderID string, amount Money, customerName, customerEmail, customerPhone string) *Payment {
	now := time.Now().UTC()

	return &Payment{
		ID:             NewID(),
		TransactionID:  NewTransactionID(now),
		OrderID:        orderID,
		Amount:         amount.Amount(),
		Currency:       amount.Currency(),
		Status:         PaymentStatusPending,
		GatewayType:    GatewaySSLCommerz,
		RefundedAmount: decimal.Zero,
		CustomerName:   customerName,
		CustomerEmail:  customerEmail,
		CustomerPhone:  customerPhone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type PaymentInitiationRequest struct {
	OrderID          string  `json:"orderId" validate:"required"`
	Amount           float64 `json:"amount" validate:"required,gte=0.01"`
	Currency         string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	CustomerName     string  `json:"customerName" validate:"required"`
	CustomerEmail    string  `json:"customerEmail" validate:"required,email"`
	CustomerPhone    string  `json:"customerPhone" validate:"required,min=10,max=16,e164|numeric"`
	CustomerAddress  string  `json:"customerAddress,omitempty"`
	CustomerCity     string  `json:"customerCity,omitempty"`
	CustomerCountry  string  `json:"customerCountry,omitempty"`
	CustomerPostcode string  `json:"customerPostcode,omitempty"`
	ProductName      string  `json:"productName,omitempty"`
	ProductCategory  string  `json:"productCategory,omitempty"`
	ProductProfile   string  `json:"productProfile,omitempty"`
}

// OrderPaymentRequest carries optional billing overrides; amount and contact come from the order and buyer.
type OrderPaymentRequest struct {
	CustomerPhone    string `json:"customerPhone,omitempty"`
	CustomerAddress  string `json:"customerAddress,omitempty"`
	CustomerCity     string `json:"customerCity,omitempty"`
	CustomerCountry  string `json:"customerCountry,omitempty"`
	CustomerPostcode string `json:"customerPostcode,omitempty"`
}

type PaymentInitiationResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedReason,omitempty"`
	SessionKey     string `json:"sessionKey,omitempty"`
	GatewayPageURL string `json:"gatewayPageUrl,omitempty"`
	TransactionID  string `json:"transactionId"`
	OrderID        string `json:"orderId"`
}

func (r *PaymentInitiationResponse) IsSuccessful() bool {
	return r.Status == "SUCCESS"
}

type PaymentStatusResponse struct {
	TransactionID string          `json:"transactionId"`
	OrderID       string          `json:"orderId"`
	Status        PaymentStatus   `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type RefundRequest struct {
	Amount  *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Remarks string   `json:"remarks" validate:"required,max=255"`
}

// PaymentCallback is the form the gateway posts to the success, fail, cancel and IPN endpoints.
type PaymentCallback struct {
	TransactionID     string
	ValidationID      string
	Amount            string
	Currency          string
	Status            string
	BankTransactionID string
	Error             string
}
