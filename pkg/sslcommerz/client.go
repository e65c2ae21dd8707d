// Package sslcommerz is a minimal client for the SSLCommerz hosted payment gateway:
// session initiation, order validation and refunds.
package sslcommerz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	sessionPath    = "/gwprocess/v4/api.php"
	validationPath = "/validator/api/validationserverAPI.php"
	refundPath     = "/validator/api/merchantTransIDvalidationAPI.php"

	maxResponseBytes = 1 << 20
)

var ErrUnavailable = errors.New("payment gateway unavailable")

type Config struct {
	StoreID       string
	StorePassword string
	BaseURL       string
	Timeout       time.Duration
	SuccessURL    string
	FailURL       string
	CancelURL     string
	IPNURL        string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "sslcommerz",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Available reports whether the breaker currently lets calls through.
func (c *Client) Available() bool {
	return c.breaker.State() != gobreaker.StateOpen
}

type SessionRequest struct {
	TransactionID   string
	TotalAmount     decimal.Decimal
	Currency        string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	CustomerCity    string
	CustomerPost    string
	CustomerCountry string
	ProductName     string
	ProductCategory string
	ProductProfile  string
	NumOfItems      int
}

type SessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

func (r *SessionResponse) Successful() bool {
	return strings.EqualFold(r.Status, "SUCCESS") && r.GatewayPageURL != ""
}

func (c *Client) sessionForm(req *SessionRequest) url.Values {
	form := url.Values{}
	form.Set("store_id", c.cfg.StoreID)
	form.Set("store_passwd", c.cfg.StorePassword)
	form.Set("total_amount", req.TotalAmount.StringFixed(2))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", c.cfg.SuccessURL)
	form.Set("fail_url", c.cfg.FailURL)
	form.Set("cancel_url", c.cfg.CancelURL)
	form.Set("ipn_url", c.cfg.IPNURL)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("cus_add1", orDefault(req.CustomerAddress, "Customer Address"))
	form.Set("cus_city", orDefault(req.CustomerCity, "Dhaka"))
	form.Set("cus_postcode", orDefault(req.CustomerPost, "1000"))
	form.Set("cus_country", orDefault(req.CustomerCountry, "Bangladesh"))
	form.Set("product_name", orDefault(req.ProductName, "Order "+req.TransactionID))
	form.Set("product_category", orDefault(req.ProductCategory, "General"))
	form.Set("product_profile", orDefault(req.ProductProfile, "general"))
	form.Set("shipping_method", "NO")
	form.Set("num_of_item", fmt.Sprint(max(req.NumOfItems, 1)))

	return form
}

// InitiateSession opens a hosted checkout session. A non-SUCCESS gateway answer is
// returned as a response, not an error; errors mean the gateway could not be reached
// or answered with something unreadable.
func (c *Client) InitiateSession(ctx context.Context, req *SessionRequest) (*SessionResponse, error) {
	body, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+sessionPath,
			strings.NewReader(c.sessionForm(req).Encode()))
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		return httpReq, nil
	})
	if err != nil {
		return nil, err
	}

	var resp SessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}

	return &resp, nil
}

type ValidationResponse struct {
	Status            string          `json:"status"`
	TransactionID     string          `json:"tran_id"`
	ValidationID      string          `json:"val_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	BankTransactionID string          `json:"bank_tran_id"`
	CardType          string          `json:"card_type"`
	CardBrand         string          `json:"card_brand"`
	RiskLevel         string          `json:"risk_level"`
}

func (r *ValidationResponse) Valid() bool {
	return strings.EqualFold(r.Status, "VALID") || strings.EqualFold(r.Status, "VALIDATED")
}

func (c *Client) ValidateTransaction(ctx context.Context, validationID string) (*ValidationResponse, error) {
	query := url.Values{}
	query.Set("val_id", validationID)
	query.Set("store_id", c.cfg.StoreID)
	query.Set("store_passwd", c.cfg.StorePassword)
	query.Set("format", "json")

	body, err := c.get(ctx, validationPath, query)
	if err != nil {
		return nil, err
	}

	var resp ValidationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse validation response: %w", err)
	}

	return &resp, nil
}

type RefundRequest struct {
	BankTransactionID string
	Amount            decimal.Decimal
	Remarks           string
	ReferenceID       string
}

type RefundResponse struct {
	APIConnect        string `json:"APIConnect"`
	BankTransactionID string `json:"bank_tran_id"`
	TransactionID     string `json:"trans_id"`
	RefundRefID       string `json:"refund_ref_id"`
	Status            string `json:"status"`
	ErrorReason       string `json:"errorReason"`
}

// Accepted is true when the gateway took the refund, whether settled or still processing.
func (r *RefundResponse) Accepted() bool {
	return strings.EqualFold(r.APIConnect, "DONE") &&
		(strings.EqualFold(r.Status, "success") || strings.EqualFold(r.Status, "processing"))
}

func (c *Client) InitiateRefund(ctx context.Context, req *RefundRequest) (*RefundResponse, error) {
	query := url.Values{}
	query.Set("bank_tran_id", req.BankTransactionID)
	query.Set("refund_amount", req.Amount.StringFixed(2))
	query.Set("refund_remarks", req.Remarks)
	query.Set("refe_id", req.ReferenceID)
	query.Set("store_id", c.cfg.StoreID)
	query.Set("store_passwd", c.cfg.StorePassword)
	query.Set("format", "json")

	body, err := c.get(ctx, refundPath, query)
	if err != nil {
		return nil, err
	}

	var resp RefundResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse refund response: %w", err)
	}

	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+query.Encode(), nil)
	})
}

func (c *Client) do(ctx context.Context, build func(context.Context) (*http.Request, error)) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build gateway request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("gateway request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read gateway response: %w", err)
		}

		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("gateway responded with status %d", resp.StatusCode)
		}

		return body, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return body, err
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}
