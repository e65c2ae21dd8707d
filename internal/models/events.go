package models

import "time"

const (
	EventOrderCreated         = "order.created"
	EventOrderStatusChanged   = "order.status_changed"
	EventPaymentStatusChanged = "payment.status_changed"
)

type OrderCreatedEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	BuyerID     string    `json:"buyerId"`
	TotalAmount Money     `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	Timestamp   time.Time `json:"timestamp"`
}

type OrderStatusChangedEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"orderId"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	Timestamp time.Time   `json:"timestamp"`
}

type PaymentStatusChangedEvent struct {
	Type          string        `json:"type"`
	TransactionID string        `json:"transactionId"`
	OrderID       string        `json:"orderId"`
	Status        PaymentStatus `json:"status"`
	Timestamp     time.Time     `json:"timestamp"`
}
