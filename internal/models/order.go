package models

import (
	"fmt"
	"strings"
	"time"
)

const DefaultPaymentMethod = "CREDIT_CARD"

type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func NewDeliveryAddress(street, city, state, zipCode, country string) (DeliveryAddress, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"street", &street},
		{"city", &city},
		{"state", &state},
		{"zipCode", &zipCode},
		{"country", &country},
	}

	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return DeliveryAddress{}, validationErr("%s must not be empty", f.name)
		}
	}

	return DeliveryAddress{Street: street, City: city, State: state, ZipCode: zipCode, Country: country}, nil
}

func (a DeliveryAddress) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.ZipCode, a.Country)
}

type OrderItem struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unitPrice"`
	TotalPrice  Money  `json:"totalPrice"`
}

func NewOrderItem(orderID, productID, productName string, quantity int, unitPrice Money) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if !unitPrice.IsSet() {
		return nil, validationErr("unit price is required")
	}

	total, err := unitPrice.Multiply(quantity)
	if err != nil {
		return nil, err
	}

	return &OrderItem{
		ID:          NewID(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  total,
	}, nil
}

type Order struct {
	ID              string          `json:"id"`
	BuyerID         string          `json:"buyerId"`
	Items           []*OrderItem    `json:"items"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	DeliveryCharge  Money           `json:"deliveryCharge"`
	Status          OrderStatus     `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewOrder starts a PENDING order with no items.
func NewOrder(buyerID string, address DeliveryAddress, paymentMethod string, deliveryCharge Money) (*Order, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, validationErr("buyer id is required")
	}

	if !deliveryCharge.IsSet() {
		return nil, validationErr("delivery charge is required")
	}

	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	now := time.Now().UTC()

	return &Order{
		ID:              NewID(),
		BuyerID:         buyerID,
		Items:           []*OrderItem{},
		DeliveryAddress: address,
		PaymentMethod:   paymentMethod,
		DeliveryCharge:  deliveryCharge,
		Status:          OrderStatusPending,
		OrderDate:       now,
		UpdatedAt:       now,
	}, nil
}

func (o *Order) AddItem(productID, productName string, quantity int, unitPrice Money) error {
	if o.Status != OrderStatusPending {
		return ErrOrderNotModifiable
	}

	item, err := NewOrderItem(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, item)
	o.UpdatedAt = time.Now().UTC()

	return nil
}

// UpdateStatus applies next only when the transition table allows it.
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return &InvalidStateTransitionError{From: o.Status, To: next}
	}

	o.Status = next
	o.UpdatedAt = time.Now().UTC()

	return nil
}

func (o *Order) CalculateTotalAmount() (Money, error) {
	if len(o.Items) == 0 {
		return o.DeliveryCharge, nil
	}

	total := ZeroMoney(o.DeliveryCharge.Currency())

	for _, item := range o.Items {
		var err error

		total, err = total.Add(item.TotalPrice)
		if err != nil {
			return Money{}, err
		}
	}

	return total.Add(o.DeliveryCharge)
}

func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusDelivered
}

func (o *Order) Currency() string {
	return o.DeliveryCharge.Currency()
}

type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type DeliveryAddressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type CreateOrderRequest struct {
	UserID          string                 `json:"userId,omitempty"`
	OrderItems      []OrderLineRequest     `json:"orderItems" validate:"required,min=1,dive"`
	DeliveryAddress DeliveryAddressRequest `json:"deliveryAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod,omitempty" validate:"max=50"`
	DeliveryCharge  *float64               `json:"deliveryCharge,omitempty" validate:"omitempty,gte=0"`
	Currency        string                 `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderResponse struct {
	*Order
	TotalAmount Money  `json:"totalAmount"`
	Currency    string `json:"currency"`
	FullAddress string `json:"fullAddress"`
}

func NewOrderResponse(order *Order) (*OrderResponse, error) {
	total, err := order.CalculateTotalAmount()
	if err != nil {
		return nil, err
	}

	return &OrderResponse{
		Order:       order,
		TotalAmount: total,
		Currency:    order.Currency(),
		FullAddress: order.DeliveryAddress.FullAddress(),
	}, nil
}
