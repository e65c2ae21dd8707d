package models

import (
	"strings"
	"time"
)

type CartItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   Money  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
}

func NewCartItem(productID, productName string, unitPrice Money, quantity int) (*CartItem, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, validationErr("product name must not be empty")
	}

	if !unitPrice.IsSet() {
		return nil, validationErr("unit price is required")
	}

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	return &CartItem{
		ID:          NewID(),
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

func (i *CartItem) UpdateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	i.Quantity = quantity

	return nil
}

func (i *CartItem) IncreaseQuantity(by int) error {
	if by <= 0 {
		return ErrInvalidQuantity
	}

	i.Quantity += by

	return nil
}

func (i *CartItem) TotalPrice() (Money, error) {
	return i.UnitPrice.Multiply(i.Quantity)
}

// Cart keeps its items in insertion order and holds at most one line per product.
type Cart struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func NewCart(userID string) *Cart {
	now := time.Now().UTC()

	return &Cart{
		ID:        NewID(),
		UserID:    userID,
		Items:     []*CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) findItem(productID string) (int, *CartItem) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i, item
		}
	}

	return -1, nil
}

// AddItem merges into an existing line for the same product; the original price snapshot is kept.
func (c *Cart) AddItem(productID, productName string, unitPrice Money, quantity int) error {
	if _, existing := c.findItem(productID); existing != nil {
		if err := existing.IncreaseQuantity(quantity); err != nil {
			return err
		}

		c.touch()

		return nil
	}

	item, err := NewCartItem(productID, productName, unitPrice, quantity)
	if err != nil {
		return err
	}

	c.Items = append(c.Items, item)
	c.touch()

	return nil
}

func (c *Cart) RemoveItem(productID string) {
	idx, _ := c.findItem(productID)
	if idx < 0 {
		return
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch()
}

// UpdateItemQuantity removes the line when quantity <= 0.
func (c *Cart) UpdateItemQuantity(productID string, quantity int) error {
	_, item := c.findItem(productID)
	if item == nil {
		return ErrItemNotFound
	}

	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}

	if err := item.UpdateQuantity(quantity); err != nil {
		return err
	}

	c.touch()

	return nil
}

func (c *Cart) Clear() {
	c.Items = []*CartItem{}
	c.touch()
}

func (c *Cart) Item(productID string) (*CartItem, bool) {
	_, item := c.findItem(productID)
	return item, item != nil
}

// Total sums every line. An empty cart totals zero in defaultCurrency.
func (c *Cart) Total(defaultCurrency string) (Money, error) {
	if len(c.Items) == 0 {
		return ZeroMoney(defaultCurrency), nil
	}

	total := ZeroMoney(c.Items[0].UnitPrice.Currency())

	for _, item := range c.Items {
		line, err := item.TotalPrice()
		if err != nil {
			return Money{}, err
		}

		total, err = total.Add(line)
		if err != nil {
			return Money{}, err
		}
	}

	return total, nil
}

func (c *Cart) TotalItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

type CartResponse struct {
	*Cart
	Total          Money `json:"total"`
	TotalItemCount int   `json:"totalItemCount"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
