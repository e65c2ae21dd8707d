package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryName is the value object a product uses to reference its category.
type CategoryName string

func NewCategoryName(name string) (CategoryName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationErr("category name must not be empty")
	}

	return CategoryName(name), nil
}

func (c CategoryName) String() string {
	return string(c)
}

type Product struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Price         Money        `json:"price"`
	StockQuantity int          `json:"stockQuantity"`
	Category      CategoryName `json:"category"`
	ImageURL      string       `json:"imageUrl,omitempty"`
	Active        bool         `json:"active"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func NewID() string {
	return uuid.NewString()
}

// NewProduct validates the attribute set and returns an active product.
// An empty id is replaced by a generated one.
func NewProduct(id, name, description string, price Money, stock int, category CategoryName, imageURL string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("product name must not be empty")
	}

	if !price.IsSet() {
		return nil, validationErr("product price is required")
	}

	if stock < 0 {
		return nil, validationErr("stock quantity must be zero or greater")
	}

	if category == "" {
		return nil, validationErr("product category is required")
	}

	if id == "" {
		id = NewID()
	}

	now := time.Now().UTC()

	return &Product{
		ID:            id,
		Name:          name,
		Description:   strings.TrimSpace(description),
		Price:         price,
		StockQuantity: stock,
		Category:      category,
		ImageURL:      strings.TrimSpace(imageURL),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *Product) UpdatePrice(price Money) error {
	if !price.IsSet() {
		return validationErr("product price is required")
	}

	p.Price = price
	p.touch()

	return nil
}

func (p *Product) UpdateStock(stock int) error {
	if stock < 0 {
		return validationErr("stock quantity must be zero or greater")
	}

	p.StockQuantity = stock
	p.touch()

	return nil
}

func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if quantity > p.StockQuantity {
		return validationErr("cannot reduce stock by %d, only %d available", quantity, p.StockQuantity)
	}

	p.StockQuantity -= quantity
	p.touch()

	return nil
}

func (p *Product) Activate() {
	p.Active = true
	p.touch()
}

func (p *Product) Deactivate() {
	p.Active = false
	p.touch()
}

func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

func (p *Product) IsAvailable() bool {
	return p.Active && p.IsInStock()
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}

type CreateProductRequest struct {
	ID            string  `json:"id,omitempty" validate:"omitempty,max=64"`
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description,omitempty" validate:"max=5000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Currency      string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	StockQuantity *int    `json:"stockQuantity" validate:"required,gte=0"`
	Category      string  `json:"category" validate:"required"`
	ImageURL      string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type UpdatePriceRequest struct {
	Price    float64 `json:"price" validate:"required,gt=0"`
	Currency string  `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type UpdateStockRequest struct {
	StockQuantity *int `json:"stockQuantity" validate:"required,gte=0"`
}

type ReduceStockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
