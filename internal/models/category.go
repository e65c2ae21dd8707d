package models

import (
	"strings"
	"time"
)

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCategory(name, description, imageURL string) (*Category, error) {
	categoryName, err := NewCategoryName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Category{
		ID:          NewID(),
		Name:        categoryName.String(),
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (c *Category) Update(name, description, imageURL string) error {
	categoryName, err := NewCategoryName(name)
	if err != nil {
		return err
	}

	c.Name = categoryName.String()
	c.Description = strings.TrimSpace(description)
	c.ImageURL = strings.TrimSpace(imageURL)
	c.UpdatedAt = time.Now().UTC()

	return nil
}

func (c *Category) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now().UTC()
}

func (c *Category) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now().UTC()
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}
