package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.CartResponse, error)
	AddToCart(ctx context.Context, userID string, req *models.AddToCartRequest) (*models.CartResponse, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartResponse, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (*models.CartResponse, error)
	ClearCart(ctx context.Context, userID string) error
}

type cartService struct {
	repo            repository.CartRepository
	products        repository.ProductRepository
	defaultCurrency string
}

func NewCartService(repo repository.CartRepository, products repository.ProductRepository, defaultCurrency string) CartService {
	return &cartService{repo: repo, products: products, defaultCurrency: defaultCurrency}
}

func (s *cartService) response(cart *models.Cart) (*models.CartResponse, error) {
	total, err := cart.Total(s.defaultCurrency)
	if err != nil {
		return nil, appError(err, "Cart not found", "Failed to calculate cart total")
	}

	return &models.CartResponse{Cart: cart, Total: total, TotalItemCount: cart.TotalItemCount()}, nil
}

func (s *cartService) load(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, appError(err, "Cart not found", "Failed to get cart")
	}

	return cart, nil
}

// availableProduct checks the product can supply wanted units in total. An inactive product has none available.
func (s *cartService) availableProduct(ctx context.Context, productID string, wanted int) (*models.Product, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, appError(err, "Product not found", "Failed to get product")
	}

	available := product.StockQuantity
	if !product.Active {
		available = 0
	}

	if wanted > available {
		return nil, appError(&models.InsufficientStockError{
			ProductID: product.ID,
			Available: available,
			Requested: wanted,
		}, "Product not found", "Failed to check stock")
	}

	return product, nil
}

func (s *cartService) save(ctx context.Context, cart *models.Cart) (*models.CartResponse, error) {
	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, appError(err, "Cart not found", "Failed to save cart")
	}

	return s.response(cart)
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*models.CartResponse, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.response(cart)
}

// AddToCart creates the cart on first use and snapshots the product's current price into new lines.
func (s *cartService) AddToCart(ctx context.Context, userID string, req *models.AddToCartRequest) (*models.CartResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if !stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.DatabaseError("Failed to get cart").WithError(err)
		}

		cart = models.NewCart(userID)
	}

	wanted := req.Quantity
	if existing, ok := cart.Item(req.ProductID); ok {
		wanted += existing.Quantity
	}

	product, err := s.availableProduct(ctx, req.ProductID, wanted)
	if err != nil {
		return nil, err
	}

	if !cart.IsEmpty() && cart.Items[0].UnitPrice.Currency() != product.Price.Currency() {
		return nil, errors.StateConflictError(models.ErrCurrencyMismatch.Error())
	}

	if err := cart.AddItem(product.ID, product.Name, product.Price, req.Quantity); err != nil {
		return nil, appError(err, "Cart not found", "Failed to add item to cart")
	}

	resp, err := s.save(ctx, cart)
	if err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", slog.String("productId", product.ID), slog.Int("quantity", req.Quantity))

	return resp, nil
}

// UpdateItemQuantity removes the line when quantity <= 0.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartResponse, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, ok := cart.Item(productID); !ok {
		return nil, appError(models.ErrItemNotFound, "Item not found in cart", "Failed to update cart")
	}

	if quantity > 0 {
		if _, err := s.availableProduct(ctx, productID, quantity); err != nil {
			return nil, err
		}
	}

	if err := cart.UpdateItemQuantity(productID, quantity); err != nil {
		return nil, appError(err, "Cart not found", "Failed to update cart")
	}

	return s.save(ctx, cart)
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID string) (*models.CartResponse, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	return s.save(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	cart.Clear()

	_, err = s.save(ctx, cart)

	return err
}
