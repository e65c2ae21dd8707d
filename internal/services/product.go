package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/cache"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/metrics"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListActiveProducts(ctx context.Context) ([]*models.Product, error)
	SearchProducts(ctx context.Context, name, category string) ([]*models.Product, error)
	UpdatePrice(ctx context.Context, id string, req *models.UpdatePriceRequest) (*models.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error)
	ReduceStock(ctx context.Context, id string, quantity int) (*models.Product, error)
	SetActive(ctx context.Context, id string, active bool) (*models.Product, error)
}

type productService struct {
	repo            repository.ProductRepository
	categories      repository.CategoryRepository
	cache           cache.Cache
	cacheTTL        time.Duration
	defaultCurrency string
	textPolicy      *bluemonday.Policy
	sfg             singleflight.Group
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, productCache cache.Cache, cacheTTL time.Duration, defaultCurrency string) ProductService {
	return &productService{
		repo:            repo,
		categories:      categories,
		cache:           productCache,
		cacheTTL:        cacheTTL,
		defaultCurrency: defaultCurrency,
		textPolicy:      bluemonday.StrictPolicy(),
	}
}

func (s *productService) money(amount float64, currency string) (models.Money, error) {
	if currency == "" {
		currency = s.defaultCurrency
	}

	return models.NewMoney(decimal.NewFromFloat(amount), currency)
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	category, err := s.categories.GetCategoryByName(ctx, strings.TrimSpace(req.Category))
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.AddValidationError("category", "does not exist")
		}

		return nil, errors.DatabaseError("Failed to verify category").WithError(err)
	}

	if !category.Active {
		return nil, errors.AddValidationError("category", "is not active")
	}

	price, err := s.money(req.Price, req.Currency)
	if err != nil {
		return nil, errors.AddValidationError("price", err.Error())
	}

	stock := 0
	if req.StockQuantity != nil {
		stock = *req.StockQuantity
	}

	product, err := models.NewProduct(
		req.ID,
		req.Name,
		s.textPolicy.Sanitize(req.Description),
		price,
		stock,
		models.CategoryName(category.Name),
		req.ImageURL,
	)
	if err != nil {
		return nil, errors.ValidationError(err.Error()).WithError(err)
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appError(err, "Product not found", "Failed to create product")
	}

	logger.Info("Product created", slog.String("productId", product.ID), slog.String("category", product.Category.String()))

	return product, nil
}

// GetProduct reads through the cache; concurrent misses for one id share a single database load.
func (s *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("productId", id), slog.Any("error", err))
	}

	metrics.RecordCacheLookup(found)

	if found {
		return &cached, nil
	}

	v, err, _ := s.sfg.Do(key, func() (any, error) {
		product, err := s.repo.GetProductByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, key, product, s.cacheTTL); err != nil {
			logger.Warn("Product cache write failed", slog.String("productId", id), slog.Any("error", err))
		}

		return product, nil
	})
	if err != nil {
		return nil, appError(err, "Product not found", "Failed to get product")
	}

	return v.(*models.Product), nil
}

func (s *productService) ListActiveProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, nil
}

// SearchProducts prefers the category filter, then the name filter, and otherwise lists every active product.
func (s *productService) SearchProducts(ctx context.Context, name, category string) ([]*models.Product, error) {
	var (
		products []*models.Product
		err      error
	)

	switch {
	case strings.TrimSpace(category) != "":
		products, err = s.repo.SearchByCategory(ctx, strings.TrimSpace(category))
	case strings.TrimSpace(name) != "":
		products, err = s.repo.SearchByName(ctx, strings.TrimSpace(name))
	default:
		products, err = s.repo.ListActiveProducts(ctx)
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to search products").WithError(err)
	}

	return products, nil
}

func (s *productService) UpdatePrice(ctx context.Context, id string, req *models.UpdatePriceRequest) (*models.Product, error) {
	return s.mutate(ctx, id, func(p *models.Product) error {
		currency := req.Currency
		if currency == "" {
			currency = p.Price.Currency()
		}

		price, err := s.money(req.Price, currency)
		if err != nil {
			return err
		}

		return p.UpdatePrice(price)
	})
}

func (s *productService) UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error) {
	return s.mutate(ctx, id, func(p *models.Product) error {
		return p.UpdateStock(stock)
	})
}

func (s *productService) ReduceStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	return s.mutate(ctx, id, func(p *models.Product) error {
		return p.ReduceStock(quantity)
	})
}

func (s *productService) SetActive(ctx context.Context, id string, active bool) (*models.Product, error) {
	return s.mutate(ctx, id, func(p *models.Product) error {
		if active {
			p.Activate()
		} else {
			p.Deactivate()
		}

		return nil
	})
}

// mutate applies change to the locked row, persists it and evicts the cached copy.
func (s *productService) mutate(ctx context.Context, id string, change func(*models.Product) error) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	product, err := s.repo.UpdateProduct(ctx, id, change)
	if err != nil {
		return nil, appError(err, "Product not found", "Failed to update product")
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id)); err != nil {
		logger.Warn("Product cache eviction failed", slog.String("productId", id), slog.Any("error", err))
	}

	logger.Info("Product updated", slog.String("productId", id))

	return product, nil
}
