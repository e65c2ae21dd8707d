package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/cache"
	"github.com/knah1d/shopease/internal/config"
	"github.com/knah1d/shopease/internal/events"
	"github.com/knah1d/shopease/internal/health"
	"github.com/knah1d/shopease/internal/metrics"
	repository "github.com/knah1d/shopease/internal/repositories"
	service "github.com/knah1d/shopease/internal/services"
	"github.com/knah1d/shopease/internal/telemetry"
	"github.com/knah1d/shopease/pkg/sendgrid"
	"github.com/knah1d/shopease/pkg/sslcommerz"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	shutdownTracer, err := telemetry.InitTracerProvider(context.Background(), cfg.Otel, version)
	if err != nil {
		slog.Error("Failed to initialise tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	orderEvents, paymentEvents := newPublishers(cfg.Kafka)
	defer orderEvents.Close()
	defer paymentEvents.Close()

	var emailService sendgrid.EmailService = sendgrid.NoopEmailService{}
	if cfg.SendGrid.Enabled {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	gateway := sslcommerz.NewClient(sslcommerz.Config{
		StoreID:       cfg.SSLCommerz.StoreID,
		StorePassword: cfg.SSLCommerz.StorePassword,
		BaseURL:       cfg.SSLCommerz.APIURL,
		Timeout:       cfg.SSLCommerz.Timeout,
		SuccessURL:    cfg.SSLCommerz.SuccessURL,
		FailURL:       cfg.SSLCommerz.FailURL,
		CancelURL:     cfg.SSLCommerz.CancelURL,
		IPNURL:        cfg.SSLCommerz.IPNURL,
	})

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	notificationService := service.NewNotificationService(repos.Notification, emailService)
	orderService := service.NewOrderService(repos.Order, repos.User, repos.Product, orderEvents, notificationService, cfg.Orders)

	svc := &services{
		user:     service.NewUserService(repos.User, repository.NewRateLimitRepo(redisClient, cfg.RateConfig), jwtKey, tokenTTL),
		admin:    service.NewAdminService(repos.User, repos.Stats),
		category: service.NewCategoryService(repos.Category),
		product: service.NewProductService(repos.Product, repos.Category,
			cache.NewRedisCache(redisClient, cfg.Cache), cfg.Cache.DefaultTTL, cfg.Orders.DefaultCurrency),
		cart:         service.NewCartService(repos.Cart, repos.Product, cfg.Orders.DefaultCurrency),
		order:        orderService,
		payment:      service.NewPaymentService(repos.Payment, repos.User, orderService, gateway, paymentEvents),
		notification: notificationService,
	}

	healthHandler, err := health.NewHealthHandler(cfg, version, &health.Endpoints{Gateway: gateway})
	if err != nil {
		slog.Error("Failed to create health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux := http.NewServeMux()
	registerRoutes(routerMux, svc, middleware.NewAuthMiddleware(jwtKey), cfg.SSLCommerz)
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	var handler http.Handler = metrics.Middleware(routerMux)
	handler = telemetry.WithHTTPRoute(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "shopease")

	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr), slog.String("env", cfg.Env), slog.String("version", version))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("Failed to flush traces", slog.String("error", err.Error()))
	}
}

func newPublishers(cfg config.Kafka) (events.Publisher, events.Publisher) {
	if !cfg.Enabled {
		return events.NoopPublisher{}, events.NoopPublisher{}
	}

	return events.NewKafkaPublisher(cfg.Brokers, cfg.OrderEventsTopic),
		events.NewKafkaPublisher(cfg.Brokers, cfg.PaymentEventsTopic)
}
