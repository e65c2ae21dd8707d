package main

import (
	"net/http"

	"github.com/knah1d/shopease/internal/api/handlers"
	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/config"
	"github.com/knah1d/shopease/internal/models"
	service "github.com/knah1d/shopease/internal/services"
)

type services struct {
	user         service.UserService
	admin        service.AdminService
	category     service.CategoryService
	product      service.ProductService
	cart         service.CartService
	order        service.OrderService
	payment      service.PaymentService
	notification service.NotificationService
}

func registerRoutes(mux *http.ServeMux, svc *services, auth *middleware.AuthMiddleware, gatewayCfg config.SSLCommerz) {
	userHandler := handlers.NewUserHandler(svc.user)
	adminHandler := handlers.NewAdminHandler(svc.admin)
	categoryHandler := handlers.NewCategoryHandler(svc.category)
	productHandler := handlers.NewProductHandler(svc.product)
	cartHandler := handlers.NewCartHandler(svc.cart)
	orderHandler := handlers.NewOrderHandler(svc.order, svc.payment)
	paymentHandler := handlers.NewPaymentHandler(svc.payment, handlers.ResultPages{
		Success: gatewayCfg.ResultSuccessPage,
		Fail:    gatewayCfg.ResultFailPage,
		Cancel:  gatewayCfg.ResultCancelPage,
	})
	notificationHandler := handlers.NewNotificationHandler(svc.notification)

	sellers := func(h http.Handler) http.HandlerFunc {
		return auth.RequireRole(h, models.RoleSeller, models.RoleBoth, models.RoleAdmin)
	}
	admins := func(h http.Handler) http.HandlerFunc {
		return auth.RequireRole(h, models.RoleAdmin)
	}

	// Users
	mux.HandleFunc("POST /api/users/register", userHandler.Register())
	mux.HandleFunc("POST /api/users/login", userHandler.Login())
	mux.HandleFunc("GET /api/users/profile/{userId}", auth.Authenticate(userHandler.Profile()))

	// Products
	mux.HandleFunc("POST /api/products/createProduct", sellers(productHandler.CreateProduct()))
	mux.HandleFunc("GET /api/products/getAllProducts", productHandler.ListProducts())
	mux.HandleFunc("GET /api/products/search", productHandler.SearchProducts())
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct())
	mux.HandleFunc("PUT /api/products/{id}/price", sellers(productHandler.UpdatePrice()))
	mux.HandleFunc("PUT /api/products/{id}/stock", sellers(productHandler.UpdateStock()))
	mux.HandleFunc("POST /api/products/{id}/stock/reduce", sellers(productHandler.ReduceStock()))
	mux.HandleFunc("PUT /api/products/{id}/activate", sellers(productHandler.SetActive(true)))
	mux.HandleFunc("PUT /api/products/{id}/deactivate", sellers(productHandler.SetActive(false)))

	// Cart
	mux.HandleFunc("GET /api/cart", auth.Authenticate(cartHandler.GetCart()))
	mux.HandleFunc("DELETE /api/cart", auth.Authenticate(cartHandler.ClearCart()))
	mux.HandleFunc("POST /api/cart/items", auth.Authenticate(cartHandler.AddItem()))
	mux.HandleFunc("PUT /api/cart/items/{productId}", auth.Authenticate(cartHandler.UpdateItem()))
	mux.HandleFunc("DELETE /api/cart/items/{productId}", auth.Authenticate(cartHandler.RemoveItem()))

	// Orders
	mux.HandleFunc("POST /api/orders", auth.Authenticate(orderHandler.CreateOrder()))
	mux.HandleFunc("GET /api/orders/{orderId}", auth.Authenticate(orderHandler.GetOrder()))
	mux.HandleFunc("GET /api/orders/user/{userId}", auth.Authenticate(orderHandler.ListUserOrders()))
	mux.HandleFunc("PUT /api/orders/{orderId}/status", sellers(orderHandler.UpdateOrderStatus()))
	mux.HandleFunc("POST /api/orders/{orderId}/cancel", auth.Authenticate(orderHandler.CancelOrder()))
	mux.HandleFunc("POST /api/orders/{orderId}/payment", auth.Authenticate(orderHandler.InitiatePayment()))

	// Payments; gateway callbacks are unauthenticated form posts.
	mux.HandleFunc("POST /api/payments/initiate", auth.Authenticate(paymentHandler.InitiatePayment()))
	mux.HandleFunc("POST /api/payments/success", paymentHandler.Success())
	mux.HandleFunc("POST /api/payments/fail", paymentHandler.Fail())
	mux.HandleFunc("POST /api/payments/cancel", paymentHandler.Cancel())
	mux.HandleFunc("POST /api/payments/ipn", paymentHandler.IPN())
	mux.HandleFunc("GET /api/payments/status/{transactionId}", paymentHandler.GetPaymentStatus())
	mux.HandleFunc("GET /api/payments/order/{orderId}", auth.Authenticate(paymentHandler.ListOrderPayments()))

	// Admin
	mux.HandleFunc("POST /api/admin/categories", admins(categoryHandler.CreateCategory()))
	mux.HandleFunc("GET /api/admin/categories", admins(categoryHandler.ListCategories()))
	mux.HandleFunc("GET /api/admin/categories/active", admins(categoryHandler.ListActiveCategories()))
	mux.HandleFunc("GET /api/admin/categories/name/{name}", admins(categoryHandler.GetCategoryByName()))
	mux.HandleFunc("GET /api/admin/categories/{id}", admins(categoryHandler.GetCategory()))
	mux.HandleFunc("PUT /api/admin/categories/{id}", admins(categoryHandler.UpdateCategory()))
	mux.HandleFunc("DELETE /api/admin/categories/{id}", admins(categoryHandler.DeleteCategory()))
	mux.HandleFunc("PUT /api/admin/categories/{id}/activate", admins(categoryHandler.ActivateCategory()))
	mux.HandleFunc("GET /api/admin/users", admins(adminHandler.ListUsers()))
	mux.HandleFunc("GET /api/admin/users/customers", admins(adminHandler.ListCustomers()))
	mux.HandleFunc("GET /api/admin/users/sellers", admins(adminHandler.ListSellers()))
	mux.HandleFunc("PUT /api/admin/users/{userId}/role", admins(adminHandler.UpdateUserRole()))
	mux.HandleFunc("PUT /api/admin/users/{userId}/activate", admins(adminHandler.SetUserActive(true)))
	mux.HandleFunc("PUT /api/admin/users/{userId}/deactivate", admins(adminHandler.SetUserActive(false)))
	mux.HandleFunc("GET /api/admin/dashboard/stats", admins(adminHandler.DashboardStats()))
	mux.HandleFunc("POST /api/admin/payments/{transactionId}/refund", admins(paymentHandler.RefundPayment()))

	// Notifications
	mux.HandleFunc("GET /api/notifications", auth.Authenticate(notificationHandler.ListNotifications()))
}
