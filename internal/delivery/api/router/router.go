// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"rescue/internal/delivery/api/middleware"
	"rescue/internal/delivery/api/router/handler"
	"rescue/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	StatsHandler   *handler.StatsHandler
	DeviceHandler  *handler.DeviceHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	statsHandler   *handler.StatsHandler
	deviceHandler  *handler.DeviceHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		statsHandler:   params.StatsHandler,
		deviceHandler:  params.DeviceHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	authenticated := r.authMiddleware.Authenticate
	buyerOnly := r.authMiddleware.RequireRole(entity.RoleBuyer)
	sellerOnly := r.authMiddleware.RequireRole(entity.RoleSeller)
	adminOnly := r.authMiddleware.RequireRole(entity.RoleAdmin)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.GET("/me", r.authHandler.Me, authenticated)
	}

	// Admin account moderation
	usersGroup := api.Group("/users", authenticated, adminOnly)
	{
		usersGroup.GET("", r.userHandler.ListUsers)
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser)
		usersGroup.PATCH("/:id/block", r.userHandler.BlockUser)
		usersGroup.PATCH("/:id/verify", r.userHandler.VerifyUser)
	}

	// Marketplace is public, writes need a seller (or an admin for moderation)
	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.POST("", r.productHandler.AddProduct, authenticated, sellerOnly)
		productsGroup.PUT("/:id", r.productHandler.UpdateProduct, authenticated, r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
		productsGroup.DELETE("/:id", r.productHandler.RemoveProduct, authenticated, r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
	}

	sellerGroup := api.Group("/seller", authenticated, sellerOnly)
	{
		sellerGroup.GET("/products", r.productHandler.ListSellerProducts)
		sellerGroup.GET("/stats", r.statsHandler.SellerStats)
	}

	cartGroup := api.Group("/cart", authenticated, buyerOnly)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
	}

	ordersGroup := api.Group("/orders", authenticated)
	{
		ordersGroup.POST("/checkout", r.orderHandler.Checkout, buyerOnly)
		ordersGroup.POST("/pickup", r.orderHandler.CompletePickup, r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus)
		ordersGroup.GET("/:id/qr", r.orderHandler.PickupQR, buyerOnly)
	}

	api.GET("/stats", r.statsHandler.PlatformStats, authenticated, adminOnly)

	// Seller push devices
	devicesGroup := api.Group("/devices", authenticated, sellerOnly)
	{
		devicesGroup.POST("", r.deviceHandler.RegisterDevice)
		devicesGroup.GET("", r.deviceHandler.GetDevices)
		devicesGroup.PUT("/:id/token", r.deviceHandler.UpdateFCMToken)
		devicesGroup.DELETE("/:id", r.deviceHandler.DeactivateDevice)
	}
}
