// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	SessionHandler  *handler.SessionHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	sessionHandler  *handler.SessionHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		sessionHandler:  params.SessionHandler,
		checkoutHandler: params.CheckoutHandler,
		orderHandler:    params.OrderHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Catalog browsing is public
	catalogGroup := apiV1.Group("/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/products/:slug", r.catalogHandler.GetProduct)
		catalogGroup.GET("/categories", r.catalogHandler.ListCategories)
	}

	// The local cart belongs to the session, signed in or not
	cartGroup := apiV1.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
		cartGroup.POST("/sync", r.cartHandler.SyncCart, r.authMiddleware.RequireUser)
	}

	sessionGroup := apiV1.Group("/session")
	{
		sessionGroup.POST("", r.sessionHandler.SignIn)
		sessionGroup.DELETE("", r.sessionHandler.SignOut)
		sessionGroup.GET("/me", r.sessionHandler.Me)
	}

	apiV1.POST("/checkout", r.checkoutHandler.PlaceOrder, r.authMiddleware.RequireUser)

	ordersGroup := apiV1.Group("/orders")
	ordersGroup.Use(r.authMiddleware.RequireUser)
	{
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/qr", r.orderHandler.GetOrderQR)
	}
}
