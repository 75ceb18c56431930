package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves the signed-in user's order history
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if orders == nil {
		orders = []*entity.Order{}
	}

	return response.Success(c, http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, orderID, ok, err := h.orderParams(c)
	if !ok {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// GetOrderQR handles GET /orders/:id/qr and returns a PNG image
func (h *OrderHandler) GetOrderQR(c echo.Context) error {
	userID, orderID, ok, err := h.orderParams(c)
	if !ok {
		return err
	}

	png, err := h.orderUC.GenerateOrderQR(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// orderParams reads the caller and the :id param. When ok is false the error
// response has already been written and err is what the handler returns.
func (h *OrderHandler) orderParams(c echo.Context) (userID, orderID uuid.UUID, ok bool, err error) {
	userID, ok = middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false, response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orderID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, false, response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order ID format")
	}

	return userID, orderID, true, nil
}
