package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ShippingAddress is the address form submitted at checkout.
type ShippingAddress struct {
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"omitempty,max=100"`
}

// PlaceOrderInput is everything checkout needs besides the cart itself.
type PlaceOrderInput struct {
	SessionID string
	UserID    uuid.UUID
	Address   ShippingAddress
	RequestID string
}

// CheckoutUsecase turns a session's cart into a persisted order.
type CheckoutUsecase interface {
	// PlaceOrder writes address, order, order items and inventory in that order.
	// The cart is cleared only when every step succeeds.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)
}
