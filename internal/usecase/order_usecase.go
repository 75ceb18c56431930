package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase reads a user's order history.
type OrderUsecase interface {
	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder returns one of the user's orders. Orders of other users are reported as not found.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// GenerateOrderQR returns a PNG QR code linking to the order.
	GenerateOrderQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)
}
