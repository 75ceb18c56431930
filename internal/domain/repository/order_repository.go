package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientInventory is returned by a conditional decrement that would go below zero.
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// OrderRepository writes the rows produced by checkout and reads order history.
// Each write is independent; callers decide about transactions.
type OrderRepository interface {
	// CreateAddress persists a shipping address and sets its ID and CreatedAt.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// CreateOrder persists an order header and sets its ID and timestamps.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// CreateOrderItems persists order lines and sets their IDs.
	CreateOrderItems(ctx context.Context, items []*entity.OrderItem) error

	// UpdateProductInventory sets a product's inventory to an absolute value.
	UpdateProductInventory(ctx context.Context, productID uuid.UUID, inventory int) error

	// DecrementProductInventory subtracts quantity only if enough stock remains.
	// Returns ErrInsufficientInventory otherwise.
	DecrementProductInventory(ctx context.Context, productID uuid.UUID, quantity int) error

	// FindOrdersByUser returns the user's orders with items, newest first.
	FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindOrderByID returns an order with its items and address.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
}
