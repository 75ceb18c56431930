// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when a user has no remote cart yet. It is a
// normal outcome for reconciliation, not a failure.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository is the remote copy of a signed-in user's cart.
type CartRepository interface {
	// FindCartByUser returns the cart with its items in insertion order.
	// Item products are the live catalog rows at read time.
	FindCartByUser(ctx context.Context, userID uuid.UUID) (*entity.RemoteCart, error)

	// CreateCart creates an empty cart for the user.
	CreateCart(ctx context.Context, userID uuid.UUID) (*entity.RemoteCart, error)

	// ReplaceItems deletes every item of the cart and inserts items in order.
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []entity.CartItem) error
}
