package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// LocalCartRepository keeps the single persisted record of a session's cart.
// Only the items are stored.
type LocalCartRepository interface {
	// Load returns the stored items, or an empty slice when nothing is stored.
	Load(ctx context.Context, sessionID string) ([]entity.CartItem, error)

	// Save overwrites the stored items.
	Save(ctx context.Context, sessionID string, items []entity.CartItem) error
}
