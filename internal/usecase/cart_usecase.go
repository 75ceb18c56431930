// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconcileOutcome says what Reconcile did with the local cart.
type ReconcileOutcome string

const (
	// ReconcileReplaced means the remote items overwrote the local cart.
	ReconcileReplaced ReconcileOutcome = "replaced"
	// ReconcileKeptLocalNotFound means the user has no remote cart yet.
	ReconcileKeptLocalNotFound ReconcileOutcome = "kept_local_not_found"
	// ReconcileKeptLocalEmpty means the remote cart exists but has no items.
	ReconcileKeptLocalEmpty ReconcileOutcome = "kept_local_empty"
)

// ConsumeFunc receives a stable copy of the cart and its total. Returning nil
// lets the cart be cleared.
type ConsumeFunc func(ctx context.Context, items []entity.CartItem, total decimal.Decimal) error

// CartUsecase hosts one cart per storefront session.
type CartUsecase interface {
	// AddItem adds quantity units of an active catalog product.
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*entity.CartSummary, error)

	// UpdateQuantity sets a line's quantity; zero or below removes the line.
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*entity.CartSummary, error)

	// RemoveItem deletes a line if present.
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*entity.CartSummary, error)

	// Clear empties the cart.
	Clear(ctx context.Context, sessionID string) (*entity.CartSummary, error)

	// GetCart returns the items with freshly computed totals.
	GetCart(ctx context.Context, sessionID string) (*entity.CartSummary, error)

	// Reconcile overwrites the local cart with the user's remote cart when that
	// cart has items, and keeps the local cart otherwise.
	Reconcile(ctx context.Context, sessionID string, userID uuid.UUID) (ReconcileOutcome, error)

	// Sync replaces the remote cart's items with the local items.
	Sync(ctx context.Context, sessionID string, userID uuid.UUID) error

	// Consume runs fn with the session's cart held, and clears it only if fn succeeds.
	Consume(ctx context.Context, sessionID string, fn ConsumeFunc) error
}
