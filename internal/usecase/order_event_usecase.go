package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// OrderEventUsecase handles order events delivered by the push worker.
type OrderEventUsecase interface {
	// HandleOrderPlaced empties the buyer's remote cart.
	HandleOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error
}
