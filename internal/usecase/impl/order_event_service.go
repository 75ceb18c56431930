package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderEventService implements the OrderEventUsecase interface.
type orderEventService struct {
	cartRepo repository.CartRepository
	logger   *slog.Logger
}

// NewOrderEventService is the constructor for orderEventService.
func NewOrderEventService(cartRepo repository.CartRepository, logger *slog.Logger) usecase.OrderEventUsecase {
	return &orderEventService{
		cartRepo: cartRepo,
		logger:   logger,
	}
}

func (srv *orderEventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HandleOrderPlaced empties the buyer's remote cart so a later sign-in does
// not bring purchased items back. A cart changed after the order was placed
// is left alone.
func (srv *orderEventService) HandleOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid user_id")
	}

	cart, err := srv.cartRepo.FindCartByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		srv.log(ctx).Debug("No remote cart to clear", slog.String("order_id", event.OrderID), slog.Any("user_id", userID))

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find remote cart")
	}

	if placedAt, parseErr := time.Parse(time.RFC3339Nano, event.PlacedAt); parseErr == nil && cart.UpdatedAt.After(placedAt) {
		srv.log(ctx).Info("Remote cart changed after order, leaving it", slog.String("order_id", event.OrderID), slog.Any("cart_id", cart.ID))

		return nil
	}

	if len(cart.Items) == 0 {
		return nil
	}

	if err := srv.cartRepo.ReplaceItems(ctx, cart.ID, nil); err != nil {
		return errors.Wrap(err, "failed to clear remote cart")
	}

	srv.log(ctx).Info("Remote cart cleared after order", slog.String("order_id", event.OrderID), slog.Any("cart_id", cart.ID))

	return nil
}
