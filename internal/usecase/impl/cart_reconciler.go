package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// CartReconciler runs cart reconciliation when a session signs in.
type CartReconciler struct {
	cartUC      usecase.CartUsecase
	logger      *slog.Logger
	unsubscribe func()
}

// CartReconcilerParams holds dependencies for RegisterCartReconciler, injected by Fx.
type CartReconcilerParams struct {
	fx.In
	fx.Lifecycle

	Notifier service.AuthStateNotifier
	CartUC   usecase.CartUsecase
	Logger   *slog.Logger
}

// NewCartReconciler is the constructor for CartReconciler.
func NewCartReconciler(cartUC usecase.CartUsecase, logger *slog.Logger) *CartReconciler {
	return &CartReconciler{
		cartUC: cartUC,
		logger: logger,
	}
}

// RegisterCartReconciler subscribes a reconciler for the application's lifetime.
func RegisterCartReconciler(params CartReconcilerParams) {
	reconciler := NewCartReconciler(params.CartUC, params.Logger)

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			reconciler.Subscribe(params.Notifier)

			return nil
		},
		OnStop: func(context.Context) error {
			reconciler.Close()

			return nil
		},
	})
}

// Subscribe starts listening to notifier.
func (r *CartReconciler) Subscribe(notifier service.AuthStateNotifier) {
	r.unsubscribe = notifier.OnAuthStateChange(r.HandleAuthStateChange)
}

// Close stops listening.
func (r *CartReconciler) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// HandleAuthStateChange reconciles on SIGNED_IN and ignores every other event.
func (r *CartReconciler) HandleAuthStateChange(ctx context.Context, event entity.AuthEvent, session entity.Session) {
	if event != entity.AuthEventSignedIn || !session.IsAuthenticated() {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, r.logger)

	outcome, err := r.cartUC.Reconcile(ctx, session.ID, session.UserID)
	if err != nil {
		logger.Warn("Cart reconciliation failed, local cart kept",
			slog.String("session_id", session.ID),
			slog.Any("user_id", session.UserID),
			slog.Any("error", err),
		)

		return
	}

	logger.Info("Cart reconciled",
		slog.String("session_id", session.ID),
		slog.Any("user_id", session.UserID),
		slog.String("outcome", string(outcome)),
	)
}
