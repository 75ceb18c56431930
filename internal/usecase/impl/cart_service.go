// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartManager is the cart of one session. Every operation on it runs with mu
// held, so operations of a session never interleave.
//
// Until the stored record has been loaded, changes are kept in pending and
// nothing is written back, so a failed load can never clobber the record.
type cartManager struct {
	mu       sync.Mutex
	cart     entity.Cart
	hydrated bool
	pending  []func(cart *entity.Cart)
}

// cartService implements the CartUsecase interface.
type cartService struct {
	catalogRepo repository.CatalogRepository
	cartRepo    repository.CartRepository
	localStore  repository.LocalCartRepository
	txManager   repository.TransactionManager
	logger      *slog.Logger

	mu       sync.Mutex
	managers map[string]*cartManager
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	CartRepo    repository.CartRepository
	LocalStore  repository.LocalCartRepository
	TxManager   repository.TransactionManager
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		catalogRepo: params.CatalogRepo,
		cartRepo:    params.CartRepo,
		localStore:  params.LocalStore,
		txManager:   params.TxManager,
		logger:      params.Logger,
		managers:    make(map[string]*cartManager),
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddItem reads the product from the catalog and adds it to the session's cart.
func (srv *cartService) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*entity.CartSummary, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	product, err := srv.catalogRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	return srv.mutate(ctx, sessionID, func(cart *entity.Cart) {
		cart.Add(*product, quantity)
	})
}

// UpdateQuantity replaces a line's quantity, removing it at zero or below.
func (srv *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*entity.CartSummary, error) {
	return srv.mutate(ctx, sessionID, func(cart *entity.Cart) {
		cart.SetQuantity(productID, quantity)
	})
}

// RemoveItem deletes a line if present.
func (srv *cartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*entity.CartSummary, error) {
	return srv.mutate(ctx, sessionID, func(cart *entity.Cart) {
		cart.Remove(productID)
	})
}

// Clear empties the session's cart.
func (srv *cartService) Clear(ctx context.Context, sessionID string) (*entity.CartSummary, error) {
	return srv.mutate(ctx, sessionID, func(cart *entity.Cart) {
		cart.Clear()
	})
}

// GetCart returns the session's cart with totals computed now.
func (srv *cartService) GetCart(ctx context.Context, sessionID string) (*entity.CartSummary, error) {
	manager := srv.manager(sessionID)
	manager.mu.Lock()
	defer manager.mu.Unlock()

	srv.hydrate(ctx, sessionID, manager)
	summary := manager.cart.Summarize()

	return &summary, nil
}

// Reconcile applies the remote-replaces-local policy. A missing or empty
// remote cart leaves the local cart as it is.
func (srv *cartService) Reconcile(ctx context.Context, sessionID string, userID uuid.UUID) (usecase.ReconcileOutcome, error) {
	manager := srv.manager(sessionID)
	manager.mu.Lock()
	defer manager.mu.Unlock()

	srv.hydrate(ctx, sessionID, manager)

	remote, err := srv.cartRepo.FindCartByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		srv.log(ctx).Debug("No remote cart, keeping local cart", slog.String("session_id", sessionID), slog.Any("user_id", userID))

		return usecase.ReconcileKeptLocalNotFound, nil
	}
	if err != nil {
		srv.log(ctx).Error("Failed to fetch remote cart", slog.String("session_id", sessionID), slog.Any("user_id", userID), slog.Any("error", err))

		return "", domainerrors.ErrCartSyncFailed.WrapMessage("failed to fetch remote cart")
	}

	if len(remote.Items) == 0 {
		return usecase.ReconcileKeptLocalEmpty, nil
	}

	srv.apply(ctx, sessionID, manager, func(cart *entity.Cart) {
		cart.Replace(remote.Items)
	})

	srv.log(ctx).Info("Local cart replaced by remote cart",
		slog.String("session_id", sessionID),
		slog.Any("user_id", userID),
		slog.Int("items", len(remote.Items)),
	)

	return usecase.ReconcileReplaced, nil
}

// Sync overwrites the remote item set with the local one, creating the
// remote cart when the user has none.
func (srv *cartService) Sync(ctx context.Context, sessionID string, userID uuid.UUID) error {
	manager := srv.manager(sessionID)
	manager.mu.Lock()
	defer manager.mu.Unlock()

	srv.hydrate(ctx, sessionID, manager)
	items := manager.cart.Snapshot()

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		remote, err := cartRepo.FindCartByUser(ctx, userID)
		if errors.Is(err, repository.ErrCartNotFound) {
			remote, err = cartRepo.CreateCart(ctx, userID)
		}
		if err != nil {
			return errors.Wrap(err, "failed to load remote cart")
		}

		return errors.Wrap(cartRepo.ReplaceItems(ctx, remote.ID, items), "failed to replace remote items")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to sync cart", slog.String("session_id", sessionID), slog.Any("user_id", userID), slog.Any("error", err))

		return domainerrors.ErrCartSyncFailed.WrapMessage("failed to sync cart")
	}

	srv.log(ctx).Debug("Cart synced", slog.String("session_id", sessionID), slog.Any("user_id", userID), slog.Int("items", len(items)))

	return nil
}

// Consume hands fn a copy of the cart while holding the session. The cart
// is cleared only when fn returns nil.
func (srv *cartService) Consume(ctx context.Context, sessionID string, fn usecase.ConsumeFunc) error {
	manager := srv.manager(sessionID)
	manager.mu.Lock()
	defer manager.mu.Unlock()

	srv.hydrate(ctx, sessionID, manager)

	if err := fn(ctx, manager.cart.Snapshot(), manager.cart.Total()); err != nil {
		return err
	}

	srv.apply(context.WithoutCancel(ctx), sessionID, manager, func(cart *entity.Cart) {
		cart.Clear()
	})

	return nil
}

func (srv *cartService) mutate(ctx context.Context, sessionID string, apply func(cart *entity.Cart)) (*entity.CartSummary, error) {
	manager := srv.manager(sessionID)
	manager.mu.Lock()
	defer manager.mu.Unlock()

	srv.hydrate(ctx, sessionID, manager)
	srv.apply(ctx, sessionID, manager, apply)

	summary := manager.cart.Summarize()

	return &summary, nil
}

func (srv *cartService) manager(sessionID string) *cartManager {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	manager, ok := srv.managers[sessionID]
	if !ok {
		manager = &cartManager{}
		srv.managers[sessionID] = manager
	}

	return manager
}

// hydrate loads the stored record until one load succeeds. Changes made
// while the record was unreadable are replayed on top of it and written back.
func (srv *cartService) hydrate(ctx context.Context, sessionID string, manager *cartManager) {
	if manager.hydrated {
		return
	}

	items, err := srv.localStore.Load(ctx, sessionID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load stored cart, will retry",
			slog.String("session_id", sessionID),
			slog.Int("pending_changes", len(manager.pending)),
			slog.Any("error", err),
		)

		return
	}

	manager.hydrated = true
	manager.cart.Replace(items)

	if len(manager.pending) == 0 {
		return
	}
	for _, change := range manager.pending {
		change(&manager.cart)
	}
	manager.pending = nil
	srv.persist(ctx, sessionID, manager)
}

// apply changes the in-memory cart and writes it through once hydrated.
func (srv *cartService) apply(ctx context.Context, sessionID string, manager *cartManager, change func(cart *entity.Cart)) {
	change(&manager.cart)

	if !manager.hydrated {
		manager.pending = append(manager.pending, change)

		return
	}

	srv.persist(ctx, sessionID, manager)
}

// persist writes the cart through to the local store. Failures are logged
// and never surface to the caller.
func (srv *cartService) persist(ctx context.Context, sessionID string, manager *cartManager) {
	if err := srv.localStore.Save(ctx, sessionID, manager.cart.Snapshot()); err != nil {
		srv.log(ctx).Warn("Failed to persist cart", slog.String("session_id", sessionID), slog.Any("error", err))
	}
}
