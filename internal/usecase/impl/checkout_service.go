package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	cartUC         usecase.CartUsecase
	orderRepo      repository.OrderRepository
	publisher      service.EventPublisher
	timeout        time.Duration
	inventoryMode  string
	publishEvents  bool
	defaultCountry string
	logger         *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	CartUC    usecase.CartUsecase
	OrderRepo repository.OrderRepository
	Publisher service.EventPublisher `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	srv := &checkoutService{
		cartUC:         params.CartUC,
		orderRepo:      params.OrderRepo,
		publisher:      params.Publisher,
		inventoryMode:  constants.InventoryModeOverwrite,
		defaultCountry: constants.DefaultCountry,
		logger:         params.Logger,
	}

	if cfg := params.Config.Checkout; cfg != nil {
		srv.timeout = cfg.Timeout
		srv.publishEvents = cfg.PublishEvents
		if cfg.InventoryMode != "" {
			srv.inventoryMode = cfg.InventoryMode
		}
		if cfg.DefaultCountry != "" {
			srv.defaultCountry = cfg.DefaultCountry
		}
	}

	return srv
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder runs the checkout sequence against the session's cart.
// Steps run strictly in order and the first failure stops the rest. Rows
// already written are not rolled back and the cart is kept for a retry.
func (srv *checkoutService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, domainerrors.ErrUnauthorized
	}
	if err := validateShippingAddress(input.Address); err != nil {
		return nil, err
	}

	// A client hanging up must not stop the sequence between steps. Only the
	// checkout timeout may end it early.
	ctx = context.WithoutCancel(ctx)
	if srv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, srv.timeout)
		defer cancel()
	}

	var order *entity.Order
	err := srv.cartUC.Consume(ctx, input.SessionID, func(ctx context.Context, items []entity.CartItem, total decimal.Decimal) error {
		if len(items) == 0 {
			return domainerrors.ErrEmptyCart
		}

		placed, err := srv.runSequence(ctx, input, items, total)
		if err != nil {
			return err
		}
		order = placed

		return nil
	})
	if err != nil {
		srv.logFailure(ctx, input, err)

		return nil, err
	}

	srv.log(ctx).Info("Order placed",
		slog.Any("order_id", order.ID),
		slog.Any("user_id", order.UserID),
		slog.String("total", order.Total.StringFixed(2)),
	)

	srv.publishOrderPlaced(ctx, order, input.RequestID)

	return order, nil
}

func (srv *checkoutService) runSequence(ctx context.Context, input *usecase.PlaceOrderInput, items []entity.CartItem, total decimal.Decimal) (*entity.Order, error) {
	address := srv.buildAddress(input)
	if err := srv.orderRepo.CreateAddress(ctx, address); err != nil {
		return nil, domainerrors.NewCheckoutError(domainerrors.CheckoutStepAddress, uuid.Nil, uuid.Nil, err)
	}

	// Total is taken once here and never recomputed.
	order := &entity.Order{
		UserID:    input.UserID,
		AddressID: address.ID,
		Total:     total,
		Status:    entity.OrderStatusPending,
	}
	if err := srv.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, domainerrors.NewCheckoutError(domainerrors.CheckoutStepOrder, address.ID, uuid.Nil, err)
	}

	orderItems := buildOrderItems(order.ID, items)
	if err := srv.orderRepo.CreateOrderItems(ctx, orderItems); err != nil {
		return nil, domainerrors.NewCheckoutError(domainerrors.CheckoutStepOrderItems, address.ID, order.ID, err)
	}

	for _, item := range items {
		if err := srv.adjustInventory(ctx, item); err != nil {
			return nil, domainerrors.NewCheckoutError(domainerrors.CheckoutStepInventory, address.ID, order.ID, err)
		}
	}

	order.Address = address
	order.Items = make([]entity.OrderItem, 0, len(orderItems))
	for _, item := range orderItems {
		order.Items = append(order.Items, *item)
	}

	return order, nil
}

// adjustInventory issues one update for a cart line. Overwrite mode writes
// the snapshot inventory minus the quantity without re-reading the product.
func (srv *checkoutService) adjustInventory(ctx context.Context, item entity.CartItem) error {
	if srv.inventoryMode == constants.InventoryModeConditional {
		return srv.orderRepo.DecrementProductInventory(ctx, item.Product.ID, item.Quantity)
	}

	return srv.orderRepo.UpdateProductInventory(ctx, item.Product.ID, item.Product.Inventory-item.Quantity)
}

func (srv *checkoutService) buildAddress(input *usecase.PlaceOrderInput) *entity.Address {
	country := strings.TrimSpace(input.Address.Country)
	if country == "" {
		country = srv.defaultCountry
	}

	return &entity.Address{
		UserID:     input.UserID,
		Street:     strings.TrimSpace(input.Address.Street),
		City:       strings.TrimSpace(input.Address.City),
		State:      strings.TrimSpace(input.Address.State),
		PostalCode: strings.TrimSpace(input.Address.PostalCode),
		Country:    country,
	}
}

// buildOrderItems copies quantity and unit price from the cart snapshot,
// keeping cart order as line order.
func buildOrderItems(orderID uuid.UUID, items []entity.CartItem) []*entity.OrderItem {
	orderItems := make([]*entity.OrderItem, 0, len(items))
	for position, item := range items {
		orderItems = append(orderItems, &entity.OrderItem{
			OrderID:     orderID,
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
			Position:    position,
		})
	}

	return orderItems
}

func validateShippingAddress(address usecase.ShippingAddress) error {
	fields := []struct{ name, value string }{
		{"street", address.Street},
		{"city", address.City},
		{"state", address.State},
		{"postal_code", address.PostalCode},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return domainerrors.ErrValidationFailed.WithDetails(field.name + " is required")
		}
	}

	return nil
}

func (srv *checkoutService) logFailure(ctx context.Context, input *usecase.PlaceOrderInput, err error) {
	var checkoutErr *domainerrors.CheckoutError
	if !errors.As(err, &checkoutErr) {
		srv.log(ctx).Warn("Checkout rejected", slog.String("session_id", input.SessionID), slog.Any("error", err))

		return
	}

	srv.log(ctx).Error("Checkout failed, earlier writes were kept",
		slog.String("session_id", input.SessionID),
		slog.Any("user_id", input.UserID),
		slog.String("step", string(checkoutErr.Step)),
		slog.Any("address_id", checkoutErr.AddressID),
		slog.Any("order_id", checkoutErr.OrderID),
		slog.Any("error", err),
	)
}

// publishOrderPlaced is best effort; the order stands whatever happens here.
func (srv *checkoutService) publishOrderPlaced(ctx context.Context, order *entity.Order, requestID string) {
	if !srv.publishEvents || srv.publisher == nil {
		return
	}

	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	event := &service.OrderPlacedEvent{
		RequestID: requestID,
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		Total:     order.Total.StringFixed(2),
		ItemCount: itemCount,
		PlacedAt:  order.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	if err := srv.publisher.PublishOrderPlaced(context.WithoutCancel(ctx), event); err != nil {
		srv.log(ctx).Warn("Failed to publish order placed event", slog.Any("order_id", order.ID), slog.Any("error", err))
	}
}
