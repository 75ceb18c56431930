package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	orderRepo *mockRepo.MockOrderRepository
	qrService *mockSvc.MockQRCodeService
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	qrService := mockSvc.NewMockQRCodeService(t)

	return orderServiceFixtures{
		service:   NewOrderService(orderRepo, qrService, discardLogger()),
		orderRepo: orderRepo,
		qrService: qrService,
	}
}

func TestOrderService_ListOrders_KeepsCapturedPrices(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newTestProduct("mug", "12.00", 3)

	orders := []*entity.Order{{
		ID:     uuid.New(),
		UserID: userID,
		Status: entity.OrderStatusPending,
		Items: []entity.OrderItem{{
			ProductID: product.ID,
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("10.00"),
		}},
	}}
	fx.orderRepo.EXPECT().FindOrdersByUser(ctx, userID).Return(orders, nil)

	got, err := fx.service.ListOrders(ctx, userID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10.00", got[0].Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "20.00", got[0].Items[0].Subtotal().StringFixed(2))
}

func TestOrderService_ListOrders_EmptyIsNotNil(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.orderRepo.EXPECT().FindOrdersByUser(ctx, userID).Return(nil, nil)

	got, err := fx.service.ListOrders(ctx, userID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOrderService_GetOrder(t *testing.T) {
	owner := uuid.New()
	orderID := uuid.New()

	tests := []struct {
		name    string
		userID  uuid.UUID
		order   *entity.Order
		repoErr error
		wantErr error
	}{
		{name: "owner sees order", userID: owner, order: &entity.Order{ID: orderID, UserID: owner}},
		{name: "other user gets not found", userID: uuid.New(), order: &entity.Order{ID: orderID, UserID: owner}, wantErr: domainerrors.ErrOrderNotFound},
		{name: "missing order", userID: owner, repoErr: repository.ErrOrderNotFound, wantErr: domainerrors.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)
			ctx := context.Background()

			fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(tt.order, tt.repoErr)

			order, err := fx.service.GetOrder(ctx, tt.userID, orderID)
			if tt.wantErr != nil {
				assert.Nil(t, order)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, orderID, order.ID)
		})
	}
}

func TestOrderService_GenerateOrderQR(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(&entity.Order{ID: orderID, UserID: userID}, nil)
	fx.qrService.EXPECT().GenerateOrderQR(orderID).Return([]byte("png"), nil)

	png, err := fx.service.GenerateOrderQR(ctx, userID, orderID)

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}

func TestOrderService_GenerateOrderQR_EncoderFailure(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(&entity.Order{ID: orderID, UserID: userID}, nil)
	fx.qrService.EXPECT().GenerateOrderQR(orderID).Return(nil, errors.New("data too long"))

	png, err := fx.service.GenerateOrderQR(ctx, userID, orderID)

	assert.Nil(t, png)
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
}
