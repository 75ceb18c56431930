package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListProducts_TrimsSearch(t *testing.T) {
	catalogRepo := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(catalogRepo, discardLogger())
	ctx := context.Background()
	categoryID := uuid.New()
	products := []*entity.Product{newTestProduct("mug", "10", 1)}

	catalogRepo.EXPECT().
		FindProducts(mock.Anything, entity.ProductFilter{CategoryID: &categoryID, Search: "mug"}).
		Return(products, nil)

	got, err := service.ListProducts(ctx, entity.ProductFilter{CategoryID: &categoryID, Search: "  mug "})

	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestCatalogService_ListProducts_CollapsesConcurrentCalls(t *testing.T) {
	catalogRepo := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(catalogRepo, discardLogger())
	products := []*entity.Product{newTestProduct("mug", "10", 1)}

	release := make(chan struct{})
	catalogRepo.EXPECT().
		FindProducts(mock.Anything, entity.ProductFilter{Search: "mug"}).
		RunAndReturn(func(context.Context, entity.ProductFilter) ([]*entity.Product, error) {
			<-release

			return products, nil
		}).
		Once()

	const callers = 5
	var wg sync.WaitGroup
	results := make([][]*entity.Product, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = service.ListProducts(context.Background(), entity.ProductFilter{Search: "mug"})
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, products, got)
	}
}

func TestCatalogService_ListProducts_LeaderCancelDoesNotFailFollowers(t *testing.T) {
	catalogRepo := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(catalogRepo, discardLogger())
	products := []*entity.Product{newTestProduct("mug", "10", 1)}

	started := make(chan struct{})
	release := make(chan struct{})
	var readErr error
	catalogRepo.EXPECT().
		FindProducts(mock.Anything, entity.ProductFilter{Search: "mug"}).
		RunAndReturn(func(ctx context.Context, _ entity.ProductFilter) ([]*entity.Product, error) {
			close(started)
			<-release
			readErr = ctx.Err()

			return products, nil
		}).
		Once()

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := service.ListProducts(leaderCtx, entity.ProductFilter{Search: "mug"})
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		products []*entity.Product
		err      error
	}
	follower := make(chan outcome, 1)
	go func() {
		got, err := service.ListProducts(context.Background(), entity.ProductFilter{Search: "mug"})
		follower <- outcome{products: got, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelLeader()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	got := <-follower
	require.NoError(t, got.err)
	assert.Equal(t, products, got.products)
	assert.NoError(t, readErr, "the shared read must not inherit the leader's cancellation")
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	catalogRepo := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(catalogRepo, discardLogger())
	ctx := context.Background()
	id := uuid.New()

	catalogRepo.EXPECT().FindProductByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	product, err := service.GetProduct(ctx, id)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_GetProductBySlug(t *testing.T) {
	catalogRepo := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(catalogRepo, discardLogger())
	ctx := context.Background()
	product := newTestProduct("hoodie", "45", 2)

	catalogRepo.EXPECT().FindProductBySlug(ctx, "hoodie").Return(product, nil)

	got, err := service.GetProductBySlug(ctx, "hoodie")

	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestCatalogService_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "open breaker passes through", repoErr: domainerrors.ErrRemoteUnavailable.WrapMessage("catalog"), want: domainerrors.ErrRemoteUnavailable},
		{name: "driver error becomes unavailable", repoErr: errors.New("dial tcp: refused"), want: domainerrors.ErrRemoteUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogRepo := mockRepo.NewMockCatalogRepository(t)
			service := NewCatalogService(catalogRepo, discardLogger())
			ctx := context.Background()

			catalogRepo.EXPECT().FindCategories(ctx).Return(nil, tt.repoErr)

			categories, err := service.ListCategories(ctx)

			assert.Nil(t, categories)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
