package resilience

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(t *testing.T, threshold uint32) (repository.CatalogRepository, *mockRepo.MockCatalogRepository) {
	next := mockRepo.NewMockCatalogRepository(t)
	cfg := &config.Config{Catalog: &config.CatalogConfig{Breaker: config.BreakerConfig{
		FailureThreshold: threshold,
		Timeout:          time.Minute,
	}}}

	return NewCatalogBreaker(next, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), next
}

func TestCatalogBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	breaker, next := newTestBreaker(t, 2)
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	next.EXPECT().FindCategories(ctx).Return(nil, dbErr).Times(2)

	for range 2 {
		_, err := breaker.FindCategories(ctx)
		assert.ErrorIs(t, err, dbErr)
	}

	categories, err := breaker.FindCategories(ctx)
	assert.Nil(t, categories)
	assert.ErrorIs(t, err, domainerrors.ErrRemoteUnavailable)
}

func TestCatalogBreaker_NotFoundDoesNotTrip(t *testing.T) {
	breaker, next := newTestBreaker(t, 2)
	ctx := context.Background()
	id := uuid.New()

	next.EXPECT().FindProductByID(ctx, id).Return(nil, repository.ErrProductNotFound).Times(4)

	for range 4 {
		_, err := breaker.FindProductByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	}
}

func TestCatalogBreaker_PassesResultsThrough(t *testing.T) {
	breaker, next := newTestBreaker(t, 0)
	ctx := context.Background()
	products := []*entity.Product{{ID: uuid.New(), Name: "mug"}}
	filter := entity.ProductFilter{Search: "mug"}

	next.EXPECT().FindProducts(ctx, filter).Return(products, nil)
	next.EXPECT().FindProductBySlug(ctx, "mug").Return(products[0], nil)

	got, err := breaker.FindProducts(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, products, got)

	product, err := breaker.FindProductBySlug(ctx, "mug")
	require.NoError(t, err)
	assert.Equal(t, products[0], product)
}
