package localstore

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, ttl time.Duration) (*CartStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return newCartStore(client, "storefront-cart", ttl), mr
}

func sampleItems() []entity.CartItem {
	return []entity.CartItem{
		{
			Product: entity.Product{
				ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
				Name:      "Mug",
				Price:     decimal.RequireFromString("100.00"),
				Inventory: 4,
				IsActive:  true,
			},
			Quantity: 2,
		},
		{
			Product: entity.Product{
				ID:        uuid.MustParse("22222222-2222-2222-2222-222222222222"),
				Name:      "Sticker",
				Price:     decimal.RequireFromString("50.00"),
				Inventory: 10,
				IsActive:  true,
			},
			Quantity: 3,
		},
	}
}

func TestCartStore_LoadMissingKeyIsEmpty(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	items, err := store.Load(context.Background(), "unknown")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCartStore_SaveThenLoadKeepsOrderAndSnapshot(t *testing.T) {
	store, _ := setupTestStore(t, 0)
	ctx := context.Background()
	items := sampleItems()

	require.NoError(t, store.Save(ctx, "s-1", items))

	loaded, err := store.Load(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, items[0].Product.ID, loaded[0].Product.ID)
	assert.Equal(t, items[1].Product.ID, loaded[1].Product.ID)
	assert.True(t, items[0].Product.Price.Equal(loaded[0].Product.Price))
	assert.Equal(t, 3, loaded[1].Quantity)
}

func TestCartStore_RecordHoldsOnlyItems(t *testing.T) {
	store, mr := setupTestStore(t, 0)

	require.NoError(t, store.Save(context.Background(), "s-1", nil))

	raw, err := mr.Get("storefront-cart:s-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, raw)
}

func TestCartStore_TTL(t *testing.T) {
	t.Run("zero ttl persists forever", func(t *testing.T) {
		store, mr := setupTestStore(t, 0)
		require.NoError(t, store.Save(context.Background(), "s-1", sampleItems()))
		assert.Equal(t, time.Duration(0), mr.TTL("storefront-cart:s-1"))
	})

	t.Run("ttl refreshed on save", func(t *testing.T) {
		store, mr := setupTestStore(t, time.Hour)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "s-1", sampleItems()))
		mr.FastForward(30 * time.Minute)
		require.NoError(t, store.Save(ctx, "s-1", sampleItems()))

		assert.Equal(t, time.Hour, mr.TTL("storefront-cart:s-1"))
	})

	t.Run("expired record loads empty", func(t *testing.T) {
		store, mr := setupTestStore(t, time.Minute)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "s-1", sampleItems()))
		mr.FastForward(2 * time.Minute)

		items, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCartStore_LoadCorruptRecord(t *testing.T) {
	store, mr := setupTestStore(t, 0)
	require.NoError(t, mr.Set("storefront-cart:s-1", "not-json"))

	items, err := store.Load(context.Background(), "s-1")
	assert.Error(t, err)
	assert.Nil(t, items)
}

func TestCartStore_RedisDown(t *testing.T) {
	store, mr := setupTestStore(t, 0)
	mr.Close()

	err := store.Save(context.Background(), "s-1", sampleItems())
	assert.Error(t, err)
}
