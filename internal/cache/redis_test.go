package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	userID := "user123"

	cart := &domain.Cart{
		UserID: userID,
		Items: []domain.CartItem{
			{ProductID: 1, StoreID: 7, Quantity: 2, UnitPrice: 25.00},
			{ProductID: 2, StoreID: 3, Quantity: 3, UnitPrice: 5.50},
		},
		UpdatedAt: time.Now(),
	}

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(userID), string(cartJSON))

	result, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(1), result.Items[0].ProductID)
	assert.InDelta(t, 25.00, result.Items[0].UnitPrice, 0.001)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("user123"), "{not json")

	result, err := cache.Get(context.Background(), "user123")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSetThenGet_RoundTrip(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		UserID: "user123",
		Items: []domain.CartItem{
			{ProductID: 10, StoreID: 1, Quantity: 5, UnitPrice: 2.00},
		},
	}

	require.NoError(t, cache.Set(ctx, "user123", cart))

	result, err := cache.Get(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, cart.UserID, result.UserID)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(10), result.Items[0].ProductID)
}

func TestDelete(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	mr.Set(cacheKey("user123"), "{}")

	require.NoError(t, cache.Delete(ctx, "user123"))

	_, err := cache.Get(ctx, "user123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_MissingKeyIsNoError(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, cache.Delete(context.Background(), "nonexistent"))
}
