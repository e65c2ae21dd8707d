package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/knah1d/shopease/internal/cache"
	"github.com/knah1d/shopease/internal/config"
	"github.com/knah1d/shopease/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTTL = 10 * time.Minute

func setup(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return cache.NewRedisCache(client, config.CacheConfig{DefaultTTL: defaultTTL}), mock
}

func testProduct(t *testing.T) *models.Product {
	t.Helper()

	price, err := models.MoneyFromString("9.99", "USD")
	require.NoError(t, err)

	product, err := models.NewProduct("p-1", "Widget", "", price, 3, "Gadgets", "")
	require.NoError(t, err)

	return product
}

func TestKey(t *testing.T) {
	assert.Equal(t, "shopease:product:p-1", cache.Key(cache.ProductKeyPrefix, "p-1"))
}

func TestRedisCache_Get(t *testing.T) {
	ctx := t.Context()
	key := cache.Key(cache.ProductKeyPrefix, "p-1")

	t.Run("Success - Hit Restores Money", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		product := testProduct(t)

		data, err := json.Marshal(product)
		require.NoError(t, err)

		mock.ExpectGet(key).SetVal(string(data))

		// Act
		var cached models.Product
		found, err := redisCache.Get(ctx, key, &cached)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, product.Price.Equal(cached.Price))
		assert.Equal(t, product.Category, cached.Category)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Miss", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		mock.ExpectGet(key).SetErr(redis.Nil)

		// Act
		var cached models.Product
		found, err := redisCache.Get(ctx, key, &cached)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		mock.ExpectGet(key).SetErr(errors.New("connection refused"))

		// Act
		var cached models.Product
		found, err := redisCache.Get(ctx, key, &cached)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "failed to get key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Entry", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		mock.ExpectGet(key).SetVal(`{"price":{"amount":"-1","currency":"USD"}}`)

		// Act
		var cached models.Product
		found, err := redisCache.Get(ctx, key, &cached)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, models.ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCache_Set(t *testing.T) {
	ctx := t.Context()
	key := cache.Key(cache.ProductKeyPrefix, "p-1")

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		product := testProduct(t)

		data, err := json.Marshal(product)
		require.NoError(t, err)

		mock.ExpectSet(key, data, time.Minute).SetVal("OK")

		// Act
		err = redisCache.Set(ctx, key, product, time.Minute)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Default TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		product := testProduct(t)

		data, err := json.Marshal(product)
		require.NoError(t, err)

		mock.ExpectSet(key, data, defaultTTL).SetVal("OK")

		// Act
		err = redisCache.Set(ctx, key, product, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unmarshalable Value", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)

		// Act
		err := redisCache.Set(ctx, key, make(chan int), time.Minute)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		product := testProduct(t)

		data, err := json.Marshal(product)
		require.NoError(t, err)

		mock.ExpectSet(key, data, time.Minute).SetErr(errors.New("OOM"))

		// Act
		err = redisCache.Set(ctx, key, product, time.Minute)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to set key")
	})
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Multiple Keys", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		mock.ExpectDel("a", "b").SetVal(2)

		// Act
		err := redisCache.Delete(ctx, "a", "b")

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No Keys Is A No-op", func(t *testing.T) {
		redisCache, mock := setup(t)

		require.NoError(t, redisCache.Delete(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		mock.ExpectDel("a").SetErr(errors.New("timeout"))

		// Act
		err := redisCache.Delete(ctx, "a")

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete keys")
	})
}
