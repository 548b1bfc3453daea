package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return NewRedisCache(client), mr, cleanup
}

func testProducts() []catalog.Product {
	price := 750.0
	return []catalog.Product{
		{ID: "a", Title: "+1 час в сутках", Price: &price, Category: "софт-скил"},
		{ID: "b", Title: "Мамка-таймер", Category: "софт-скил"},
	}
}

func TestGet_Miss(t *testing.T) {
	sut, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := sut.Get(context.Background())

	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetThenGet_RoundTrips(t *testing.T) {
	sut, _, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, sut.Set(context.Background(), testProducts()))

	got, err := sut.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, 750.0, got[0].PriceValue())
	assert.False(t, got[1].Sellable(), "nil price must survive the round trip")
}

func TestGet_CorruptEntry(t *testing.T) {
	sut, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(productsKey, "not json"))

	_, err := sut.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestInvalidate_DropsKey(t *testing.T) {
	sut, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	data, err := json.Marshal(testProducts())
	require.NoError(t, err)
	require.NoError(t, mr.Set(productsKey, string(data)))

	require.NoError(t, sut.Invalidate(context.Background()))

	_, err = sut.Get(context.Background())
	require.ErrorIs(t, err, ErrCacheMiss)
}
