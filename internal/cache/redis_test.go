package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvpn/proxy-catalog/internal/config"
	"github.com/nvpn/proxy-catalog/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := []models.ProxyServer{
		{ID: "p1", Name: "Turkey - Istanbul", Type: models.ProxyHTTPS, IsPremium: false},
		{ID: "p2", Name: "Germany - Berlin", Type: models.ProxyWireGuard, IsPremium: true},
	}
	err := cache.Set("proxies:all", expected, time.Minute)
	require.NoError(t, err)

	var actual []models.ProxyServer
	found, err := cache.Get("proxies:all", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out []models.ProxyServer
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("proxies:free", []models.ProxyServer{{ID: "p1"}}, time.Minute))
	require.NoError(t, cache.Invalidate("proxies:free"))

	var out []models.ProxyServer
	found, err := cache.Get("proxies:free", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
