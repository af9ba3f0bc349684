package cache

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vms-admin/internal/models"
)

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// setupTestCache requires a reachable redis; REDIS_TEST_ADDR overrides localhost:6379
func setupTestCache(t *testing.T, ttl time.Duration) *DashboardCache {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}
	client.Del(ctx, DashboardKey)
	t.Cleanup(func() {
		client.Del(context.Background(), DashboardKey)
		client.Close()
	})

	return NewDashboardCacheWithClient(client, ttl, quietLogger())
}

func TestDashboardCache_SetGet(t *testing.T) {
	c := setupTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	want := models.DashboardMetrics{OrderCount: 42, DeliveredCount: 17, TotalProducts: 120, RevenueLast30Days: 1234.5}
	c.Set(ctx, want)

	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestDashboardCache_Expires(t *testing.T) {
	c := setupTestCache(t, 100*time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, models.DashboardMetrics{OrderCount: 1})
	time.Sleep(250 * time.Millisecond)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestDashboardCache_UnreachableRedisIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewDashboardCacheWithClient(client, time.Minute, quietLogger())
	ctx := context.Background()

	c.Set(ctx, models.DashboardMetrics{OrderCount: 5})
	_, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Error(t, c.Ping(ctx))
}

func TestNewDashboardCache_BadURL(t *testing.T) {
	_, err := NewDashboardCache(context.Background(), "not-a-redis-url", time.Minute, quietLogger())
	assert.Error(t, err)
}
