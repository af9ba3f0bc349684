package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"vms-admin/internal/models"
)

// DashboardKey is the redis key of the cached dashboard snapshot
const DashboardKey = "vms-admin:dashboard:metrics"

// DashboardCache stores complete dashboard snapshots in redis for a short TTL.
// Redis errors are logged and reported as cache misses.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewDashboardCache connects to redis and verifies the connection
func NewDashboardCache(ctx context.Context, redisURL string, ttl time.Duration, logger *logrus.Entry) (*DashboardCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewDashboardCacheWithClient(client, ttl, logger), nil
}

// NewDashboardCacheWithClient wraps an existing redis client
func NewDashboardCacheWithClient(client *redis.Client, ttl time.Duration, logger *logrus.Entry) *DashboardCache {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &DashboardCache{
		client: client,
		ttl:    ttl,
		logger: logger.WithField("component", "dashboard_cache"),
	}
}

// Get returns the cached snapshot if one is present
func (c *DashboardCache) Get(ctx context.Context) (models.DashboardMetrics, bool) {
	var metrics models.DashboardMetrics

	data, err := c.client.Get(ctx, DashboardKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).Warn("Failed to read dashboard cache")
		}
		return metrics, false
	}

	if err := json.Unmarshal([]byte(data), &metrics); err != nil {
		c.logger.WithError(err).Warn("Discarding unreadable dashboard cache entry")
		return metrics, false
	}
	return metrics, true
}

// Set stores a snapshot for the configured TTL
func (c *DashboardCache) Set(ctx context.Context, metrics models.DashboardMetrics) {
	data, err := json.Marshal(metrics)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to encode dashboard snapshot")
		return
	}
	if err := c.client.Set(ctx, DashboardKey, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Failed to write dashboard cache")
	}
}

// Ping checks that redis is reachable
func (c *DashboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client
func (c *DashboardCache) Close() error {
	return c.client.Close()
}
