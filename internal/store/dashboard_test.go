package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vms-admin/internal/models"
)

// memoryCache is an in-process SnapshotCache
type memoryCache struct {
	mu      sync.Mutex
	metrics *models.DashboardMetrics
	sets    int
}

func (c *memoryCache) Get(context.Context) (models.DashboardMetrics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metrics == nil {
		return models.DashboardMetrics{}, false
	}
	return *c.metrics, true
}

func (c *memoryCache) Set(_ context.Context, m models.DashboardMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = &m
	c.sets++
}

func mockAllMetrics(client *MockDashboardClient) {
	client.On("OrdersLast30Days", mock.Anything).Return(int64(42), nil)
	client.On("DeliveredLast30Days", mock.Anything).Return(int64(17), nil)
	client.On("TotalProducts", mock.Anything).Return(int64(120), nil)
	client.On("RevenueLast30Days", mock.Anything).Return(1234.5, nil)
}

func TestDashboard_Load(t *testing.T) {
	client := new(MockDashboardClient)
	mockAllMetrics(client)

	d := NewDashboard(client, nil, quietLogger())
	assert.True(t, d.View().Loading)

	view := d.Load(context.Background())

	assert.False(t, view.Loading)
	assert.Equal(t, "42", view.OrdersLast30Days.Value)
	assert.Equal(t, "17", view.Delivered.Value)
	assert.Equal(t, "120", view.TotalProducts.Value)
	assert.Equal(t, "₱1234.5", view.RevenueLast30Days.Value)
	assert.True(t, view.Complete())
	assert.Equal(t, view, d.View())
}

func TestDashboard_Load_OneFailureDoesNotBlockOthers(t *testing.T) {
	client := new(MockDashboardClient)
	client.On("OrdersLast30Days", mock.Anything).Return(int64(42), nil)
	client.On("DeliveredLast30Days", mock.Anything).Return(int64(0), errors.New("boom"))
	client.On("TotalProducts", mock.Anything).Return(int64(120), nil)
	client.On("RevenueLast30Days", mock.Anything).Return(float64(0), errors.New("boom"))

	view := NewDashboard(client, nil, quietLogger()).Load(context.Background())

	assert.False(t, view.Loading)
	assert.Equal(t, "42", view.OrdersLast30Days.Value)
	assert.Equal(t, "Error fetching delivered order count", view.Delivered.Error)
	assert.Empty(t, view.Delivered.Value)
	assert.Equal(t, "120", view.TotalProducts.Value)
	assert.Equal(t, "Error fetching total price", view.RevenueLast30Days.Error)
	assert.False(t, view.Complete())
	client.AssertNumberOfCalls(t, "OrdersLast30Days", 1)
}

func TestDashboard_Load_CachesCompleteSnapshots(t *testing.T) {
	client := new(MockDashboardClient)
	mockAllMetrics(client)
	cache := &memoryCache{}

	d := NewDashboard(client, cache, quietLogger())
	first := d.Load(context.Background())
	assert.False(t, first.Cached)
	assert.Equal(t, 1, cache.sets)

	second := d.Load(context.Background())
	assert.True(t, second.Cached)
	assert.Equal(t, "₱1234.5", second.RevenueLast30Days.Value)
	client.AssertNumberOfCalls(t, "RevenueLast30Days", 1)
}

func TestDashboard_Load_PartialSnapshotNotCached(t *testing.T) {
	client := new(MockDashboardClient)
	client.On("OrdersLast30Days", mock.Anything).Return(int64(1), nil)
	client.On("DeliveredLast30Days", mock.Anything).Return(int64(1), nil)
	client.On("TotalProducts", mock.Anything).Return(int64(0), errors.New("down"))
	client.On("RevenueLast30Days", mock.Anything).Return(10.0, nil)
	cache := &memoryCache{}

	NewDashboard(client, cache, quietLogger()).Load(context.Background())
	assert.Equal(t, 0, cache.sets)
}
