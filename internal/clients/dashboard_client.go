package clients

import (
	"context"
	"net/http"

	"vms-admin/internal/models"
)

// DashboardClient defines the interface for the backend metric endpoints
type DashboardClient interface {
	OrdersLast30Days(ctx context.Context) (int64, error)
	DeliveredLast30Days(ctx context.Context) (int64, error)
	TotalProducts(ctx context.Context) (int64, error)
	RevenueLast30Days(ctx context.Context) (float64, error)
}

type dashboardClient struct {
	backend *BackendClient
}

// NewDashboardClient creates a new dashboard client on top of the backend adapter
func NewDashboardClient(backend *BackendClient) DashboardClient {
	return &dashboardClient{backend: backend}
}

func (c *dashboardClient) OrdersLast30Days(ctx context.Context) (int64, error) {
	var resp models.OrderCountResponse
	if err := c.backend.Do(ctx, http.MethodGet, "/order-details/orders/last30days/count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.OrderCount, nil
}

func (c *dashboardClient) DeliveredLast30Days(ctx context.Context) (int64, error) {
	var resp models.DeliveredCountResponse
	if err := c.backend.Do(ctx, http.MethodGet, "/order-details/orders/delivered/last30days/count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.DeliveredOrderCount, nil
}

func (c *dashboardClient) TotalProducts(ctx context.Context) (int64, error) {
	var resp models.TotalProductsResponse
	if err := c.backend.Do(ctx, http.MethodGet, "/products/products/count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalProducts, nil
}

func (c *dashboardClient) RevenueLast30Days(ctx context.Context) (float64, error) {
	var resp models.RevenueResponse
	if err := c.backend.Do(ctx, http.MethodGet, "/orders/vms/orders/Completed/total-price/last30days", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalPriceLast30Days, nil
}
