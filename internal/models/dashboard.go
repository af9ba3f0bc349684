package models

import "strconv"

// DashboardMetrics holds the four headline numbers of the dashboard
type DashboardMetrics struct {
	OrderCount        int64   `json:"orderCount"`
	DeliveredCount    int64   `json:"deliveredOrderCount"`
	TotalProducts     int64   `json:"totalProducts"`
	RevenueLast30Days float64 `json:"totalPriceLast30Days"`
}

// FormatRevenue renders revenue with the peso sign and no rounding
func (m DashboardMetrics) FormatRevenue() string {
	return "₱" + strconv.FormatFloat(m.RevenueLast30Days, 'f', -1, 64)
}

// Backend bodies of the metric endpoints

type OrderCountResponse struct {
	OrderCount int64 `json:"orderCount"`
}

type DeliveredCountResponse struct {
	DeliveredOrderCount int64 `json:"deliveredOrderCount"`
}

type TotalProductsResponse struct {
	TotalProducts int64 `json:"Total Products"`
}

type RevenueResponse struct {
	TotalPriceLast30Days float64 `json:"totalPriceLast30Days"`
}

// MetricView is one dashboard card
type MetricView struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// DashboardView is what the dashboard page renders after a load
type DashboardView struct {
	Loading           bool       `json:"loading"`
	Cached            bool       `json:"cached"`
	OrdersLast30Days  MetricView `json:"ordersLast30Days"`
	Delivered         MetricView `json:"deliveredLast30Days"`
	TotalProducts     MetricView `json:"totalProducts"`
	RevenueLast30Days MetricView `json:"revenueLast30Days"`
}

// Complete reports whether every metric loaded without error
func (v DashboardView) Complete() bool {
	return v.OrdersLast30Days.Error == "" && v.Delivered.Error == "" &&
		v.TotalProducts.Error == "" && v.RevenueLast30Days.Error == ""
}
