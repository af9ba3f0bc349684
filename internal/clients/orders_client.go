package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"vms-admin/internal/models"
)

// OrdersClient defines the interface for the backend order endpoints
type OrdersClient interface {
	ListPending(ctx context.Context) ([]models.Order, error)
	ListToShip(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
	MarkShipped(ctx context.Context, orderID int64) error
}

type ordersClient struct {
	backend *BackendClient
}

// NewOrdersClient creates a new orders client on top of the backend adapter
func NewOrdersClient(backend *BackendClient) OrdersClient {
	return &ordersClient{backend: backend}
}

// ListPending fetches orders awaiting review
func (c *ordersClient) ListPending(ctx context.Context) ([]models.Order, error) {
	var raw json.RawMessage
	if err := c.backend.Do(ctx, http.MethodGet, "/order-details/order-details/orders", nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeOrders(raw)
}

// ListToShip fetches confirmed orders that still have to ship
func (c *ordersClient) ListToShip(ctx context.Context) ([]models.Order, error) {
	var raw json.RawMessage
	if err := c.backend.Do(ctx, http.MethodGet, "/orders/confirmed/orders", nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeOrders(raw)
}

// UpdateStatus confirms or rejects a pending order
func (c *ordersClient) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	path := fmt.Sprintf("/orders/vms/orders/%d/confirm", orderID)
	body := models.OrderStatusUpdateRequest{OrderStatus: status}
	return c.backend.Do(ctx, http.MethodPut, path, nil, body, nil)
}

// MarkShipped moves a confirmed order to shipped
func (c *ordersClient) MarkShipped(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/orders/vms/orders/%d/toship", orderID)
	body := models.OrderStatusUpdateRequest{OrderStatus: models.OrderStatusShipped}
	return c.backend.Do(ctx, http.MethodPut, path, nil, body, nil)
}

// decodeOrders accepts either a bare array or the {message, orders} envelope
func decodeOrders(raw json.RawMessage) ([]models.Order, error) {
	var rows []models.RawOrder
	if err := json.Unmarshal(raw, &rows); err != nil {
		var envelope models.OrderListEnvelope
		if envErr := json.Unmarshal(raw, &envelope); envErr != nil || envelope.Orders == nil {
			return nil, fmt.Errorf("%w: expected a list of orders", ErrUnexpectedShape)
		}
		rows = envelope.Orders
	}

	orders := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.ToOrder())
	}
	return orders, nil
}
