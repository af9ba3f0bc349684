package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vms-admin/internal/documents"
	"vms-admin/internal/models"
	"vms-admin/internal/store"
)

// OrdersHandler serves the orders page
type OrdersHandler struct {
	pipeline  *store.OrderPipeline
	storeName string
	logger    *logrus.Entry
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(pipeline *store.OrderPipeline, storeName string, logger *logrus.Entry) *OrdersHandler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &OrdersHandler{
		pipeline:  pipeline,
		storeName: storeName,
		logger:    logger.WithField("component", "orders_handler"),
	}
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "order ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// ListOrders returns the four buckets with their count cards
// @Summary List orders
// @Tags orders
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	success(c, http.StatusOK, h.pipeline.Snapshot())
}

// RefreshOrders reloads the pending and to-ship buckets
// @Summary Refresh orders
// @Tags orders
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /orders/refresh [post]
func (h *OrdersHandler) RefreshOrders(c *gin.Context) {
	if err := h.pipeline.Refresh(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}
	success(c, http.StatusOK, h.pipeline.Snapshot())
}

// ApproveOrder confirms a pending order
// @Summary Approve an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /orders/{id}/approve [post]
func (h *OrdersHandler) ApproveOrder(c *gin.Context) {
	h.transition(c, h.pipeline.Approve, "Failed to approve order")
}

// RejectOrder declines a pending order
// @Summary Reject an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.SuccessResponse
// @Router /orders/{id}/reject [post]
func (h *OrdersHandler) RejectOrder(c *gin.Context) {
	h.transition(c, h.pipeline.Reject, "Failed to reject order")
}

// ShipOrder marks a to-ship order as shipped
// @Summary Ship an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.SuccessResponse
// @Router /orders/{id}/ship [post]
func (h *OrdersHandler) ShipOrder(c *gin.Context) {
	h.transition(c, h.pipeline.Ship, "Failed to ship order")
}

func (h *OrdersHandler) transition(c *gin.Context, apply func(context.Context, int64) (models.Order, error), action string) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	if _, err := apply(c.Request.Context(), id); err != nil {
		respondError(c, err, action)
		return
	}
	success(c, http.StatusOK, h.pipeline.Snapshot())
}

// PackingSlip downloads the packing slip of an order that is to ship or shipped
// @Summary Download a packing slip
// @Tags orders
// @Produce application/pdf
// @Param id path int true "Order ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/packing-slip [get]
func (h *OrdersHandler) PackingSlip(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, bucket, found := h.pipeline.Find(id)
	if !found {
		respondError(c, store.ErrOrderNotFound, "")
		return
	}

	pdf, err := documents.GeneratePackingSlip(documents.PackingSlip{
		StoreName: h.storeName,
		Order:     order,
		Bucket:    bucket,
	})
	if err != nil {
		h.logger.WithError(err).WithField("order_id", id).Warn("Packing slip not generated")
		respondError(c, err, "Failed to generate packing slip")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"packing-slip-%d.pdf\"", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
