package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vms-admin/internal/store"
)

// DashboardHandler serves the dashboard page
type DashboardHandler struct {
	dashboard *store.Dashboard
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *store.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard loads the four headline metrics. Failed metrics carry their
// own error message and never fail the request.
// @Summary Load the dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	success(c, http.StatusOK, h.dashboard.Load(c.Request.Context()))
}

// Pinger is a dependency the readiness probe checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler; nil checks are skipped
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	kept := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			kept[name] = p
		}
	}
	return &HealthHandler{checks: kept}
}

// HealthCheck reports that the process is up
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "vms-admin",
		Version: "1.0.0",
	})
}

// ReadinessCheck pings the optional dependencies
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	resp := HealthResponse{
		Status:  "ready",
		Service: "vms-admin",
		Version: "1.0.0",
		Checks:  make(map[string]string, len(h.checks)),
	}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(status, resp)
}
