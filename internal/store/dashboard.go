package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"vms-admin/internal/clients"
	"vms-admin/internal/models"
)

const (
	msgOrderCountError     = "Error fetching order count"
	msgDeliveredCountError = "Error fetching delivered order count"
	msgTotalProductsError  = "Error fetching total products count"
	msgRevenueError        = "Error fetching total price"
)

// SnapshotCache holds complete dashboard snapshots between loads
type SnapshotCache interface {
	Get(ctx context.Context) (models.DashboardMetrics, bool)
	Set(ctx context.Context, metrics models.DashboardMetrics)
}

// Dashboard loads the four headline metrics
type Dashboard struct {
	client clients.DashboardClient
	cache  SnapshotCache
	logger *logrus.Entry

	mu   sync.RWMutex
	view models.DashboardView
}

// NewDashboard creates a dashboard aggregator; cache may be nil
func NewDashboard(client clients.DashboardClient, cache SnapshotCache, logger *logrus.Entry) *Dashboard {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Dashboard{
		client: client,
		cache:  cache,
		logger: logger.WithField("component", "dashboard"),
		view:   emptyDashboardView(),
	}
}

// Load fetches all four metrics concurrently. Each failure only affects its
// own card and loading ends once every request has completed.
func (d *Dashboard) Load(ctx context.Context) models.DashboardView {
	if d.cache != nil {
		if metrics, ok := d.cache.Get(ctx); ok {
			view := renderDashboard(metrics, [4]string{})
			view.Cached = true
			d.store(view)
			return view
		}
	}

	d.mu.Lock()
	d.view.Loading = true
	d.mu.Unlock()

	var (
		metrics models.DashboardMetrics
		errs    [4]string
		g       errgroup.Group
	)

	g.Go(func() error {
		n, err := d.client.OrdersLast30Days(ctx)
		if err != nil {
			d.logger.WithError(err).Warn("Failed to fetch order count")
			errs[0] = msgOrderCountError
			return nil
		}
		metrics.OrderCount = n
		return nil
	})
	g.Go(func() error {
		n, err := d.client.DeliveredLast30Days(ctx)
		if err != nil {
			d.logger.WithError(err).Warn("Failed to fetch delivered count")
			errs[1] = msgDeliveredCountError
			return nil
		}
		metrics.DeliveredCount = n
		return nil
	})
	g.Go(func() error {
		n, err := d.client.TotalProducts(ctx)
		if err != nil {
			d.logger.WithError(err).Warn("Failed to fetch total products")
			errs[2] = msgTotalProductsError
			return nil
		}
		metrics.TotalProducts = n
		return nil
	})
	g.Go(func() error {
		v, err := d.client.RevenueLast30Days(ctx)
		if err != nil {
			d.logger.WithError(err).Warn("Failed to fetch revenue")
			errs[3] = msgRevenueError
			return nil
		}
		metrics.RevenueLast30Days = v
		return nil
	})
	_ = g.Wait()

	view := renderDashboard(metrics, errs)
	d.store(view)

	if d.cache != nil && view.Complete() {
		d.cache.Set(ctx, metrics)
	}
	return view
}

// View returns the last rendered dashboard
func (d *Dashboard) View() models.DashboardView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view
}

func (d *Dashboard) store(view models.DashboardView) {
	d.mu.Lock()
	d.view = view
	d.mu.Unlock()
}

func emptyDashboardView() models.DashboardView {
	return models.DashboardView{
		Loading:           true,
		OrdersLast30Days:  models.MetricView{Title: "Orders"},
		Delivered:         models.MetricView{Title: "Delivered"},
		TotalProducts:     models.MetricView{Title: "Total Product"},
		RevenueLast30Days: models.MetricView{Title: "Revenue"},
	}
}

func renderDashboard(m models.DashboardMetrics, errs [4]string) models.DashboardView {
	view := emptyDashboardView()
	view.Loading = false

	cards := []*models.MetricView{&view.OrdersLast30Days, &view.Delivered, &view.TotalProducts, &view.RevenueLast30Days}
	values := []string{
		strconv.FormatInt(m.OrderCount, 10),
		strconv.FormatInt(m.DeliveredCount, 10),
		strconv.FormatInt(m.TotalProducts, 10),
		m.FormatRevenue(),
	}
	for i, card := range cards {
		if errs[i] != "" {
			card.Error = errs[i]
			continue
		}
		card.Value = values[i]
	}
	return view
}
