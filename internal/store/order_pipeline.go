package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"vms-admin/internal/clients"
	"vms-admin/internal/events"
	"vms-admin/internal/models"
)

// OrderPipeline keeps orders in four disjoint buckets keyed by order ID.
// No order ID is ever held by more than one bucket.
type OrderPipeline struct {
	client    clients.OrdersClient
	publisher events.EventPublisher
	logger    *logrus.Entry

	mu      sync.RWMutex
	buckets map[models.Bucket][]models.Order
}

// OrdersSnapshot is what the orders page renders
type OrdersSnapshot struct {
	Pending  []models.OrderView `json:"pending"`
	ToShip   []models.OrderView `json:"toShip"`
	Shipped  []models.OrderView `json:"shipped"`
	Rejected []models.OrderView `json:"rejected"`
	Cards    []models.OrderCard `json:"cards"`
}

// NewOrderPipeline creates a pipeline with empty buckets
func NewOrderPipeline(client clients.OrdersClient, publisher events.EventPublisher, logger *logrus.Entry) *OrderPipeline {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if publisher == nil {
		publisher = events.Noop()
	}
	buckets := make(map[models.Bucket][]models.Order, len(models.AllBuckets))
	for _, b := range models.AllBuckets {
		buckets[b] = []models.Order{}
	}
	return &OrderPipeline{
		client:    client,
		publisher: publisher,
		logger:    logger.WithField("component", "order_pipeline"),
		buckets:   buckets,
	}
}

// FetchPending replaces the pending bucket with the backend listing
func (p *OrderPipeline) FetchPending(ctx context.Context) error {
	orders, err := p.client.ListPending(ctx)
	return p.applyFetch(ctx, models.BucketPending, orders, err)
}

// FetchToShip replaces the to-ship bucket with the backend listing
func (p *OrderPipeline) FetchToShip(ctx context.Context) error {
	orders, err := p.client.ListToShip(ctx)
	return p.applyFetch(ctx, models.BucketToShip, orders, err)
}

// Refresh reloads both fetched buckets; a failure of one leaves the other applied
func (p *OrderPipeline) Refresh(ctx context.Context) error {
	if err := p.FetchPending(ctx); err != nil {
		return err
	}
	return p.FetchToShip(ctx)
}

func (p *OrderPipeline) applyFetch(ctx context.Context, bucket models.Bucket, orders []models.Order, err error) error {
	if dErr := dismissed(ctx); dErr != nil {
		return dErr
	}
	if err != nil {
		p.logger.WithError(err).WithField("bucket", bucket).Error("Failed to fetch orders")
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.replaceBucket(bucket, orders)
	return nil
}

// replaceBucket must be called with the lock held. IDs already held by a
// later-stage bucket are skipped and fetched IDs leave earlier-stage buckets.
func (p *OrderPipeline) replaceBucket(bucket models.Bucket, orders []models.Order) {
	rank := models.BucketRank(bucket)

	later := make(map[int64]struct{})
	for _, b := range models.AllBuckets {
		if b == bucket || models.BucketRank(b) <= rank {
			continue
		}
		for _, o := range p.buckets[b] {
			later[o.OrderID] = struct{}{}
		}
	}

	fetched := make(map[int64]struct{}, len(orders))
	kept := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if _, skip := later[o.OrderID]; skip {
			continue
		}
		if _, dup := fetched[o.OrderID]; dup {
			continue
		}
		fetched[o.OrderID] = struct{}{}
		kept = append(kept, o)
	}

	for _, b := range models.AllBuckets {
		if models.BucketRank(b) < rank {
			p.buckets[b] = removeOrders(p.buckets[b], fetched)
		}
	}
	p.buckets[bucket] = kept
}

// Approve confirms a pending order and moves it to ToShip
func (p *OrderPipeline) Approve(ctx context.Context, orderID int64) (models.Order, error) {
	return p.transition(ctx, orderID, models.TransitionApprove, func(ctx context.Context) error {
		return p.client.UpdateStatus(ctx, orderID, models.OrderStatusConfirmed)
	})
}

// Reject declines a pending order and moves it to Rejected
func (p *OrderPipeline) Reject(ctx context.Context, orderID int64) (models.Order, error) {
	return p.transition(ctx, orderID, models.TransitionReject, func(ctx context.Context) error {
		return p.client.UpdateStatus(ctx, orderID, models.OrderStatusRejected)
	})
}

// Ship marks a to-ship order as shipped
func (p *OrderPipeline) Ship(ctx context.Context, orderID int64) (models.Order, error) {
	return p.transition(ctx, orderID, models.TransitionShip, func(ctx context.Context) error {
		return p.client.MarkShipped(ctx, orderID)
	})
}

// transition checks the source bucket, calls the backend and only then
// moves the order under a single lock
func (p *OrderPipeline) transition(ctx context.Context, orderID int64, t models.Transition, call func(context.Context) error) (models.Order, error) {
	if err := models.ValidateBucketTransition(t.From, t.To); err != nil {
		return models.Order{}, err
	}

	order, bucket, ok := p.Find(orderID)
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	if bucket != t.From {
		return models.Order{}, ErrInvalidTransition
	}

	err := call(ctx)
	if dErr := dismissed(ctx); dErr != nil {
		return models.Order{}, dErr
	}
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"order_id":   orderID,
			"transition": t.Name,
		}).Warn("Order transition failed")
		return models.Order{}, err
	}

	p.mu.Lock()
	if current, ok := findIn(p.buckets[t.From], orderID); ok {
		order = current
	}
	single := map[int64]struct{}{orderID: {}}
	for _, b := range models.AllBuckets {
		if b != t.To {
			p.buckets[b] = removeOrders(p.buckets[b], single)
		}
	}
	if _, already := findIn(p.buckets[t.To], orderID); !already {
		p.buckets[t.To] = append(p.buckets[t.To], order)
	}
	p.mu.Unlock()

	p.publisher.OrderTransitioned(orderID, t)
	p.logger.WithFields(logrus.Fields{
		"order_id":   orderID,
		"transition": t.Name,
	}).Info("Order moved")

	return order, nil
}

// Find returns an order with the bucket holding it
func (p *OrderPipeline) Find(orderID int64) (models.Order, models.Bucket, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, b := range models.AllBuckets {
		if o, ok := findIn(p.buckets[b], orderID); ok {
			return o, b, true
		}
	}
	return models.Order{}, "", false
}

// Bucket returns a copy of one bucket
func (p *OrderPipeline) Bucket(b models.Bucket) []models.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.Order, len(p.buckets[b]))
	copy(out, p.buckets[b])
	return out
}

// Snapshot returns every bucket formatted for display with the count cards
func (p *OrderPipeline) Snapshot() OrdersSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := OrdersSnapshot{
		Pending:  toViews(p.buckets[models.BucketPending]),
		ToShip:   toViews(p.buckets[models.BucketToShip]),
		Shipped:  toViews(p.buckets[models.BucketShipped]),
		Rejected: toViews(p.buckets[models.BucketRejected]),
	}

	total := 0
	cards := make([]models.OrderCard, 0, len(models.AllBuckets)+1)
	for _, b := range models.AllBuckets {
		n := len(p.buckets[b])
		total += n
		cards = append(cards, models.OrderCard{Title: b.DisplayName(), Count: n})
	}
	snap.Cards = append([]models.OrderCard{{Title: "Total Orders", Count: total}}, cards...)
	return snap
}

func findIn(orders []models.Order, orderID int64) (models.Order, bool) {
	for _, o := range orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

func removeOrders(orders []models.Order, ids map[int64]struct{}) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if _, drop := ids[o.OrderID]; !drop {
			out = append(out, o)
		}
	}
	return out
}

func toViews(orders []models.Order) []models.OrderView {
	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, models.NewOrderView(o))
	}
	return views
}
