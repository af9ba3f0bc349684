package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"vms-admin/internal/models"
)

// Subjects of the admin audit events
const (
	SubjectProductCreated = "vms.admin.product.created"
	SubjectProductUpdated = "vms.admin.product.updated"
	SubjectProductDeleted = "vms.admin.product.deleted"
	SubjectSizeAdded      = "vms.admin.size.added"
	SubjectSizeUpdated    = "vms.admin.size.updated"
	SubjectSizeDeleted    = "vms.admin.size.deleted"
	SubjectOrderConfirmed = "vms.admin.order.confirmed"
	SubjectOrderRejected  = "vms.admin.order.rejected"
	SubjectOrderShipped   = "vms.admin.order.shipped"
)

// AdminEvent is the payload of every audit event
type AdminEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	ProductName string    `json:"product_name,omitempty"`
	Category    string    `json:"category,omitempty"`
	Size        string    `json:"size,omitempty"`
	NewSize     string    `json:"new_size,omitempty"`
	OrderID     int64     `json:"order_id,omitempty"`
	OrderStatus string    `json:"order_status,omitempty"`
}

// EventPublisher is what the stores report confirmed mutations to
type EventPublisher interface {
	ProductCreated(p models.Product)
	ProductUpdated(key models.ProductKey)
	ProductDeleted(key models.ProductKey)
	SizeAdded(key models.ProductKey, size string)
	SizeUpdated(key models.ProductKey, oldSize, newSize string)
	SizeDeleted(key models.ProductKey, size string)
	OrderTransitioned(orderID int64, t models.Transition)
	Close()
}

// conn is the part of *nats.Conn the publisher needs
type conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// Publisher sends audit events to NATS. A Publisher without a connection drops every event.
type Publisher struct {
	conn   conn
	logger *logrus.Entry
	now    func() time.Time
}

// NewPublisher connects to NATS. An empty URL yields a publisher that does nothing.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)
	}
	p := &Publisher{
		logger: logger.WithField("component", "events.publisher"),
		now:    time.Now,
	}
	if natsURL == "" {
		p.logger.Info("NATS_URL not set, audit events disabled")
		return p, nil
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("vms-admin-publisher"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	p.conn = nc
	return p, nil
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.WithError(err).Warn("Failed to drain NATS connection")
	}
}

func (p *Publisher) ProductCreated(product models.Product) {
	p.publish(SubjectProductCreated, AdminEvent{ProductName: product.ProductName, Category: string(product.Category)})
}

func (p *Publisher) ProductUpdated(key models.ProductKey) {
	p.publish(SubjectProductUpdated, AdminEvent{ProductName: key.Name, Category: string(key.Category)})
}

func (p *Publisher) ProductDeleted(key models.ProductKey) {
	p.publish(SubjectProductDeleted, AdminEvent{ProductName: key.Name, Category: string(key.Category)})
}

func (p *Publisher) SizeAdded(key models.ProductKey, size string) {
	p.publish(SubjectSizeAdded, AdminEvent{ProductName: key.Name, Category: string(key.Category), Size: size})
}

func (p *Publisher) SizeUpdated(key models.ProductKey, oldSize, newSize string) {
	p.publish(SubjectSizeUpdated, AdminEvent{ProductName: key.Name, Category: string(key.Category), Size: oldSize, NewSize: newSize})
}

func (p *Publisher) SizeDeleted(key models.ProductKey, size string) {
	p.publish(SubjectSizeDeleted, AdminEvent{ProductName: key.Name, Category: string(key.Category), Size: size})
}

// OrderTransitioned publishes the event matching the applied transition
func (p *Publisher) OrderTransitioned(orderID int64, t models.Transition) {
	var subject string
	switch t.To {
	case models.BucketToShip:
		subject = SubjectOrderConfirmed
	case models.BucketRejected:
		subject = SubjectOrderRejected
	case models.BucketShipped:
		subject = SubjectOrderShipped
	default:
		return
	}
	p.publish(subject, AdminEvent{OrderID: orderID, OrderStatus: string(t.Status)})
}

// publish stamps and sends one event; failures are logged only
func (p *Publisher) publish(subject string, event AdminEvent) {
	if p == nil || p.conn == nil {
		return
	}
	event.EventID = uuid.New().String()
	event.EventType = subject
	event.Timestamp = p.now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
		return
	}
	p.logger.WithField("subject", subject).Debug("Published event")
}

// Noop returns a publisher that drops every event
func Noop() *Publisher {
	return &Publisher{}
}
