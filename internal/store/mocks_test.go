package store

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"vms-admin/internal/clients"
	"vms-admin/internal/events"
	"vms-admin/internal/models"
)

// MockCatalogClient is a mock implementation of clients.CatalogClient
type MockCatalogClient struct {
	mock.Mock
}

var _ clients.CatalogClient = (*MockCatalogClient)(nil)

func (m *MockCatalogClient) ListCategory(ctx context.Context, category models.Category) ([]models.RawProduct, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawProduct), args.Error(1)
}

func (m *MockCatalogClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *MockCatalogClient) UpdateDetails(ctx context.Context, req models.UpdateDetailsRequest) (*models.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *MockCatalogClient) SoftDeleteProduct(ctx context.Context, productName, category string) (*models.MessageResponse, error) {
	args := m.Called(ctx, productName, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *MockCatalogClient) ListSizes(ctx context.Context, id models.ProductIdentity) ([]models.SizeStock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SizeStock), args.Error(1)
}

func (m *MockCatalogClient) ListSizeVariants(ctx context.Context, id models.ProductIdentity) ([]models.SizeVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SizeVariant), args.Error(1)
}

func (m *MockCatalogClient) AddSize(ctx context.Context, req models.AddSizeRequest) (*models.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *MockCatalogClient) UpdateSize(ctx context.Context, req models.UpdateSizeRequest) (*models.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *MockCatalogClient) SoftDeleteSize(ctx context.Context, id models.ProductIdentity, size string) (*models.MessageResponse, error) {
	args := m.Called(ctx, id, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

// MockOrdersClient is a mock implementation of clients.OrdersClient
type MockOrdersClient struct {
	mock.Mock
}

var _ clients.OrdersClient = (*MockOrdersClient)(nil)

func (m *MockOrdersClient) ListPending(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrdersClient) ListToShip(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrdersClient) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrdersClient) MarkShipped(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockDashboardClient is a mock implementation of clients.DashboardClient
type MockDashboardClient struct {
	mock.Mock
}

var _ clients.DashboardClient = (*MockDashboardClient)(nil)

func (m *MockDashboardClient) OrdersLast30Days(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardClient) DeliveredLast30Days(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardClient) TotalProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardClient) RevenueLast30Days(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// recordingPublisher keeps the subjects of every event it was given
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

var _ events.EventPublisher = (*recordingPublisher)(nil)

func (r *recordingPublisher) record(subject string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, subject)
}

func (r *recordingPublisher) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recordingPublisher) ProductCreated(models.Product) {
	r.record(events.SubjectProductCreated)
}

func (r *recordingPublisher) ProductUpdated(models.ProductKey) {
	r.record(events.SubjectProductUpdated)
}

func (r *recordingPublisher) ProductDeleted(models.ProductKey) {
	r.record(events.SubjectProductDeleted)
}

func (r *recordingPublisher) SizeAdded(models.ProductKey, string) {
	r.record(events.SubjectSizeAdded)
}

func (r *recordingPublisher) SizeUpdated(models.ProductKey, string, string) {
	r.record(events.SubjectSizeUpdated)
}

func (r *recordingPublisher) SizeDeleted(models.ProductKey, string) {
	r.record(events.SubjectSizeDeleted)
}

func (r *recordingPublisher) OrderTransitioned(_ int64, t models.Transition) {
	r.record(t.Name)
}

func (r *recordingPublisher) Close() {}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func strPtr(s string) *string {
	return &s
}
