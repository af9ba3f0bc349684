package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"vms-admin/internal/clients"
	"vms-admin/internal/middleware"
	"vms-admin/internal/models"
	"vms-admin/internal/store"
)

// fakeBackend answers backend routes registered by "METHOD /path"
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
}

func (f *fakeBackend) handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = h
}

func (f *fakeBackend) reply(route string, status int, body interface{}) {
	f.handle(route, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (f *fakeBackend) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[route]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.hits[route]++
	h, ok := f.routes[route]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		return
	}
	h(w, r)
}

type testEnv struct {
	router   *gin.Engine
	backend  *fakeBackend
	catalog  *store.CatalogStore
	views    *store.SizeViews
	pipeline *store.OrderPipeline
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{routes: map[string]http.HandlerFunc{}, hits: map[string]int{}}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	logger := quietLogger()
	backendClient := clients.NewBackendClient(server.URL, 5*time.Second, 0, logger)

	catalog := store.NewCatalogStore(clients.NewCatalogClient(backendClient), nil, server.URL, logger)
	views := store.NewSizeViews(clients.NewCatalogClient(backendClient), nil, logger)
	pipeline := store.NewOrderPipeline(clients.NewOrdersClient(backendClient), nil, logger)
	dashboard := store.NewDashboard(clients.NewDashboardClient(backendClient), nil, logger)

	router := gin.New()
	ConfigurePaths(router)
	router.Use(middleware.RequestID())
	RegisterRoutes(router.Group("/api/v1"),
		NewProductsHandler(catalog, views, logger),
		NewOrdersHandler(pipeline, "VMS Leather Shoes", logger),
		NewDashboardHandler(dashboard),
	)

	return &testEnv{
		router:   router,
		backend:  backend,
		catalog:  catalog,
		views:    views,
		pipeline: pipeline,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// decodeData unmarshals the data field of a success response into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}
