package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *BackendClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewBackendClient(server.URL, 2*time.Second, 0, logrus.NewEntry(logger))
}

func TestBackendClient_Do_SendsJSONAndDecodes(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotContentType string
	var gotBody map[string]interface{}

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	query := url.Values{}
	query.Set("productName", "Derby Shoe")

	var out struct {
		Message string `json:"message"`
	}
	err := client.Do(context.Background(), http.MethodPost, "/products/products", query, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/products/products", gotPath)
	assert.Equal(t, "productName=Derby+Shoe", gotQuery)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "b", gotBody["a"])
	assert.Equal(t, "ok", out.Message)
}

func TestBackendClient_Do_HTTPErrorWithDetail(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Product sizes not found"}`))
	})

	err := client.Do(context.Background(), http.MethodGet, "/products/products/sizes", nil, nil, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Product sizes not found", httpErr.Detail)
	assert.True(t, IsHTTPStatus(err, http.StatusNotFound))
	assert.False(t, IsTransport(err))
}

func TestBackendClient_Do_HTTPErrorWithListDetail(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","size"],"msg":"field required"}]}`))
	})

	err := client.Do(context.Background(), http.MethodPost, "/products/products", nil, struct{}{}, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Contains(t, httpErr.Detail, "field required")
}

func TestBackendClient_Do_HTTPErrorPlainBody(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	})

	err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Empty(t, httpErr.Detail)
	assert.Equal(t, "Internal Server Error", httpErr.Body)
	assert.Contains(t, err.Error(), "500")
}

func TestBackendClient_Do_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewBackendClient(baseURL, time.Second, 0, nil)
	err := client.Do(context.Background(), http.MethodGet, "/products/products/count", nil, nil, nil)

	require.Error(t, err)
	assert.True(t, IsTransport(err))

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, http.MethodGet, tErr.Method)
	assert.Contains(t, tErr.URL, "/products/products/count")
}

func TestBackendClient_Do_CancelledContext(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Do(ctx, http.MethodGet, "/x", nil, nil, nil)
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackendClient_Do_DecodeFailure(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	var out map[string]interface{}
	err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil, &out)
	require.Error(t, err)
	assert.False(t, IsTransport(err))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestBackendClient_Do_NoRetry(t *testing.T) {
	calls := 0
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_ = client.Do(context.Background(), http.MethodPut, "/orders/vms/orders/1/confirm", nil, struct{}{}, nil)
	assert.Equal(t, 1, calls)
}

func TestBackendClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewBackendClient(server.URL+"/", time.Second, 1, nil)
	assert.Equal(t, server.URL, client.BaseURL())

	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))

	// The bucket is empty now, so a short deadline fails before sending
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := client.Do(ctx, http.MethodGet, "/x", nil, nil, nil)
	assert.True(t, IsTransport(err))
}
