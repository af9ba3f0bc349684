package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPError is returned when the backend answers with a non-2xx status
type HTTPError struct {
	StatusCode int
	Body       string
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when no response was received at all
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to send %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrUnexpectedShape marks a 2xx body that does not have the expected structure
var ErrUnexpectedShape = errors.New("unexpected response shape")

// IsHTTPStatus reports whether err carries the given backend status code
func IsHTTPStatus(err error, code int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == code
}

// IsTransport reports whether err is a network-level failure
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// BackendClient performs JSON calls against the catalog/order backend.
// Calls are sent at most once; there is no retry.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Entry
}

// NewBackendClient creates a new backend client. A ratePerSecond of zero disables pacing.
func NewBackendClient(baseURL string, timeout time.Duration, ratePerSecond float64, logger *logrus.Entry) *BackendClient {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	c := &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.WithField("component", "backend_client"),
	}
	if ratePerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}
	return c
}

// BaseURL returns the backend root, used to build image URLs
func (c *BackendClient) BaseURL() string {
	return c.baseURL
}

// Do sends one request and decodes a 2xx body into out when out is non-nil
func (c *BackendClient) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Method: method, URL: fullURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method":  method,
			"path":    path,
			"latency": time.Since(start).String(),
		}).WithError(err).Debug("Backend call failed")
		return &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(start).String(),
	}).Debug("Backend call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Detail:     extractDetail(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// extractDetail pulls the detail field out of an error body.
// Validation errors carry a list there; it is returned as raw JSON.
func extractDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}
