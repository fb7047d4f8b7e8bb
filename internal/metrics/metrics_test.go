package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/uids/internal/errors"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	provider, err := NewProvider("uids_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
	return provider
}

// scrape returns the exposition text served by the provider handler.
func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewProvider(t *testing.T) {
	provider := newTestProvider(t)
	assert.Equal(t, "uids_test", provider.Namespace())
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_NilProvider", func(t *testing.T) {
		var provider *Provider
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusError, StatusOf(errors.New("boom")))
	assert.Equal(t, StatusInvalidInput, StatusOf(apperrors.Wrap(apperrors.ErrInvalidInput, "malformed token")))
	assert.Equal(t, StatusUnavailable, StatusOf(apperrors.Wrap(apperrors.ErrUnavailable, "pool exhausted")))
}

func TestBusinessMetrics(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "uids_test")
	require.NoError(t, err)

	bm.RecordOperation(ctx, "uid", "encode", StatusSuccess)
	bm.RecordOperation(ctx, "uid", "decode", StatusError)
	bm.RecordDuration(ctx, "uid", "encode", 3*time.Millisecond, StatusSuccess)

	body := scrape(t, provider)
	assert.Contains(t, body, "uids_test_operations_total")
	assert.Contains(t, body, `operation="decode"`)
	assert.Contains(t, body, "uids_test_operation_duration_seconds")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	assert.NotPanics(t, func() {
		bm.RecordOperation(context.Background(), "uid", "encode", StatusSuccess)
		bm.RecordDuration(context.Background(), "uid", "encode", time.Second, StatusSuccess)
	})
}

type fakePool struct {
	size, available int
}

func (f fakePool) Size() int      { return f.size }
func (f fakePool) Available() int { return f.available }

func TestRegisterPoolMetrics(t *testing.T) {
	provider := newTestProvider(t)

	registration, err := RegisterPoolMetrics(provider.MeterProvider(), "uids_test", fakePool{size: 4, available: 1})
	require.NoError(t, err)
	defer func() { assert.NoError(t, registration.Unregister()) }()

	body := scrape(t, provider)
	assert.Contains(t, body, "uids_test_pool_contexts")
	assert.Contains(t, body, `state="in_use"`)
	assert.Contains(t, body, `state="capacity"`)
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider := newTestProvider(t)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "uids_test", "/health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/v1/uids/decode", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/health", nil),
		httptest.NewRequest(http.MethodPost, "/v1/uids/decode", nil),
		httptest.NewRequest(http.MethodGet, "/missing", nil),
	} {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	body := scrape(t, provider)
	assert.Contains(t, body, "uids_test_http_requests_total")
	assert.Contains(t, body, `path="/v1/uids/decode"`)
	assert.Contains(t, body, `status_code="422"`)
	assert.Contains(t, body, `path="unknown"`)
	assert.NotContains(t, body, `path="/health"`)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "unknown", routeLabel(""))
	assert.Equal(t, "/v1/uids/encode", routeLabel("/v1/uids/encode"))
}
