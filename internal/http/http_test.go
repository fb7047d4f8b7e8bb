package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/uids/internal/config"
	"github.com/allisson/uids/internal/metrics"
	uidHTTP "github.com/allisson/uids/internal/uid/http"
	"github.com/allisson/uids/internal/uid/provider"
	uidService "github.com/allisson/uids/internal/uid/service"
	"github.com/allisson/uids/internal/uid/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		BatchMaxSize:            10,
		RateLimitEnabled:        false,
		RateLimitRequestsPerSec: 100,
		RateLimitBurst:          200,
	}
}

// newTestServer wires a real codec behind the router.
func newTestServer(t *testing.T, cfg *config.Config, metricsProvider *metrics.Provider) (*Server, *uidService.ContextPool) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	useCase, pool, err := usecase.New(usecase.Config{Secret: []byte("golden-secret")}, provider.Defaults()...)
	require.NoError(t, err)

	logger := newTestLogger()
	server := NewServer(pool, "localhost", 8080, logger)
	server.SetupRouter(ctx, cfg, uidHTTP.NewUidHandler(useCase, cfg.BatchMaxSize, logger), metricsProvider)
	return server, pool
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestServer_HealthHandler(t *testing.T) {
	server, _ := newTestServer(t, newTestConfig(), nil)

	w := doJSON(t, server.GetHandler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestServer_ReadinessHandler(t *testing.T) {
	t.Run("Success_PoolReady", func(t *testing.T) {
		server, pool := newTestServer(t, newTestConfig(), nil)

		w := doJSON(t, server.GetHandler(), http.MethodGet, "/ready", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ready", body["status"])
		components := body["components"].(map[string]any)
		assert.Equal(t, "ok", components["cipher_pool"])
		assert.Equal(t, float64(pool.Size()), components["pool_size"])
		assert.Equal(t, float64(pool.Available()), components["idle_contexts"])
	})

	t.Run("Error_NoPool", func(t *testing.T) {
		server := NewServer(nil, "localhost", 8080, newTestLogger())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"cipher_pool":"error"`)
	})

	t.Run("Error_TypedNilPool", func(t *testing.T) {
		var pool *uidService.ContextPool
		server := NewServer(pool, "localhost", 8080, newTestLogger())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		assert.NotPanics(t, func() { server.readinessHandler(c) })
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"cipher_pool":"error"`)
	})

	t.Run("Error_ShuttingDown", func(t *testing.T) {
		server, _ := newTestServer(t, newTestConfig(), nil)

		require.NoError(t, server.Shutdown(context.Background()))

		w := doJSON(t, server.GetHandler(), http.MethodGet, "/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"cipher_pool":"shutting_down"`)
	})
}

func TestServer_Routes(t *testing.T) {
	server, _ := newTestServer(t, newTestConfig(), nil)
	handler := server.GetHandler()

	t.Run("Success_EncodeDecodeRoundTrip", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/v1/uids/encode", map[string]string{
			"variant": "persistable",
			"value":   "7:1001",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var encoded map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &encoded))
		assert.Equal(t, "0S_nPdHsWfN9LjNWvRqOflw8", encoded["token"])

		w = doJSON(t, handler, http.MethodPost, "/v1/uids/decode", map[string]string{
			"token": encoded["token"],
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"variant":"persistable"`)
		assert.Contains(t, w.Body.String(), `"value":"7:1001"`)
	})

	t.Run("Success_Variants", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodGet, "/v1/uids/variants", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"object-id"`)
	})

	t.Run("Success_RequestIDHeader", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodGet, "/health", nil)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/v1/uids/decode", map[string]string{
			"token": "AAAAAAAAAAAAAAAAAAAAAAAA",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UnknownRoute", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodGet, "/v1/uids/unknown", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_MetricsMiddleware(t *testing.T) {
	provider, err := metrics.NewProvider("uids_test")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	server, _ := newTestServer(t, newTestConfig(), provider)
	doJSON(t, server.GetHandler(), http.MethodGet, "/v1/uids/variants", nil)
	doJSON(t, server.GetHandler(), http.MethodGet, "/health", nil)

	metricsServer := NewMetricsServer("localhost", 8081, newTestLogger(), provider)
	w := doJSON(t, metricsServer.GetHandler(), http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uids_test_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/v1/uids/variants"`)
	assert.NotContains(t, w.Body.String(), `path="/health"`)
}

func TestServer_Start(t *testing.T) {
	t.Run("Error_RouterNotConfigured", func(t *testing.T) {
		server := NewServer(nil, "localhost", 0, newTestLogger())
		err := server.Start(context.Background())
		assert.Error(t, err)
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := doJSON(t, router, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"path":"/boom"`)
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestRateLimitMiddleware(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := gin.New()
	router.Use(RateLimitMiddleware(ctx, 1, 1, newTestLogger()))
	router.GET("/limited", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("Success_WithinBurst", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_BurstExceeded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("Success_SeparateBudgetPerIP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRateLimitMiddleware_Routes(t *testing.T) {
	cfg := newTestConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 1
	cfg.RateLimitBurst = 1
	server, _ := newTestServer(t, cfg, nil)
	handler := server.GetHandler()

	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/v1/uids/variants", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doJSON(t, handler, http.MethodGet, "/v1/uids/variants", nil).Code)

	// Probes are not rate limited.
	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/health", nil).Code)
}

func TestIPRateLimiterStore_EvictIdle(t *testing.T) {
	store := &ipRateLimiterStore{rps: 1, burst: 1}
	store.getLimiter("10.0.0.1")

	store.evictIdle(time.Now().Add(time.Minute))

	_, ok := store.limiters.Load("10.0.0.1")
	assert.False(t, ok)
}

func TestMetricsServer_StartShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := NewMetricsServer("localhost", 0, newTestLogger(), nil)

	done := make(chan error, 1)
	go func() {
		done <- server.Start(context.Background())
	}()

	require.NoError(t, server.Shutdown(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}
