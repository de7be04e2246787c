package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/logger"
)

func newTestServer(t *testing.T, checks map[string]HealthChecker, setupRoutes func(*gin.Engine)) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &Config{
		Port:        8095,
		ServiceName: "notion-blogs",
	}
	return New(cfg, logger.NewNop(), checks, setupRoutes)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, map[string]HealthChecker{
		"snapshot": func() CheckResult {
			return CheckResult{Status: HealthStatusHealthy, Message: "3 posts"}
		},
	}, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, HealthStatusHealthy, body.Status)
	assert.Equal(t, "notion-blogs", body.Service)
	assert.Equal(t, "3 posts", body.Checks["snapshot"].Message)
}

func TestHealthEndpointDegradedCheck(t *testing.T) {
	srv := newTestServer(t, map[string]HealthChecker{
		"redis": func() CheckResult {
			return CheckResult{Status: HealthStatusDegraded, Message: "connection refused"}
		},
	}, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, HealthStatusDegraded, body.Status)
}

func TestHealthEndpointUnhealthyCheck(t *testing.T) {
	srv := newTestServer(t, map[string]HealthChecker{
		"database": func() CheckResult {
			return CheckResult{Status: HealthStatusUnhealthy, Message: "ping failed"}
		},
	}, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthHead(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDAssignedAndPropagated(t *testing.T) {
	srv := newTestServer(t, nil, func(router *gin.Engine) {
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil, func(router *gin.Engine) {
		router.POST("/api/blog-cta-lead", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/blog-cta-lead", nil)
	req.Header.Set("Origin", "https://blog.boostaiconsulting.com")
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := newTestServer(t, nil, func(router *gin.Engine) {
		router.GET("/boom", func(_ *gin.Context) { panic(errors.New("boom")) })
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "internal_error", body["error"])
}
