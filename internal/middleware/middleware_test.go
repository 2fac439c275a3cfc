package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"messenger/internal/domain"
	"messenger/internal/observability"
	"messenger/internal/repository"
	"messenger/internal/service"
	"messenger/pkg/errors"
	"messenger/pkg/jwt"
	"messenger/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_RendersKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
		wantMsg  string
	}{
		{name: "invalid argument", err: errors.ErrNoReadSelector, wantCode: http.StatusBadRequest, wantKind: "INVALID_ARGUMENT", wantMsg: "message_id, message_ids or from_user_id/to_user_id must be provided"},
		{name: "not found", err: errors.ErrMessageNotFound, wantCode: http.StatusNotFound, wantKind: "NOT_FOUND", wantMsg: "message not found"},
		{name: "already exists", err: errors.ErrReactionExists, wantCode: http.StatusConflict, wantKind: "ALREADY_EXISTS", wantMsg: "reaction already exists"},
		{name: "unavailable hides cause", err: errors.Unavailable("database unavailable", assert.AnError), wantCode: http.StatusServiceUnavailable, wantKind: "UNAVAILABLE", wantMsg: "database unavailable"},
		{name: "forbidden", err: errors.ErrForbidden, wantCode: http.StatusForbidden, wantKind: "PERMISSION_DENIED", wantMsg: "caller may not act for this user"},
		{name: "plain error is internal", err: assert.AnError, wantCode: http.StatusInternalServerError, wantKind: "INTERNAL", wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler(logger.NewNop()))
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.wantKind, body["code"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logger.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		_ = c.Error(assert.AnError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["ok"])
}

func TestRequestID_ReuseOrGenerate(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\n")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not a uuid\n", w.Header().Get(RequestIDHeader))
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	const secret = "test-secret"
	auth := NewAuthMiddleware(secret, "messenger", logger.NewNop())

	r := gin.New()
	r.Use(ErrorHandler(logger.NewNop()))
	r.GET("/", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(UserIDKey)})
	})

	valid, err := jwt.GenerateToken(42, secret, "messenger", time.Hour)
	require.NoError(t, err)
	foreign, err := jwt.GenerateToken(42, "other-secret", "messenger", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantMsg  string
	}{
		{name: "valid token", header: "Bearer " + valid, wantCode: http.StatusOK},
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized, wantMsg: "Authorization header required"},
		{name: "wrong scheme", header: "Basic " + valid, wantCode: http.StatusUnauthorized, wantMsg: "Invalid authorization header format"},
		{name: "wrong secret", header: "Bearer " + foreign, wantCode: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			body := decodeBody(t, w)
			if tt.wantCode == http.StatusOK {
				assert.EqualValues(t, 42, body["user_id"])
				return
			}
			assert.Equal(t, tt.wantMsg, body["error"])
			assert.Equal(t, "UNAUTHENTICATED", body["code"])
		})
	}
}

func newRateLimitedRouter(t *testing.T, rdb *redis.Client, requests int) (*gin.Engine, *observability.Metrics) {
	t.Helper()
	log := logger.NewNop()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	svc := service.NewRateLimitService(repository.NewRateLimitRepository(rdb, log), log)
	rule := domain.RateLimitRule{Scope: domain.RateLimitScopeIP, Requests: requests, Window: time.Minute}

	r := gin.New()
	r.Use(ErrorHandler(log))
	r.GET("/", NewRateLimitMiddleware(svc, rule, metrics, log).Limit(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, metrics
}

func TestRateLimitMiddleware_Limit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r, metrics := newRateLimitedRouter(t, rdb, 2)

	for i, wantRemaining := range []string{"1", "0"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code, "request %d", i+1)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, wantRemaining, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "RESOURCE_EXHAUSTED", decodeBody(t, w)["code"])
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RateLimitRejections))
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r, _ := newRateLimitedRouter(t, rdb, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetrics_ByRoute(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/messages/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/messages/1", "/messages/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/messages/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
