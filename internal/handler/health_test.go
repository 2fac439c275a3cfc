package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"messenger/pkg/logger"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newHealthRouter(db Pinger, rdb *redis.Client) *gin.Engine {
	h := NewHealthHandler(db, rdb, logger.NewNop())
	r := gin.New()
	r.GET("/health", h.Check)
	r.GET("/ready", h.Ready)
	return r
}

func TestHealthHandler_Check(t *testing.T) {
	w := doRequest(t, newHealthRouter(stubPinger{err: assert.AnError}, nil), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestHealthHandler_Ready(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	w := doRequest(t, newHealthRouter(stubPinger{}, rdb), http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = doRequest(t, newHealthRouter(stubPinger{err: assert.AnError}, rdb), http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode(t, w)["status"])

	mr.Close()
	w = doRequest(t, newHealthRouter(stubPinger{}, rdb), http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unavailable", body["checks"].(map[string]interface{})["redis"])
}
