package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"messenger/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis *redis.Client
	log   logger.Logger
}

func NewHealthHandler(db Pinger, redis *redis.Client, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
		log:   log,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "messenger",
	})
}

// Ready reports whether the database and, when configured, Redis answer a
// ping. Redis only backs rate limiting, so its failure is reported as
// degraded rather than unavailable.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	checks := gin.H{"database": "ok"}
	status := "ok"
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Database ping failed", "error", err)
		checks["database"] = "unavailable"
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.log.Warn("Redis ping failed", "error", err)
			checks["redis"] = "unavailable"
			if code == http.StatusOK {
				status = "degraded"
			}
		}
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
	})
}
