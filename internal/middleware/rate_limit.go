package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"messenger/internal/domain"
	"messenger/internal/observability"
	"messenger/internal/service"
	"messenger/pkg/errors"
	"messenger/pkg/logger"
)

type RateLimitMiddleware struct {
	rateLimitService service.RateLimitService
	rule             domain.RateLimitRule
	metrics          *observability.Metrics
	log              logger.Logger
}

func NewRateLimitMiddleware(rateLimitService service.RateLimitService, rule domain.RateLimitRule, metrics *observability.Metrics, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		rule:             rule,
		metrics:          metrics,
		log:              log,
	}
}

// Limit applies the rule per client IP. A failing counter store lets the
// request through.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := m.rateLimitService.Allow(c.Request.Context(), c.ClientIP(), m.rule)
		if err != nil {
			m.log.Error("Rate limit check failed", "error", err, "request_id", c.GetString(RequestIDKey))
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			m.metrics.RateLimited()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.ResetIn.Seconds()))))
			_ = c.Error(errors.ErrRateLimitReached)
			c.Abort()
			return
		}

		c.Next()
	}
}
