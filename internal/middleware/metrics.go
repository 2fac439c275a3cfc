package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"messenger/internal/observability"
)

// Metrics records request count and latency by route template.
func Metrics(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
