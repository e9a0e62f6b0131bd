package middleware

import (
	"strconv"
	"time"

	"github.com/casahub/smarthomes/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per route. The route template
// (not the raw path) is used to keep label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
