package middleware

import (
	"strconv"
	"time"

	"prorental/internal/observability/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records per-request counters and latency. The route template is
// used as the path label so ids do not blow up cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
