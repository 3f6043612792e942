package middleware

import (
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records every request under its route template, so path
// parameters do not blow up label cardinality.
func Metrics(rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
