package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myclassroom/assessment-api/internal/service"
)

// Metrics records duration and count for every request except the scrape
// endpoint itself, which would otherwise dominate the series.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
