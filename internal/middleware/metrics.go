package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"terminal-terrace/foodgram/internal/metrics"
)

// Metrics 按路由模板统计请求数与耗时, 未匹配的路由归入 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
