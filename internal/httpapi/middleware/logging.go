package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxgpt/maxgpt/internal/logger"
)

// RequestLogger logs one structured line per request. Bodies are not
// captured: chat payloads carry whole uploaded files.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Infow("http request",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"request_size", c.Request.ContentLength,
			"response_size", c.Writer.Size(),
			"request_id", c.GetString(RequestIDKey),
		)
	}
}
