package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxgpt/maxgpt/internal/logger"
)

// Recovery converts panics into the generic server error response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal error",
				})
			}
		}()
		c.Next()
	}
}
