package middlewares

import (
	"net/http"

	"aasaasi/internal/logger"
	"aasaasi/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit caps requests per session. When the limiter itself fails the
// request is let through and the failure logged.
func RateLimit(l *ratelimit.Limiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), SessionID(c))
		if err != nil {
			log.Warn("rate limiter unavailable", "path", c.FullPath(), "error", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too many requests. Please slow down."})
			return
		}
		c.Next()
	}
}
