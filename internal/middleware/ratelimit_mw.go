package middleware

import (
	"fmt"
	"net/http"

	"jewelry_store/internal/config"
	"jewelry_store/internal/metrics"
	"jewelry_store/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit refuses clients that exceed the limiter's budget, keyed by client IP.
// Store errors let the request through.
func RateLimit(limiter *ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		allowed, err := limiter.Take(c.Request.Context(), key)
		if err != nil {
			config.LogError(config.GetLogger(), "middleware", "RateLimit", "limiter store", key, err)
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimited.WithLabelValues(scope).Inc()
			c.Header("Retry-After", fmt.Sprintf("%d", int(limiter.Window().Seconds())))
			abort(c, http.StatusTooManyRequests, fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(limiter.Window().Seconds())))
			return
		}
		c.Next()
	}
}
