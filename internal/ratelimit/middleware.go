package ratelimit

import (
	"fmt"
	"net/http"

	"voice-assistant/internal/observability"

	"github.com/gin-gonic/gin"
)

const CodeRateLimited = "RATE_LIMIT_EXCEEDED"

// Middleware limits requests per value of the gin context key set by the
// auth middleware. Requests without it fall back to the client IP.
func (s *Service) Middleware(contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key := c.GetString(contextKey)
		if key == "" {
			key = c.ClientIP()
		}

		result, err := s.CheckRateLimit(ctx, key)
		if err != nil {
			s.logger.Error(ctx, "rate limit check failed", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "INTERNAL_ERROR"})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			retryAfter := (result.RetryAfterMs + 999) / 1000
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			s.logger.Warn(observability.WithFields(ctx,
				observability.Field{Key: "limit", Value: result.Limit},
				observability.Field{Key: "retry_after_ms", Value: result.RetryAfterMs},
			), "rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"code":        CodeRateLimited,
				"limit":       result.Limit,
				"retry_after": retryAfter,
				"reset_at":    result.ResetAt.Unix(),
			})
			return
		}

		c.Next()
	}
}
