package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// Limiter counts requests per key in a one-minute window.
type Limiter interface {
	Allow(ctx context.Context, key string, perMinute int) (bool, error)
}

// RateLimit limits each client IP to perMinute requests on the routes it guards.
// scope keeps the counters of different routes apart. When the limiter backend
// fails the request is let through.
func RateLimit(limiter Limiter, scope string, perMinute int, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := scope + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key, perMinute)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "scope", scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(60))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireInternalToken guards service-to-service endpoints. An empty token
// disables the check.
func RequireInternalToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got := c.GetHeader(constants.HeaderInternalToken)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			abortWithError(c, errors.NewUnauthorizedError("invalid internal service token"))
			return
		}
		c.Next()
	}
}
