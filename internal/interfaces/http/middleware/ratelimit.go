package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assetdesk/assetdesk/internal/infrastructure/ratelimit"
	"github.com/assetdesk/assetdesk/internal/shared/constants"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

// RateLimiter caps write requests. Requests are keyed by operator when
// authenticated and by client IP otherwise.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	limits  ratelimit.Limits
	logger  logger.Interface
}

// NewRateLimiter returns a pass-through middleware when limiter is nil.
func NewRateLimiter(limiter ratelimit.RateLimiter, limits ratelimit.Limits, logger logger.Interface) *RateLimiter {
	return &RateLimiter{limiter: limiter, limits: limits, logger: logger}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil || (rl.limits.PerMinute <= 0 && rl.limits.PerHour <= 0) {
			c.Next()
			return
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), subject(c), rl.limits)
		if err != nil {
			// fail open
			rl.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if rl.limits.PerMinute > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limits.PerMinute))
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

func subject(c *gin.Context) string {
	if id := c.GetUint(constants.ContextKeyUserID); id != 0 {
		return "user:" + strconv.FormatUint(uint64(id), 10)
	}
	return "ip:" + c.ClientIP()
}
