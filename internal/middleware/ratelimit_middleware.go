package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/arjunrk/campusvibe/internal/helpers"
)

// RateLimitMiddleware applies a fixed-window counter per user (falling back
// to client IP) in redis. Requests beyond limit within the window get 429.
// Redis being unreachable fails open: registration must not depend on the
// limiter being up.
func RateLimitMiddleware(rdb *redis.Client, scope string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		identifier := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			identifier = fmt.Sprintf("user:%v", userID)
		}
		key := fmt.Sprintf("ratelimit:%s:%s", scope, identifier)

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}
		if count > limit {
			helpers.RespondWithError(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
