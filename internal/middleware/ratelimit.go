package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mjaja25/exam-website-backend/internal/response"
	"github.com/redis/go-redis/v9"
)

// RateLimit applies a fixed-window limit per client. Authenticated requests
// are keyed by user ID, anonymous ones by client IP. Redis failures fail
// open: limiting is protection, not a dependency.
func RateLimit(rdb *redis.Client, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if claims := GetClaims(c); claims != nil {
			client = "u" + strconv.Itoa(claims.UserID)
		}
		key := fmt.Sprintf("ratelimit:%s:%s", scope, client)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
