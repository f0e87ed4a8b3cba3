package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/models"
)

// WindowCounter counts hits on key within a fixed window.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

type RedisCounter struct {
	rdb redis.Cmdable
	log zerolog.Logger
	now func() time.Time
}

func NewRedisCounter(rdb redis.Cmdable, log zerolog.Logger) *RedisCounter {
	return &RedisCounter{rdb: rdb, log: log, now: time.Now}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("incr %s: %w", key, err)
	}
	// First hit opens the window.
	if count == 1 {
		if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("expire %s: %w", key, err)
		}
		return count, r.now().Add(window), nil
	}

	ttl, err := r.rdb.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		// Key lost its TTL (or the lookup failed); re-arm so it cannot stick forever.
		if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("failed to re-arm rate limit window")
		}
		ttl = window
	}
	return count, r.now().Add(ttl), nil
}

// RateLimiter allows maxRequests per client IP, method and route per window.
// When the counter is unavailable requests are let through.
func RateLimiter(counter WindowCounter, maxRequests int, window time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		count, resetAt, err := counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		resetIn := int(time.Until(resetAt).Seconds())
		if resetIn < 0 {
			resetIn = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetIn,
		}
		c.Set(models.RateLimiterKey, rate)
		c.Header("X-RateLimit-Limit", fmt.Sprint(maxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(remaining))

		if int(count) > maxRequests {
			c.Header("Retry-After", fmt.Sprint(resetIn))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			return
		}
		c.Next()
	}
}
