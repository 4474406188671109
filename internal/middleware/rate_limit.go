package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chirp/internal/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
)

var rlCtx = context.Background()

// LoginRateLimiter limits login attempts per client IP using Redis counters.
func LoginRateLimiter(rdb *redis.Client, limit int64, window time.Duration) echo.MiddlewareFunc {
	const limiterName = "login"
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			key := fmt.Sprintf("chirp:rl:%s:%s", limiterName, ip)

			count, err := rdb.Incr(rlCtx, key).Result()
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "rate limiter failed")
			}
			if count == 1 {
				_ = rdb.Expire(rlCtx, key, window).Err()
			}
			if count > limit {
				metrics.IncRateLimit(limiterName)
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%.f", window.Seconds()))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-count))
			return next(c)
		}
	}
}
