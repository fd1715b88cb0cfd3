package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lfarias/sports-booking-gateway/internal/config"
)

// NewRateLimit returns a fixed-window rate limiter keyed by user and
// route.  The counter lives in Redis so the limit holds across gateway
// instances; when Redis is unavailable the request passes through rather
// than failing closed, since booking must keep working through a cache
// outage.
func NewRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, userKey(c), c.Path())
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				c.Logger().Warnf("ratelimit: redis error for key=%s: %v", key, err)
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if n > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(cfg.Window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}

// userKey identifies the caller for rate limiting: the user id claim when
// authenticated, the remote address otherwise.
func userKey(c echo.Context) string {
	if v := c.Get(CtxUserID); v != nil {
		return fmt.Sprintf("%v", v)
	}
	return c.RealIP()
}
