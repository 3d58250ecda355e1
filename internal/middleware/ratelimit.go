package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"damagesnap/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when Redis is unavailable.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed answers 503.
	FailClosed
)

var errNoRedis = errors.New("redis client is nil")

// CheckRateLimit counts one hit for id on resource and reports whether it is
// within limit for the current window.
func CheckRateLimit(ctx context.Context, rdb redis.Cmdable, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, errNoRedis
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	return cnt <= int64(limit), nil
}

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Redis    redis.Cmdable
	Limit    int
	Window   time.Duration
	Policy   FailPolicy
	Resource string
	// Disabled turns the limiter into a pass-through, for development.
	Disabled bool
}

// RateLimit enforces cfg.Limit requests per cfg.Window per client IP.
// A non-positive limit disables it.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Disabled || cfg.Limit <= 0 {
			return c.Next()
		}

		resource := cfg.Resource
		if resource == "" {
			resource = c.Path()
		}

		allowed, err := CheckRateLimit(c.UserContext(), cfg.Redis, resource, "ip:"+c.IP(), cfg.Limit, cfg.Window)
		if err != nil {
			if cfg.Policy == FailClosed {
				observability.Logger.WarnContext(c.UserContext(), "rate limit unavailable, failing closed",
					slog.String("resource", resource), slog.String("error", err.Error()))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
